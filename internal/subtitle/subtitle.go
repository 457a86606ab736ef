package subtitle

import (
	"strings"
	"time"
)

// one subtitle entry as read from a SubRip file
type Cue struct {
	// nil when the block's first line is not a bare integer
	Index   *int     `json:"index,omitempty"`
	StartMs int64    `json:"start_ms"`
	EndMs   int64    `json:"end_ms"`
	Lines   []string `json:"lines"`
}

func (c Cue) HasIndex() bool {
	return c.Index != nil
}

func (c Cue) Start() time.Duration {
	return time.Duration(c.StartMs) * time.Millisecond
}

func (c Cue) End() time.Duration {
	return time.Duration(c.EndMs) * time.Millisecond
}

// cue text with lines joined by newlines
func (c Cue) Text() string {
	return strings.Join(c.Lines, "\n")
}
