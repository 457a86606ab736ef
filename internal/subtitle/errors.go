package subtitle

import (
	"errors"
	"fmt"
)

var (
	// input was empty or held only whitespace
	ErrEmptyInput = errors.New("empty input")
	// a duration token did not match the HH:MM:SS,fff grammar
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// a cue block had fewer than two lines (index + duration)
	ErrIncompleteCue = errors.New("incomplete cue")
)

// CueError ties a field extraction failure to the block that produced it.
type CueError struct {
	Block int // ordinal of the block among detected cues
	Line  int // zero-based file line where the block begins
	Err   error
}

func (e *CueError) Error() string {
	return fmt.Sprintf("cue %d (line %d): %v", e.Block, e.Line+1, e.Err)
}

func (e *CueError) Unwrap() error {
	return e.Err
}
