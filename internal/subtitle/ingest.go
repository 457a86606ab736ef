package subtitle

import (
	"errors"
	"strings"
)

// controls how the pipeline reacts to cues it cannot extract
type ParseOptions struct {
	// skip cues with malformed timestamps or missing lines instead of
	// aborting the whole ingestion
	SkipMalformed bool
	// called once per skipped cue when SkipMalformed is set
	OnSkip func(err error)
}

// output of one ingestion run
type Result struct {
	Cues []Cue
	// lines that belonged to no cue, see Partitioning
	Dropped int
	// per-cue errors tolerated under SkipMalformed
	Skipped []error
}

// Parse converts SubRip content into cues, failing on the first cue whose
// fields cannot be extracted.
func Parse(content string) ([]Cue, error) {
	result, err := ParseWithOptions(content, ParseOptions{})
	if err != nil {
		return nil, err
	}
	return result.Cues, nil
}

func ParseWithOptions(content string, opts ParseOptions) (*Result, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyInput
	}

	lines := SplitLines(content)
	parts := Partition(lines, DetectBoundaries(lines))

	result := &Result{
		Cues:    make([]Cue, 0, len(parts.Blocks)),
		Dropped: parts.Dropped,
	}

	for i, block := range parts.Blocks {
		kept := nonBlank(block.Lines)
		if len(kept) == 0 {
			continue
		}

		cue, err := ExtractCue(kept)
		if err != nil {
			cueErr := &CueError{Block: i, Line: block.Start, Err: err}
			if !opts.SkipMalformed || !isCueLevel(err) {
				return nil, cueErr
			}
			result.Skipped = append(result.Skipped, cueErr)
			if opts.OnSkip != nil {
				opts.OnSkip(cueErr)
			}
			continue
		}
		result.Cues = append(result.Cues, cue)
	}

	return result, nil
}

func isCueLevel(err error) bool {
	return errors.Is(err, ErrMalformedTimestamp) ||
		errors.Is(err, ErrIncompleteCue)
}

// SplitLines splits on \r\n, \r and \n, in any mix.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
