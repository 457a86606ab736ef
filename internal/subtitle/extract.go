package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var indexRegex = regexp.MustCompile(`^\d+$`)

const durationArrow = "-->"

// ExtractCue parses one cue block: index line, duration line, then text.
// The block lines may still carry surrounding whitespace.
func ExtractCue(block []string) (Cue, error) {
	if len(block) < 2 {
		return Cue{}, fmt.Errorf(
			"%w: got %d line(s), need index and duration",
			ErrIncompleteCue,
			len(block),
		)
	}

	start, end, err := parseDurationLine(block[1])
	if err != nil {
		return Cue{}, err
	}

	return Cue{
		Index:   parseIndex(block[0]),
		StartMs: start,
		EndMs:   end,
		Lines:   textLines(block[2:]),
	}, nil
}

// nil unless the line is a bare non-negative integer
func parseIndex(line string) *int {
	line = strings.TrimSpace(line)
	if !indexRegex.MatchString(line) {
		return nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		// digits only, so this is an overflow
		return nil
	}
	return &n
}

func parseDurationLine(line string) (int64, int64, error) {
	parts := strings.Split(strings.TrimSpace(line), durationArrow)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf(
			"%w: duration line %q",
			ErrMalformedTimestamp,
			strings.TrimSpace(line),
		)
	}

	start, err := ParseTimestamp(strings.TrimSpace(parts[0]), ',')
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTimestamp(strings.TrimSpace(parts[1]), ',')
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}
	return start.ToMillis(), end.ToMillis(), nil
}

func textLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
