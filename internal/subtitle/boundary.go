package subtitle

import (
	"regexp"
	"strings"
)

var durationLineRegex = regexp.MustCompile(
	`^\d+:\d+:\d+,\d+\s*-->\s*\d+:\d+:\d+,\d+$`,
)

// reports whether line encodes a cue's display window
func IsDurationLine(line string) bool {
	return durationLineRegex.MatchString(strings.TrimSpace(line))
}

// DetectBoundaries returns the positions at which a new cue begins. A line
// starts a cue when the line after it is a duration marker, so the index line
// itself never has to be numeric.
func DetectBoundaries(lines []string) []int {
	var starts []int
	for i := 0; i+1 < len(lines); i++ {
		if IsDurationLine(lines[i+1]) {
			starts = append(starts, i)
		}
	}
	return starts
}
