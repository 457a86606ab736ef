package language

import (
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/mgpai22/srtcue/internal/subtitle"
)

var (
	assTagRegex  = regexp.MustCompile(`\{[^}]*\}`)
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
)

// result of guessing the language of a cue track
type Detection struct {
	Code       string  `json:"code"` // ISO 639-1 where one exists
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Reliable   bool    `json:"reliable"`
}

// Detect guesses the dominant language of the cues' text. ok is false when
// there is no text to look at.
func Detect(cues []subtitle.Cue) (Detection, bool) {
	var sb strings.Builder
	for _, cue := range cues {
		for _, line := range cue.Lines {
			line = assTagRegex.ReplaceAllString(line, "")
			line = htmlTagRegex.ReplaceAllString(line, "")
			if strings.TrimSpace(line) == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString(" ")
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Detection{}, false
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	return Detection{
		Code:       code,
		Name:       info.Lang.String(),
		Confidence: info.Confidence,
		Reliable:   info.IsReliable(),
	}, true
}
