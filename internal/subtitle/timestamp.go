package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// components of a single SubRip timestamp
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int
}

var (
	commaTimestampRegex = regexp.MustCompile(`^(\d+):(\d+):(\d+),(\d+)$`)
	dotTimestampRegex   = regexp.MustCompile(`^(\d+):(\d+):(\d+)\.(\d+)$`)

	// separator byte -> compiled grammar, filled lazily for uncommon separators
	timestampRegexes sync.Map
)

func timestampRegex(sep byte) *regexp.Regexp {
	switch sep {
	case ',':
		return commaTimestampRegex
	case '.':
		return dotTimestampRegex
	}
	if re, ok := timestampRegexes.Load(sep); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(
		`^(\d+):(\d+):(\d+)` + regexp.QuoteMeta(string(sep)) + `(\d+)$`,
	)
	actual, _ := timestampRegexes.LoadOrStore(sep, re)
	return actual.(*regexp.Regexp)
}

// ParseTimestamp parses an "HH:MM:SS<sep>fff" token. The fractional part is
// right-padded or truncated to three digits, so "5" reads as 500ms.
func ParseTimestamp(token string, sep byte) (Timestamp, error) {
	token = strings.TrimSpace(token)
	matches := timestampRegex(sep).FindStringSubmatch(token)
	if len(matches) != 5 {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, token)
	}

	fields := make([]int, 3)
	for i := range fields {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return Timestamp{}, fmt.Errorf(
				"%w: %q: %v",
				ErrMalformedTimestamp,
				token,
				err,
			)
		}
		fields[i] = n
	}

	frac := matches[4]
	if len(frac) > 3 {
		frac = frac[:3]
	}
	frac += strings.Repeat("0", 3-len(frac))
	millis, err := strconv.Atoi(frac)
	if err != nil {
		return Timestamp{}, fmt.Errorf(
			"%w: %q: %v",
			ErrMalformedTimestamp,
			token,
			err,
		)
	}

	if !fitsMillis(fields[0], fields[1], fields[2], millis) {
		return Timestamp{}, fmt.Errorf(
			"%w: %q: out of range",
			ErrMalformedTimestamp,
			token,
		)
	}

	return Timestamp{
		Hours:   fields[0],
		Minutes: fields[1],
		Seconds: fields[2],
		Millis:  millis,
	}, nil
}

// reports whether the total in milliseconds fits in an int64; all parts
// are non-negative
func fitsMillis(hours, minutes, seconds, millis int) bool {
	parts := [...]struct{ n, unit int64 }{
		{int64(hours), 3600000},
		{int64(minutes), 60000},
		{int64(seconds), 1000},
		{int64(millis), 1},
	}
	var total int64
	for _, p := range parts {
		if p.n > (math.MaxInt64-total)/p.unit {
			return false
		}
		total += p.n * p.unit
	}
	return true
}

// total milliseconds represented by the timestamp
func (t Timestamp) ToMillis() int64 {
	return ((int64(t.Hours)*60+int64(t.Minutes))*60+int64(t.Seconds))*1000 +
		int64(t.Millis)
}

func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.ToMillis()) * time.Millisecond
}

func (t Timestamp) String() string {
	return fmt.Sprintf(
		"%02d:%02d:%02d,%03d",
		t.Hours,
		t.Minutes,
		t.Seconds,
		t.Millis,
	)
}

// TimestampFromMillis is the inverse of ToMillis for non-negative values.
func TimestampFromMillis(ms int64) Timestamp {
	return Timestamp{
		Hours:   int(ms / 3600000),
		Minutes: int(ms/60000) % 60,
		Seconds: int(ms/1000) % 60,
		Millis:  int(ms % 1000),
	}
}
