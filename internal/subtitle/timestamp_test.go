package subtitle

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		sep    byte
		wantMs int64
	}{
		{"minutes and half second", "00:01:02,500", ',', 62500},
		{"one hour", "01:00:00,000", ',', 3600000},
		{"zero", "00:00:00,000", ',', 0},
		{"surrounding whitespace", "  00:00:01,000 ", ',', 1000},
		{"single digit fields", "0:0:1,0", ',', 1000},
		{"short fraction is right padded", "00:00:01,5", ',', 1500},
		{"two digit fraction", "00:00:01,25", ',', 1250},
		{"long fraction is truncated", "00:00:01,5678", ',', 1567},
		{"dot separator", "00:00:01.250", '.', 1250},
		{"hours beyond a day", "100:00:00,001", ',', 360000001},
		{"largest representable hours", "2562047788015:00:00,000", ',', 9223372036854000000},
		{"custom separator", "00:00:01;5", ';', 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.token, tt.sep)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ts.ToMillis(); got != tt.wantMs {
				t.Errorf("ParseTimestamp(%q) = %d ms, want %d", tt.token, got, tt.wantMs)
			}
		})
	}
}

func TestParseTimestampFields(t *testing.T) {
	ts, err := ParseTimestamp("01:02:03,045", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Timestamp{Hours: 1, Minutes: 2, Seconds: 3, Millis: 45}
	if ts != want {
		t.Errorf("expected %+v, got %+v", want, ts)
	}
	if ts.Duration() != time.Hour+2*time.Minute+3*time.Second+45*time.Millisecond {
		t.Errorf("unexpected duration %v", ts.Duration())
	}
	if ts.String() != "01:02:03,045" {
		t.Errorf("expected 01:02:03,045, got %s", ts.String())
	}
}

func TestParseTimestampMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
		sep   byte
	}{
		{"empty", "", ','},
		{"missing fraction", "00:01:02", ','},
		{"letters", "aa:bb:cc,ddd", ','},
		{"wrong separator", "00:01:02.500", ','},
		{"negative hours", "-1:00:00,000", ','},
		{"trailing garbage", "00:00:01,000x", ','},
		{"too many fields", "00:00:00:01,000", ','},
		{"non ascii digits", "٠٠:٠٠:٠١,٠٠٠", ','},
		{"hours overflow milliseconds", "3000000000000:00:00,000", ','},
		{"seconds overflow milliseconds", "0:0:9223372036854776,000", ','},
		{"sum overflows milliseconds", "2562047788015:59:00,000", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(tt.token, tt.sep)
			if !errors.Is(err, ErrMalformedTimestamp) {
				t.Errorf("expected ErrMalformedTimestamp for %q, got %v", tt.token, err)
			}
		})
	}
}

func TestTimestampRegexIsReused(t *testing.T) {
	if timestampRegex(';') != timestampRegex(';') {
		t.Error("expected the compiled regexp for ';' to be cached")
	}
	if timestampRegex(',') != commaTimestampRegex {
		t.Error("expected the comma grammar to be the package-level regexp")
	}
}

func TestTimestampFromMillis(t *testing.T) {
	for _, ms := range []int64{0, 1, 999, 1000, 62500, 3600000, 86399999, 360000001} {
		ts := TimestampFromMillis(ms)
		if got := ts.ToMillis(); got != ms {
			t.Errorf("TimestampFromMillis(%d).ToMillis() = %d", ms, got)
		}
		parsed, err := ParseTimestamp(ts.String(), ',')
		if err != nil {
			t.Fatalf("reparse of %s failed: %v", ts, err)
		}
		if parsed != ts {
			t.Errorf("reparse of %s gave %+v", ts, parsed)
		}
	}
}
