package source

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mgpai22/srtcue/internal/subtitle"
)

const cueA = "1\n00:00:01,000 --> 00:00:02,000\nHello\n"
const cueB = "1\n00:00:03,000 --> 00:00:04,000\nWorld\n\n2\n00:00:05,000 --> 00:00:06,000\nAgain\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("failed to add %s: %v", entry, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", entry, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return p
}

func TestReadFilePlain(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.srt", cueA)

	docs, err := ReadFile(context.Background(), p, ReadOptions{DetectCharset: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Content != cueA {
		t.Errorf("expected content %q, got %q", cueA, docs[0].Content)
	}
	if docs[0].Name != p {
		t.Errorf("expected name %s, got %s", p, docs[0].Name)
	}
}

func TestReadFileZipArchive(t *testing.T) {
	p := writeZip(t, t.TempDir(), "subs.zip", map[string]string{
		"season1/ep1.srt": cueA,
		"readme.txt":      "not a subtitle",
	})

	docs, err := ReadFile(context.Background(), p, ReadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if !strings.HasSuffix(docs[0].Name, ":season1/ep1.srt") {
		t.Errorf("unexpected document name %s", docs[0].Name)
	}
	if docs[0].Content != cueA {
		t.Errorf("expected content %q, got %q", cueA, docs[0].Content)
	}
}

func TestReadFileZipWithoutSubtitles(t *testing.T) {
	p := writeZip(t, t.TempDir(), "empty.zip", map[string]string{
		"notes.txt": "nothing here",
	})

	_, err := ReadFile(context.Background(), p, ReadOptions{})
	if err == nil || !strings.Contains(err.Error(), "no .srt files") {
		t.Errorf("expected no .srt files error, got %v", err)
	}
}

func TestReadFileGzip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.srt.gz")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(cueA)); err != nil {
		t.Fatalf("failed to write gzip: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	docs, err := ReadFile(context.Background(), p, ReadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Content != cueA {
		t.Errorf("expected decompressed content, got %+v", docs)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.srt"), ReadOptions{})
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "b.srt", cueB),
		filepath.Join(dir, "missing.srt"),
		writeFile(t, dir, "a.srt", cueA),
		writeFile(t, dir, "empty.srt", ""),
	}

	results := ParseFiles(context.Background(), paths, 3, ReadOptions{DetectCharset: true}, subtitle.ParseOptions{})

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].Err != nil || len(results[0].Result.Cues) != 2 {
		t.Errorf("b.srt: expected 2 cues, got %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("missing.srt: expected error")
	}
	if results[2].Err != nil || len(results[2].Result.Cues) != 1 {
		t.Errorf("a.srt: expected 1 cue, got %+v", results[2])
	}
	if results[3].Err == nil || !strings.Contains(results[3].Err.Error(), "empty input") {
		t.Errorf("empty.srt: expected empty input error, got %v", results[3].Err)
	}
}

// the blank index line shifts the duration into the index slot
const cueMalformed = "1\n00:00:01,000 --> 00:00:02,000\nOk\n\n\n00:00:03,000 --> 00:00:04,000\nLost\n"

func TestParseFilesReportsSkippedCuePerFile(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.srt", cueMalformed)
	second := writeFile(t, dir, "second.srt", cueMalformed)

	var (
		mu      sync.Mutex
		skipped = map[string]error{}
	)
	opts := subtitle.ParseOptions{
		SkipMalformed: true,
		OnSkip: func(err error) {
			var sc *SkippedCue
			if !errors.As(err, &sc) {
				t.Errorf("expected *SkippedCue, got %T", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			skipped[sc.Name] = err
		},
	}

	results := ParseFiles(context.Background(), []string{first, second}, 2, ReadOptions{}, opts)
	for _, r := range results {
		if r.Err != nil || len(r.Result.Cues) != 1 {
			t.Errorf("%s: expected 1 surviving cue, got %+v", r.Name, r)
		}
	}

	if len(skipped) != 2 {
		t.Fatalf("expected skips from 2 files, got %v", skipped)
	}
	for _, name := range []string{first, second} {
		err, ok := skipped[name]
		if !ok {
			t.Errorf("expected a skipped cue reported for %s", name)
			continue
		}
		if !errors.Is(err, subtitle.ErrMalformedTimestamp) {
			t.Errorf("expected ErrMalformedTimestamp, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), name+": ") {
			t.Errorf("expected message to start with %s, got %q", name, err.Error())
		}
	}
}

func TestParseFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeFile(t, dir, "a.srt", cueA), writeFile(t, dir, "b.srt", cueB)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ParseFiles(ctx, paths, 1, ReadOptions{}, subtitle.ParseOptions{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestIsSubRipName(t *testing.T) {
	tests := map[string]bool{
		"a.srt":         true,
		"dir/Movie.SRT": true,
		"a.srt.txt":     false,
		"a.vtt":         false,
		"srt":           false,
	}
	for name, want := range tests {
		if got := IsSubRipName(name); got != want {
			t.Errorf("IsSubRipName(%q) = %v, want %v", name, got, want)
		}
	}
}
