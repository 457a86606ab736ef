package charset

import (
	"bytes"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const sample = "1\n00:00:01,000 --> 00:00:02,000\nÇa va très bien, merci.\n"

func TestToUTF8PassesThroughValidUTF8(t *testing.T) {
	out, name, err := ToUTF8([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != sample {
		t.Errorf("expected input unchanged, got %q", out)
	}
	if !IsUTF8(name) {
		t.Errorf("expected UTF-8, got %s", name)
	}
}

func TestToUTF8StripsUTF8BOM(t *testing.T) {
	in := append([]byte{0xef, 0xbb, 0xbf}, sample...)

	out, _, err := ToUTF8(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != sample {
		t.Errorf("expected BOM stripped, got %q", out)
	}
}

func TestToUTF8DecodesUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	in, err := enc.Bytes([]byte(sample))
	if err != nil {
		t.Fatalf("failed to encode sample: %v", err)
	}

	out, name, err := ToUTF8(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != sample {
		t.Errorf("expected %q, got %q", sample, out)
	}
	if name != "UTF-16LE" {
		t.Errorf("expected UTF-16LE, got %s", name)
	}
}

func TestToUTF8DecodesLegacyCharset(t *testing.T) {
	text := bytes.Repeat([]byte("Ça va très bien, merci. Où êtes-vous allé hier soir ?\n"), 20)
	in, err := charmap.ISO8859_1.NewEncoder().Bytes(text)
	if err != nil {
		t.Fatalf("failed to encode sample: %v", err)
	}

	out, name, err := ToUTF8(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if IsUTF8(name) {
		t.Errorf("expected a legacy charset to be detected")
	}
	if !bytes.Contains(out, []byte("très")) {
		t.Errorf("expected decoded accents, got %q", out[:60])
	}
}

func TestToUTF8Empty(t *testing.T) {
	out, _, err := ToUTF8(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %q", out)
	}
}
