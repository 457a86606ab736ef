package charset

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// chardet names that are not registered IANA names
var detectorAliases = map[string]string{
	"GB-18030": "GB18030",
}

// ToUTF8 returns data re-encoded as UTF-8. Valid UTF-8 passes through
// untouched apart from a leading byte order mark.
func ToUTF8(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "UTF-8", nil
	}

	if enc, name := bomEncoding(data); enc != nil {
		out, err := decode(data, enc)
		return out, name, err
	}

	if utf8.Valid(data) {
		return data, "UTF-8", nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to detect charset: %w", err)
	}

	name := result.Charset
	if alias, ok := detectorAliases[name]; ok {
		name = alias
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown charset %q: %w", result.Charset, err)
	}
	if enc == nil {
		return nil, "", fmt.Errorf("unsupported charset %q", result.Charset)
	}

	out, err := decode(data, enc)
	return out, result.Charset, err
}

// ToUTF8String is ToUTF8 for callers that want the parser's input type.
func ToUTF8String(data []byte) (string, string, error) {
	out, name, err := ToUTF8(data)
	if err != nil {
		return "", "", err
	}
	return string(out), name, nil
}

func bomEncoding(data []byte) (encoding.Encoding, string) {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return unicode.UTF8BOM, "UTF-8"
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "UTF-16LE"
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "UTF-16BE"
	}
	return nil, ""
}

func decode(data []byte, enc encoding.Encoding) ([]byte, error) {
	out, err := io.ReadAll(
		transform.NewReader(bytes.NewReader(data), enc.NewDecoder()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}

// reports whether name refers to UTF-8, ignoring case
func IsUTF8(name string) bool {
	return strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8")
}
