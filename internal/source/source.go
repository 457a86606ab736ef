package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mgpai22/srtcue/internal/charset"
	"github.com/mholt/archiver/v4"
)

// one SubRip text pulled from a file or an archive entry
type Document struct {
	// file path, or "archive.zip:inner/name.srt" for archive entries
	Name    string
	Content string
	Charset string
}

type ReadOptions struct {
	// decode non UTF-8 input; when false bytes are used as-is
	DetectCharset bool
}

// ReadFile loads SubRip documents from path. Plain files yield one document;
// archives and compressed files are unpacked and every .srt entry is returned.
func ReadFile(
	ctx context.Context,
	filePath string,
	opts ReadOptions,
) ([]Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}
	if info.Size() == 0 {
		return []Document{{Name: filePath, Charset: "UTF-8"}}, nil
	}

	format, _, err := archiver.Identify(filepath.Base(filePath), file)
	if err != nil && !errors.Is(err, archiver.ErrNoMatch) {
		return nil, fmt.Errorf("failed to identify %s: %w", filePath, err)
	}
	// zip needs random access, so hand every reader the rewound file
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", filePath, err)
	}

	if format == nil {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		doc, err := newDocument(filePath, data, opts)
		if err != nil {
			return nil, err
		}
		return []Document{doc}, nil
	}
	if ex, ok := format.(archiver.Extractor); ok {
		return extractDocuments(ctx, filePath, ex, file, opts)
	}

	if dec, ok := format.(archiver.Decompressor); ok {
		rc, err := dec.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", filePath, err)
		}
		defer func() {
			_ = rc.Close()
		}()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", filePath, err)
		}
		doc, err := newDocument(filePath, data, opts)
		if err != nil {
			return nil, err
		}
		return []Document{doc}, nil
	}

	return nil, fmt.Errorf("unsupported container format for %s", filePath)
}

func extractDocuments(
	ctx context.Context,
	archivePath string,
	ex archiver.Extractor,
	input io.Reader,
	opts ReadOptions,
) ([]Document, error) {
	var docs []Document
	err := ex.Extract(ctx, input, nil, func(ctx context.Context, f archiver.File) error {
		if f.IsDir() || !IsSubRipName(f.NameInArchive) {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", f.NameInArchive, err)
		}
		defer func() {
			_ = rc.Close()
		}()

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, rc); err != nil {
			return fmt.Errorf("failed to read %s: %w", f.NameInArchive, err)
		}

		doc, err := newDocument(archivePath+":"+f.NameInArchive, buf.Bytes(), opts)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", archivePath, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .srt files found in %s", archivePath)
	}
	return docs, nil
}

func newDocument(name string, data []byte, opts ReadOptions) (Document, error) {
	if !opts.DetectCharset {
		return Document{Name: name, Content: string(data), Charset: "UTF-8"}, nil
	}
	content, cs, err := charset.ToUTF8String(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", name, err)
	}
	return Document{Name: name, Content: content, Charset: cs}, nil
}

// reports whether an archive entry looks like a SubRip file
func IsSubRipName(name string) bool {
	return strings.EqualFold(path.Ext(name), ".srt")
}
