package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/mgpai22/srtcue/internal/source"
	"github.com/mgpai22/srtcue/internal/subtitle"
	"github.com/spf13/cobra"
)

// JSON shape printed for one parsed document
type cueOutput struct {
	Name    string         `json:"name"`
	Charset string         `json:"charset,omitempty"`
	Cues    []subtitle.Cue `json:"cues"`
	Dropped int            `json:"dropped_lines"`
	Skipped []string       `json:"skipped,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func newCueOutput(fr source.FileResult) cueOutput {
	out := cueOutput{
		Name:    fr.Name,
		Charset: fr.Charset,
		Cues:    []subtitle.Cue{},
	}
	if fr.Err != nil {
		out.Error = fr.Err.Error()
	}
	if fr.Result != nil {
		if fr.Result.Cues != nil {
			out.Cues = fr.Result.Cues
		}
		out.Dropped = fr.Result.Dropped
		for _, err := range fr.Result.Skipped {
			out.Skipped = append(out.Skipped, err.Error())
		}
	}
	return out
}

func encodeJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// writes data to outputPath, or stdout when empty, and optionally copies it
// to the system clipboard
func emit(
	cmd *cobra.Command,
	data []byte,
	outputPath string,
	toClipboard bool,
) error {
	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		absOutput, _ := filepath.Abs(outputPath)
		logger.Infow("Wrote output", "path", absOutput, "bytes", len(data))
	} else {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if toClipboard {
		if err := clipboard.WriteAll(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		logger.Infow("Copied output to clipboard")
	}
	return nil
}

// lenient-mode callback that reports each skipped cue with its document
func skipLogger() func(error) {
	return func(err error) {
		var skipped *source.SkippedCue
		if !errors.As(err, &skipped) {
			logger.Warnw("Skipping malformed cue", "error", err)
			return
		}
		logger.Warnw("Skipping malformed cue",
			"file", skipped.Name,
			"error", skipped.Err,
		)
	}
}
