package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/srtcue/internal/charset"
	"github.com/mgpai22/srtcue/internal/source"
	"github.com/mgpai22/srtcue/internal/subtitle"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [subtitle_files...]",
	Short: "Parse SubRip files into JSON cues",
	Long: `Parse one or more SubRip files and print their cues as JSON.

Files may be plain .srt files or archives (zip, tar, 7z, gz, ...) holding
.srt files; every .srt entry in an archive is parsed. Input that is not
UTF-8 is converted first unless --no-charset is given.

By default a cue with a malformed timestamp fails its file. With
--skip-malformed the cue is skipped and reported instead.

Examples:
  srtcue parse movie.srt
  srtcue parse season1.zip -o cues.json
  srtcue parse *.srt --workers 8 --skip-malformed
  srtcue parse movie.srt --compact --clipboard`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("output", "o", "", "Output file path (default stdout)")
	parseCmd.Flags().
		IntP("workers", "w", 0, "Number of files parsed in parallel (default from config)")
	parseCmd.Flags().
		Bool("skip-malformed", false, "Skip cues with malformed timestamps instead of failing")
	parseCmd.Flags().
		Bool("no-charset", false, "Disable charset detection and read input as UTF-8")
	parseCmd.Flags().
		Bool("compact", false, "Print compact JSON instead of indented")
	parseCmd.Flags().
		Bool("clipboard", false, "Also copy the JSON output to the clipboard")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outputPath, _ := cmd.Flags().GetString("output")
	toClipboard, _ := cmd.Flags().GetBool("clipboard")

	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}
	if workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}

	readOpts, parseOpts := pipelineOptions(cmd)
	parseOpts.OnSkip = skipLogger()

	logger.Infow("Parsing subtitle files",
		"files", len(args),
		"workers", workers,
		"skip_malformed", parseOpts.SkipMalformed,
	)

	results := source.ParseFiles(ctx, args, workers, readOpts, parseOpts)

	outputs := make([]cueOutput, 0, len(results))
	failed := 0
	for _, fr := range results {
		if fr.Err != nil {
			failed++
			logger.Errorw("Failed to parse", "file", fr.Name, "error", fr.Err)
		} else {
			if fr.Charset != "" && !charset.IsUTF8(fr.Charset) {
				logger.Infow("Converted input to UTF-8",
					"file", fr.Name,
					"charset", fr.Charset,
				)
			}
			logger.Debugw("Parsed",
				"file", fr.Name,
				"charset", fr.Charset,
				"cues", len(fr.Result.Cues),
				"dropped_lines", fr.Result.Dropped,
				"skipped", len(fr.Result.Skipped),
			)
		}
		outputs = append(outputs, newCueOutput(fr))
	}

	data, err := encodeJSON(outputs, prettyOutput(cmd))
	if err != nil {
		return err
	}
	if err := emit(cmd, data, outputPath, toClipboard); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to parse", failed, len(results))
	}
	return nil
}

// merges config defaults with the shared pipeline flags of cmd
func pipelineOptions(cmd *cobra.Command) (source.ReadOptions, subtitle.ParseOptions) {
	readOpts := source.ReadOptions{DetectCharset: cfg.DetectCharset}
	if f := cmd.Flags().Lookup("no-charset"); f != nil && f.Changed {
		noCharset, _ := cmd.Flags().GetBool("no-charset")
		readOpts.DetectCharset = !noCharset
	}

	parseOpts := subtitle.ParseOptions{SkipMalformed: cfg.SkipMalformed}
	if f := cmd.Flags().Lookup("skip-malformed"); f != nil && f.Changed {
		parseOpts.SkipMalformed, _ = cmd.Flags().GetBool("skip-malformed")
	}
	return readOpts, parseOpts
}

func prettyOutput(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("compact"); f != nil && f.Changed {
		compact, _ := cmd.Flags().GetBool("compact")
		return !compact
	}
	return cfg.Pretty
}
