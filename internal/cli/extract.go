package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mgpai22/srtcue/internal/ffmpeg"
	"github.com/mgpai22/srtcue/internal/source"
	"github.com/mgpai22/srtcue/internal/video"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle stream from a video as JSON cues",
	Long: `List the subtitle streams of a video container with ffprobe, convert one
of them to SubRip with ffmpeg and print its cues as JSON.

Without --stream the first text subtitle stream is used. Image based
streams (PGS, VobSub) cannot be converted.

Examples:
  srtcue extract movie.mkv --list
  srtcue extract movie.mkv
  srtcue extract movie.mkv --stream 2 -o cues.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default stdout)")
	extractCmd.Flags().
		IntP("stream", "s", -1, "Subtitle stream number among subtitle streams (default first text stream)")
	extractCmd.Flags().
		Bool("list", false, "List subtitle streams and exit")
	extractCmd.Flags().
		Bool("skip-malformed", false, "Skip cues with malformed timestamps instead of failing")
	extractCmd.Flags().
		Bool("compact", false, "Print compact JSON instead of indented")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	videoPath := args[0]

	stream, _ := cmd.Flags().GetInt("stream")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")

	paths, err := ffmpeg.Resolve(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFprobePath)
	if err != nil {
		return err
	}
	logger.Debugw("Using ffmpeg binaries",
		"ffmpeg", paths.FFmpeg,
		"ffprobe", paths.FFprobe,
	)

	processor := video.NewProcessor(paths)

	streams, err := processor.SubtitleStreams(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("failed to list subtitle streams: %w", err)
	}

	if list {
		printStreams(cmd.OutOrStdout(), streams)
		return nil
	}

	selected, err := pickStream(streams, stream)
	if err != nil {
		return err
	}

	logger.Infow("Extracting subtitle stream",
		"video", videoPath,
		"stream", selected.Ordinal,
		"codec", selected.CodecName,
		"language", selected.Language,
	)

	content, err := processor.ExtractSubRip(ctx, videoPath, selected.Ordinal)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	name := fmt.Sprintf("%s:s:%d", videoPath, selected.Ordinal)
	_, parseOpts := pipelineOptions(cmd)
	parseOpts.OnSkip = skipLogger()

	fr := source.ParseDocument(
		source.Document{Name: name, Content: content, Charset: "UTF-8"},
		parseOpts,
	)
	if fr.Err != nil {
		return fr.Err
	}

	logger.Infow("Parsed extracted subtitles",
		"cues", len(fr.Result.Cues),
		"dropped_lines", fr.Result.Dropped,
	)

	data, err := encodeJSON(newCueOutput(fr), prettyOutput(cmd))
	if err != nil {
		return err
	}
	return emit(cmd, data, outputPath, false)
}

// picks the stream with the given ordinal, or the first text stream when
// ordinal is negative
func pickStream(
	streams []video.SubtitleStream,
	ordinal int,
) (video.SubtitleStream, error) {
	if len(streams) == 0 {
		return video.SubtitleStream{}, fmt.Errorf("no subtitle streams found")
	}

	if ordinal < 0 {
		for _, s := range streams {
			if s.IsText() {
				return s, nil
			}
		}
		return video.SubtitleStream{}, fmt.Errorf(
			"no text subtitle streams found (%d image based)",
			len(streams),
		)
	}

	if ordinal >= len(streams) {
		return video.SubtitleStream{}, fmt.Errorf(
			"subtitle stream %d does not exist (found %d)",
			ordinal,
			len(streams),
		)
	}
	s := streams[ordinal]
	if !s.IsText() {
		return video.SubtitleStream{}, fmt.Errorf(
			"subtitle stream %d is %s, which cannot be converted to SubRip",
			ordinal,
			s.CodecName,
		)
	}
	return s, nil
}

func printStreams(w io.Writer, streams []video.SubtitleStream) {
	if len(streams) == 0 {
		fmt.Fprintln(w, "No subtitle streams")
		return
	}
	for _, s := range streams {
		kind := "text"
		if !s.IsText() {
			kind = "image"
		}
		lang := s.Language
		if lang == "" {
			lang = "und"
		}
		fmt.Fprintf(w, "%d: %s [%s] %s", s.Ordinal, s.CodecName, lang, kind)
		if s.Title != "" {
			fmt.Fprintf(w, " %q", s.Title)
		}
		fmt.Fprintln(w)
	}
}
