package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	ffmpegbin "github.com/mgpai22/srtcue/internal/ffmpeg"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// subtitle stream inside a media container
type SubtitleStream struct {
	// position among subtitle streams only, as used by -map 0:s:N
	Ordinal   int    `json:"ordinal"`
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	Language  string `json:"language,omitempty"`
	Title     string `json:"title,omitempty"`
}

// text codecs ffmpeg can transcode to SubRip
var textCodecs = map[string]bool{
	"subrip":   true,
	"srt":      true,
	"ass":      true,
	"ssa":      true,
	"webvtt":   true,
	"mov_text": true,
	"text":     true,
}

func (s SubtitleStream) IsText() bool {
	return textCodecs[s.CodecName]
}

// defines interface for pulling subtitles out of media files
type Processor interface {
	// lists subtitle streams in the container
	SubtitleStreams(ctx context.Context, videoPath string) ([]SubtitleStream, error)

	// transcodes one subtitle stream to SubRip text
	ExtractSubRip(ctx context.Context, videoPath string, ordinal int) (string, error)
}

// default implementation using ffmpeg
type DefaultProcessor struct {
	paths ffmpegbin.BinaryPaths
}

func NewProcessor(paths ffmpegbin.BinaryPaths) *DefaultProcessor {
	return &DefaultProcessor{
		paths: paths,
	}
}

type ffprobeOutput struct {
	Streams []struct {
		Index     int    `json:"index"`
		CodecName string `json:"codec_name"`
		CodecType string `json:"codec_type"`
		Tags      struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
	} `json:"streams"`
}

func (p *DefaultProcessor) SubtitleStreams(
	ctx context.Context,
	videoPath string,
) ([]SubtitleStream, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	cmd := exec.CommandContext(ctx, p.paths.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "s",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeOutput(out.Bytes())
}

func parseProbeOutput(data []byte) ([]SubtitleStream, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var streams []SubtitleStream
	for _, s := range probe.Streams {
		if s.CodecType != "" && s.CodecType != "subtitle" {
			continue
		}
		streams = append(streams, SubtitleStream{
			Ordinal:   len(streams),
			Index:     s.Index,
			CodecName: s.CodecName,
			Language:  s.Tags.Language,
			Title:     s.Tags.Title,
		})
	}
	return streams, nil
}

func (p *DefaultProcessor) ExtractSubRip(
	ctx context.Context,
	videoPath string,
	ordinal int,
) (string, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", videoPath)
	}
	if ordinal < 0 {
		return "", fmt.Errorf("invalid subtitle stream %d", ordinal)
	}

	var stdout, stderr bytes.Buffer
	cmd := ffmpeg.Input(videoPath).
		Output("pipe:1", ffmpeg.KwArgs{
			"map": fmt.Sprintf("0:s:%d", ordinal),
			"f":   "srt",
		}).
		SetFfmpegPath(p.paths.FFmpeg).
		WithOutput(&stdout).
		WithErrorOutput(&stderr).
		Compile()

	if err := runContext(ctx, cmd); err != nil {
		return "", fmt.Errorf(
			"ffmpeg subtitle extraction failed: %w: %s",
			err,
			lastLine(stderr.String()),
		)
	}

	return stdout.String(), nil
}

// runs cmd, killing it if ctx ends first
func runContext(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
