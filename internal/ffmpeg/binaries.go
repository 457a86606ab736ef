package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

// Resolve finds ffmpeg and ffprobe. Explicit paths win, then the
// SRTCUE_FFMPEG_PATH / SRTCUE_FFPROBE_PATH variables, then $PATH.
func Resolve(ffmpegPath, ffprobePath string) (BinaryPaths, error) {
	if ffmpegPath == "" {
		ffmpegPath = os.Getenv("SRTCUE_FFMPEG_PATH")
	}
	if ffprobePath == "" {
		ffprobePath = os.Getenv("SRTCUE_FFPROBE_PATH")
	}

	var err error
	if ffmpegPath, err = locate("ffmpeg", ffmpegPath); err != nil {
		return BinaryPaths{}, err
	}
	if ffprobePath, err = locate("ffprobe", ffprobePath); err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func locate(name, configured string) (string, error) {
	if configured != "" {
		if !fileExists(configured) {
			return "", fmt.Errorf("%s not found at %s", name, configured)
		}
		return configured, nil
	}

	found, err := exec.LookPath(name + executableSuffix())
	if err != nil {
		return "", fmt.Errorf(
			"%s not found in PATH: install it or set SRTCUE_%s_PATH",
			name,
			strings.ToUpper(name),
		)
	}
	abs, err := filepath.Abs(found)
	if err != nil {
		return found, nil
	}
	return abs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
