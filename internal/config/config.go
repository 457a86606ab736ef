package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "srtcue.yaml"

// settings shared by all commands; flags override whatever is loaded here
type Config struct {
	// skip cues whose timing cannot be parsed instead of failing the file
	SkipMalformed bool `yaml:"skip_malformed"`
	// run charset detection on input bytes before parsing
	DetectCharset bool `yaml:"detect_charset"`
	// indent JSON output
	Pretty bool `yaml:"pretty"`
	// files parsed in parallel by the parse command
	Workers int `yaml:"workers"`

	Translate struct {
		Provider    string `yaml:"provider"`
		Model       string `yaml:"model"`
		Concurrency int    `yaml:"concurrency"`
		BatchSize   int    `yaml:"batch_size"`
		// never read from the file, only from the environment
		APIKey string `yaml:"-"`
	} `yaml:"translate"`

	FFmpeg struct {
		FFmpegPath  string `yaml:"ffmpeg_path"`
		FFprobePath string `yaml:"ffprobe_path"`
	} `yaml:"ffmpeg"`

	path string
}

func Default() *Config {
	c := &Config{}
	c.SkipMalformed = false
	c.DetectCharset = true
	c.Pretty = true
	c.Workers = 4

	c.Translate.Provider = "gemini"
	c.Translate.Concurrency = 3
	c.Translate.BatchSize = 50

	return c
}

// Load reads path over the defaults. A missing file is not an error unless
// the caller asked for it explicitly.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) normalize() {
	c.Translate.Provider = strings.ToLower(strings.TrimSpace(c.Translate.Provider))
	if c.Translate.Provider == "" {
		c.Translate.Provider = "gemini"
	}
	c.Translate.Model = strings.TrimSpace(c.Translate.Model)
	c.FFmpeg.FFmpegPath = strings.TrimSpace(c.FFmpeg.FFmpegPath)
	c.FFmpeg.FFprobePath = strings.TrimSpace(c.FFmpeg.FFprobePath)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SRTCUE_FFMPEG_PATH"); v != "" {
		c.FFmpeg.FFmpegPath = v
	}
	if v := os.Getenv("SRTCUE_FFPROBE_PATH"); v != "" {
		c.FFmpeg.FFprobePath = v
	}
	c.Translate.APIKey = os.Getenv(APIKeyEnv(c.Translate.Provider))
}

// environment variable holding the API key for provider
func APIKeyEnv(provider string) string {
	switch provider {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}

// SetProvider switches provider and reloads its API key from the environment.
func (c *Config) SetProvider(provider string) {
	c.Translate.Provider = strings.ToLower(strings.TrimSpace(provider))
	c.Translate.APIKey = os.Getenv(APIKeyEnv(c.Translate.Provider))
}
