package cli

import (
	"fmt"

	"github.com/mgpai22/srtcue/internal/config"
	"github.com/mgpai22/srtcue/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "srtcue",
	Short: "Parse SubRip subtitles into structured cues",
	Long: `srtcue reads SubRip (.srt) subtitle files and turns them into an
ordered list of cues with index, start and end time in milliseconds and
text lines.

Input can be plain .srt files, archives holding .srt files, or video
containers with an embedded subtitle stream. Parsed cues can also be
translated with an AI provider.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		logger.Debugw("Loaded config",
			"path", cfg.Path(),
			"workers", cfg.Workers,
			"provider", cfg.Translate.Provider,
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file path (default srtcue.yaml if present)")
}
