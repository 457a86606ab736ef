package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/srtcue/internal/config"
	"github.com/mgpai22/srtcue/internal/language"
	"github.com/mgpai22/srtcue/internal/source"
	"github.com/mgpai22/srtcue/internal/translate"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate parsed cues to another language using AI",
	Long: `Parse a SubRip file and translate the text of every cue using AI.
Timing and indexes are kept; the translated cues are printed as JSON.

When --language is not given, the input language is detected from the cue
text and passed to the model if the detection is reliable.

Examples:
  srtcue translate movie.srt --target-language japanese
  srtcue translate movie.srt -t spanish --provider anthropic -o es.json
  srtcue translate movie.srt -l english -t german --concurrency 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringP("output", "o", "", "Output file path (default stdout)")
	translateCmd.Flags().
		StringP("language", "l", "", "Language of the input subtitles (e.g., en, es, fr)")
	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	translateCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic; default from config)")
	translateCmd.Flags().
		Int("concurrency", 0, "Number of parallel translation workers (default from config)")
	translateCmd.Flags().
		Int("batch-size", 0, "Number of cues per API request (default from config)")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the model")
	translateCmd.Flags().
		Bool("skip-malformed", false, "Skip cues with malformed timestamps instead of failing")
	translateCmd.Flags().
		Bool("no-charset", false, "Disable charset detection and read input as UTF-8")
	translateCmd.Flags().
		Bool("compact", false, "Print compact JSON instead of indented")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	subtitlePath := args[0]

	targetLang, _ := cmd.Flags().GetString("target-language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	prompt, _ := cmd.Flags().GetString("prompt")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	if cmd.Flags().Changed("provider") {
		providerStr, _ := cmd.Flags().GetString("provider")
		cfg.SetProvider(providerStr)
	}
	if cmd.Flags().Changed("model") {
		cfg.Translate.Model, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Translate.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.Translate.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	}
	if apiKey != "" {
		cfg.Translate.APIKey = apiKey
	}

	if err := validateTranslateSettings(
		cfg,
		inputLang,
		targetLang,
		modelOverride,
	); err != nil {
		return err
	}

	provider := translate.Provider(cfg.Translate.Provider)

	readOpts, parseOpts := pipelineOptions(cmd)
	parseOpts.OnSkip = skipLogger()

	docs, err := source.ReadFile(ctx, subtitlePath, readOpts)
	if err != nil {
		return err
	}
	if len(docs) != 1 {
		return fmt.Errorf(
			"%s holds %d subtitle files; translate them one at a time",
			subtitlePath,
			len(docs),
		)
	}

	fr := source.ParseDocument(docs[0], parseOpts)
	if fr.Err != nil {
		return fr.Err
	}
	cues := fr.Result.Cues

	items := translate.ItemsFromCues(cues)
	if len(items) == 0 {
		return fmt.Errorf("subtitle file contains no cue text to translate")
	}

	if inputLang == "" {
		if detection, ok := language.Detect(cues); ok && detection.Reliable {
			inputLang = detection.Name
			logger.Infow("Detected input language",
				"language", detection.Name,
				"confidence", detection.Confidence,
			)
		}
	}

	logger.Infow("Starting cue translation",
		"input", subtitlePath,
		"cues", len(cues),
		"provider", provider,
		"target_language", targetLang,
		"input_language", inputLang,
		"model", cfg.Translate.Model,
	)

	opts := translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          cfg.Translate.Model,
		Prompt:         prompt,
		BatchSize:      cfg.Translate.BatchSize,
	}

	translator, err := translate.Factory(ctx, provider, cfg.Translate.APIKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating cues",
		"items", len(items),
		"concurrency", cfg.Translate.Concurrency,
	)

	var results []translate.TranslationResult
	if concurrentTranslator, ok := translator.(translate.ConcurrentTranslator); ok {
		results, err = concurrentTranslator.TranslateWithConcurrency(
			ctx,
			items,
			cfg.Translate.Concurrency,
		)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	logger.Infow("Translation complete",
		"results", len(results),
	)

	translated, err := translate.ApplyResults(cues, results)
	if err != nil {
		return fmt.Errorf("failed to apply translation: %w", err)
	}

	fr.Result.Cues = translated
	data, err := encodeJSON(newCueOutput(fr), prettyOutput(cmd))
	if err != nil {
		return err
	}
	return emit(cmd, data, outputPath, false)
}

func validateTranslateSettings(
	c *config.Config,
	inputLang string,
	targetLang string,
	modelOverride bool,
) error {
	if strings.TrimSpace(targetLang) == "" {
		return fmt.Errorf("target language is required")
	}

	if inputLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(inputLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	if err := c.Validate(); err != nil {
		return err
	}

	provider := translate.Provider(c.Translate.Provider)
	if c.Translate.APIKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			config.APIKeyEnv(c.Translate.Provider),
		)
	}

	if c.Translate.Model != "" && !modelOverride &&
		!isValidModel(provider, c.Translate.Model) {
		return fmt.Errorf(
			"unsupported %s model %q: valid models are %s (use --model-override to bypass)",
			provider,
			c.Translate.Model,
			strings.Join(knownModels[provider], ", "),
		)
	}
	return nil
}
