package cli

import (
	"slices"

	"github.com/mgpai22/srtcue/internal/translate"
)

var knownModels = map[translate.Provider][]string{
	translate.ProviderGemini: {
		"gemini-3-pro-preview",
		"gemini-3-flash-preview",
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
	},
	translate.ProviderOpenAI: {
		"o1",
		"o3-mini",
		"o1-pro",
		"o3",
		"gpt-5",
		"gpt-5-nano",
		"gpt-5-mini",
		"gpt-5-pro",
		"gpt-5.1",
		"gpt-5.2",
		"gpt-5.2-pro",
	},
	translate.ProviderAnthropic: {
		"claude-haiku-4-5",
		"claude-sonnet-4-5",
		"claude-opus-4-5",
		"claude-opus-4-1",
		"claude-sonnet-4-0",
	},
}

func isValidModel(provider translate.Provider, model string) bool {
	return slices.Contains(knownModels[provider], model)
}
