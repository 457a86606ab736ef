package config

import (
	"fmt"
)

var validProviders = map[string]bool{
	"gemini":    true,
	"openai":    true,
	"anthropic": true,
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if !validProviders[c.Translate.Provider] {
		return fmt.Errorf(
			"unsupported translation provider %q: use gemini, openai, or anthropic",
			c.Translate.Provider,
		)
	}
	if c.Translate.Concurrency <= 0 {
		return fmt.Errorf(
			"translate.concurrency must be positive, got %d",
			c.Translate.Concurrency,
		)
	}
	if c.Translate.BatchSize <= 0 {
		return fmt.Errorf(
			"translate.batch_size must be positive, got %d",
			c.Translate.BatchSize,
		)
	}
	return nil
}
