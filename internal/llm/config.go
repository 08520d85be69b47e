package llm

// ModelTier selects model capability rather than a concrete model name.
type ModelTier string

const (
	// TierLite handles cheap tasks: classification, keyword extraction.
	TierLite ModelTier = "lite"
	// TierStandard handles moderate structured-output work.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles the heavier reasoning calls.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to concrete provider models.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the stock Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name, falling back through standard
// and lite when the requested tier is unconfigured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
