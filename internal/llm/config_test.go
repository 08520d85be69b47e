package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigGetModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
}

func TestConfigGetModel_FallbackChain(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierStandard: "std", TierLite: "lite"}}
	assert.Equal(t, "std", cfg.GetModel(TierAdvanced))

	cfg = &Config{Models: map[ModelTier]string{TierLite: "lite"}}
	assert.Equal(t, "lite", cfg.GetModel(TierAdvanced))

	cfg = &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", cfg.GetModel(TierAdvanced))
}

func TestConfigWithModel(t *testing.T) {
	base := DefaultConfig()
	override := base.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "custom-model", override.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", base.GetModel(TierStandard), "base config untouched")
	assert.Equal(t, base.GetModel(TierLite), override.GetModel(TierLite))
}
