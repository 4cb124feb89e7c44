package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"items\": []}\n```"
	assert.Equal(t, `{"items": []}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFenceWithLanguage(t *testing.T) {
	input := "```javascript\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `  {"a": 1}  `
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_FenceDirectlyBeforeBrace(t *testing.T) {
	input := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestGetModel_FallsBackToStandard(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierStandard: "gemini-2.5-flash"}}
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierLite))
}

func TestGetModel_NoModelsConfigured(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", cfg.GetModel(TierStandard))
}
