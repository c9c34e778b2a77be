package factory

import (
	"fmt"

	"github.com/newthinker/tickr/internal/config"
	"github.com/newthinker/tickr/internal/llm"
	"github.com/newthinker/tickr/internal/llm/claude"
	"github.com/newthinker/tickr/internal/llm/ollama"
	"github.com/newthinker/tickr/internal/llm/openai"
)

// New creates an LLM provider based on configuration. An empty provider
// name disables chat and returns a nil provider without error.
func New(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
	case "openai":
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	case "ollama":
		return ollama.New(cfg.Ollama.Endpoint, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
