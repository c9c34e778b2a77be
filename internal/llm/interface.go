package llm

import (
	"context"
	"strings"

	"github.com/newthinker/tickr/internal/core"
)

// Provider defines the interface for LLM providers
type Provider interface {
	Name() string
	Model() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest holds the request parameters
type ChatRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float64
}

// Message represents a chat message
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ChatResponse holds the response from the LLM
type ChatResponse struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Reply sends a single user prompt and returns the trimmed answer.
// Provider failures are wrapped in core.ErrLLMFailed.
func Reply(ctx context.Context, p Provider, systemPrompt, prompt string, maxTokens int) (string, error) {
	resp, err := p.Chat(ctx, ChatRequest{
		SystemPrompt: systemPrompt,
		Messages:     []Message{{Role: "user", Content: prompt}},
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return "", core.WrapError(core.ErrLLMFailed, err)
	}
	return strings.TrimSpace(resp.Content), nil
}
