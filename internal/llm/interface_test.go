package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/newthinker/tickr/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	content string
	err     error
	got     ChatRequest
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-1" }

func (s *stubProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &ChatResponse{Content: s.content}, nil
}

func TestReply(t *testing.T) {
	p := &stubProvider{content: "  hello there \n"}

	out, err := Reply(context.Background(), p, "be brief", "hi", 200)
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	assert.Equal(t, "be brief", p.got.SystemPrompt)
	assert.Equal(t, 200, p.got.MaxTokens)
	require.Len(t, p.got.Messages, 1)
	assert.Equal(t, Message{Role: "user", Content: "hi"}, p.got.Messages[0])
}

func TestReply_WrapsProviderError(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}

	_, err := Reply(context.Background(), p, "", "hi", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrLLMFailed))
	assert.Contains(t, err.Error(), "connection refused")
}
