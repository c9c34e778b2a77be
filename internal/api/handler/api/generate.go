package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/newthinker/tickr/internal/api/response"
	"github.com/newthinker/tickr/internal/app"
	"github.com/newthinker/tickr/internal/core"
	"github.com/newthinker/tickr/internal/metrics"
)

// MaxPromptLength bounds the prompt accepted by /generate.
const MaxPromptLength = 4000

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

// Generator answers prompts.
type Generator interface {
	Generate(ctx context.Context, prompt, requestID string) (*app.Reply, error)
}

// GenerateHandler handles chat prompt requests.
type GenerateHandler struct {
	gen      Generator
	validate *validator.Validate
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(gen Generator) *GenerateHandler {
	return &GenerateHandler{gen: gen, validate: validator.New()}
}

// Generate handles POST /generate
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}

	reply, err := h.gen.Generate(r.Context(), req.Prompt, r.Header.Get(metrics.RequestIDHeader))
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, reply)
}
