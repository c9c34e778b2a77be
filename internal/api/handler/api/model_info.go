package api

import (
	"net/http"

	"github.com/newthinker/tickr/internal/api/response"
	"github.com/newthinker/tickr/internal/app"
)

// ModelInfoProvider describes the active model.
type ModelInfoProvider interface {
	ModelInfo() app.ModelInfo
}

// ModelInfoHandler serves model metadata for the chat page.
type ModelInfoHandler struct {
	provider ModelInfoProvider
}

// NewModelInfoHandler creates a new model info handler.
func NewModelInfoHandler(p ModelInfoProvider) *ModelInfoHandler {
	return &ModelInfoHandler{provider: p}
}

// Get handles GET /model-info
func (h *ModelInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.provider.ModelInfo())
}
