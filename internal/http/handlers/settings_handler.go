package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyfare/internal/settings"
)

type SettingsHandler struct {
	source settings.Source
}

func NewSettingsHandler(source settings.Source) *SettingsHandler {
	return &SettingsHandler{source: source}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.source.Load(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cfg)
}
