package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyfare/internal/modules/aircraft"
)

// AircraftSelector is satisfied by aircraft.Selector.
type AircraftSelector interface {
	Select(ctx context.Context, from, to string) (aircraft.Selection, error)
}

type AircraftHandler struct {
	selector AircraftSelector
}

func NewAircraftHandler(selector AircraftSelector) *AircraftHandler {
	return &AircraftHandler{selector: selector}
}

// Selection handles GET /api/aircraft/selection?from=&to=.
func (h *AircraftHandler) Selection(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		writeError(c, http.StatusBadRequest, "from and to are required")
		return
	}
	sel, err := h.selector.Select(c.Request.Context(), from, to)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sel)
}

// Catalog handles GET /api/aircraft.
func (h *AircraftHandler) Catalog(c *gin.Context) {
	writeJSON(c, http.StatusOK, aircraft.Catalog)
}
