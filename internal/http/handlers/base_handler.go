// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skyfare/internal/modules/flight"
	"skyfare/internal/modules/ticket"
	"skyfare/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps error categories to HTTP statuses.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, flight.ErrSoldOut),
		errors.Is(err, ticket.ErrInvalidState),
		errors.Is(err, ticket.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrLookup):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, types.ErrConfiguration):
		slog.Error("pricing configuration error", "path", c.FullPath(), "error", err)
		writeError(c, http.StatusInternalServerError, err.Error())
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// parseDate reads a YYYY-MM-DD value; empty input yields nil.
func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(flight.DateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
