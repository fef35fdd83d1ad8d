// README: Issued ticket lookup and cancellation handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyfare/internal/modules/ticket"
	"skyfare/internal/types"
)

// TicketService is satisfied by ticket.Service.
type TicketService interface {
	TicketSeller
	Get(ctx context.Context, id types.ID) (*ticket.Ticket, error)
	ListByFlight(ctx context.Context, flightID types.ID) ([]*ticket.Ticket, error)
	Cancel(ctx context.Context, cmd ticket.CancelCommand) (*ticket.Ticket, error)
}

type TicketHandler struct {
	tickets TicketService
}

func NewTicketHandler(tickets TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Get handles GET /api/tickets/:id.
func (h *TicketHandler) Get(c *gin.Context) {
	tk, err := h.tickets.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tk)
}

// ListByFlight handles GET /api/flights/:id/tickets.
func (h *TicketHandler) ListByFlight(c *gin.Context) {
	out, err := h.tickets.ListByFlight(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

type cancelReq struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /api/tickets/:id/cancel. The body is optional.
func (h *TicketHandler) Cancel(c *gin.Context) {
	var req cancelReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	tk, err := h.tickets.Cancel(c.Request.Context(), ticket.CancelCommand{
		TicketID: types.ID(c.Param("id")),
		Reason:   req.Reason,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tk)
}
