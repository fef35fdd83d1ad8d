// README: Flight planning, search, quoting and seat sale handlers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skyfare/internal/modules/flight"
	"skyfare/internal/modules/pricing"
	"skyfare/internal/modules/ticket"
	"skyfare/internal/types"
)

// FlightService is satisfied by flight.Service.
type FlightService interface {
	Plan(ctx context.Context, req flight.PlanRequest) (*flight.Flight, error)
	Get(ctx context.Context, id types.ID) (*flight.Flight, error)
	Search(ctx context.Context, q flight.SearchQuery) ([]*flight.Flight, error)
}

// Pricer is satisfied by pricing.Service.
type Pricer interface {
	Estimate(ctx context.Context, t flight.TicketRequest) (pricing.Quote, error)
}

// TicketSeller is satisfied by ticket.Service.
type TicketSeller interface {
	Sell(ctx context.Context, req flight.TicketRequest, q pricing.Quote) (*ticket.Ticket, *flight.Flight, error)
}

type FlightHandler struct {
	flights FlightService
	pricer  Pricer
	tickets TicketSeller
	now     func() time.Time
}

func NewFlightHandler(flights FlightService, pricer Pricer, tickets TicketSeller) *FlightHandler {
	return &FlightHandler{flights: flights, pricer: pricer, tickets: tickets, now: time.Now}
}

type planFlightReq struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Departure string `json:"departure"`
	Return    string `json:"return"`
	Airline   string `json:"airline"`
}

type flightResp struct {
	*flight.Flight
	Summary string `json:"summary"`
}

func toFlightResp(f *flight.Flight) flightResp {
	return flightResp{Flight: f, Summary: f.Summary()}
}

// Plan handles POST /api/flights.
func (h *FlightHandler) Plan(c *gin.Context) {
	var req planFlightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.From == "" || req.To == "" || req.Departure == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	dep, err := parseDate(req.Departure)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid departure date")
		return
	}
	ret, err := parseDate(req.Return)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid return date")
		return
	}

	f, err := h.flights.Plan(c.Request.Context(), flight.PlanRequest{
		From:      req.From,
		To:        req.To,
		Departure: *dep,
		Return:    ret,
		Airline:   req.Airline,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toFlightResp(f))
}

// Search handles GET /api/flights?from=&to=&departure=&return=.
func (h *FlightHandler) Search(c *gin.Context) {
	dep, err := parseDate(c.Query("departure"))
	if err != nil || dep == nil {
		writeError(c, http.StatusBadRequest, "invalid departure date")
		return
	}
	ret, err := parseDate(c.Query("return"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid return date")
		return
	}

	found, err := h.flights.Search(c.Request.Context(), flight.SearchQuery{
		From:      c.Query("from"),
		To:        c.Query("to"),
		Departure: *dep,
		Return:    ret,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]flightResp, 0, len(found))
	for _, f := range found {
		out = append(out, toFlightResp(f))
	}
	writeJSON(c, http.StatusOK, out)
}

// Get handles GET /api/flights/:id.
func (h *FlightHandler) Get(c *gin.Context) {
	f, err := h.flights.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toFlightResp(f))
}

type ticketReq struct {
	Seat           string                `json:"seat"`
	ExtraLuggageKg float64               `json:"extra_luggage_kg"`
	SpecialOffers  []flight.SpecialOffer `json:"special_offers"`
	Student        bool                  `json:"student"`
	// ReservedAt defaults to the time the request is served.
	ReservedAt *time.Time `json:"reserved_at"`
}

// Quote handles POST /api/flights/:id/quote.
func (h *FlightHandler) Quote(c *gin.Context) {
	t, ok := h.bindTicket(c)
	if !ok {
		return
	}
	q, err := h.pricer.Estimate(c.Request.Context(), t)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

// BuyTicket handles POST /api/flights/:id/tickets: the seat is priced at the
// current load, then sold and a ticket issued at that price.
func (h *FlightHandler) BuyTicket(c *gin.Context) {
	t, ok := h.bindTicket(c)
	if !ok {
		return
	}
	if t.Flight.SeatsLeft() <= 0 {
		writeDomainError(c, flight.ErrSoldOut)
		return
	}
	q, err := h.pricer.Estimate(c.Request.Context(), t)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	tk, f, err := h.tickets.Sell(c.Request.Context(), t, q)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{
		"ticket":     tk,
		"quote":      q,
		"sold_seats": f.SoldSeats,
		"seats_left": f.SeatsLeft(),
	})
}

func (h *FlightHandler) bindTicket(c *gin.Context) (flight.TicketRequest, bool) {
	var req ticketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return flight.TicketRequest{}, false
	}
	seat, err := flight.ParseSeatType(req.Seat)
	if err != nil {
		writeDomainError(c, err)
		return flight.TicketRequest{}, false
	}
	f, err := h.flights.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return flight.TicketRequest{}, false
	}

	reserved := h.now()
	if req.ReservedAt != nil {
		reserved = *req.ReservedAt
	}
	return flight.TicketRequest{
		ReservedAt:     reserved,
		Flight:         f,
		Seat:           seat,
		ExtraLuggageKg: req.ExtraLuggageKg,
		SpecialOffers:  req.SpecialOffers,
		Student:        req.Student,
	}, true
}
