// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyfare/internal/http/handlers"
	"skyfare/internal/http/middleware"
	"skyfare/internal/settings"
)

type RouterDeps struct {
	Aircraft handlers.AircraftSelector
	Flights  handlers.FlightService
	Pricer   handlers.Pricer
	Tickets  handlers.TicketService
	Settings settings.Source
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	aircraftHandler := handlers.NewAircraftHandler(deps.Aircraft)
	api.GET("/aircraft", aircraftHandler.Catalog)
	api.GET("/aircraft/selection", aircraftHandler.Selection)

	flightHandler := handlers.NewFlightHandler(deps.Flights, deps.Pricer, deps.Tickets)
	api.POST("/flights", flightHandler.Plan)
	api.GET("/flights", flightHandler.Search)
	api.GET("/flights/:id", flightHandler.Get)
	api.POST("/flights/:id/quote", flightHandler.Quote)
	api.POST("/flights/:id/tickets", flightHandler.BuyTicket)

	ticketHandler := handlers.NewTicketHandler(deps.Tickets)
	api.GET("/flights/:id/tickets", ticketHandler.ListByFlight)
	api.GET("/tickets/:id", ticketHandler.Get)
	api.POST("/tickets/:id/cancel", ticketHandler.Cancel)

	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	api.GET("/settings", settingsHandler.Get)

	return r
}
