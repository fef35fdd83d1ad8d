package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"skyfare/internal/app"
	"skyfare/internal/config"
	"skyfare/internal/modules/flight"
	"skyfare/internal/settings"
)

// withApp loads configuration, wires the services and hands them to fn.
func withApp(c *cli.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("wiring services: %w", err)
	}
	defer a.Close()
	return fn(ctx, a)
}

// =============================================================================
// AIRCRAFT COMMAND
// =============================================================================

func aircraftCommand() *cli.Command {
	return &cli.Command{
		Name:  "aircraft",
		Usage: "Select the aircraft class and stops for a route",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Origin country", Required: true},
			&cli.StringFlag{Name: "to", Usage: "Destination country", Required: true},
		},
		Action: func(c *cli.Context) error {
			return withApp(c, func(ctx context.Context, a *app.App) error {
				sel, err := a.Selector.Select(ctx, c.String("from"), c.String("to"))
				if err != nil {
					return err
				}
				return renderSelection(c.App.Writer, c.String("format"), sel)
			})
		},
	}
}

// =============================================================================
// QUOTE COMMAND
// =============================================================================

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Price one ticket on an ad-hoc flight (nothing is stored)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Origin country", Required: true},
			&cli.StringFlag{Name: "to", Usage: "Destination country", Required: true},
			&cli.StringFlag{Name: "departure", Usage: "Departure date (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: "return", Usage: "Return date (YYYY-MM-DD), roundtrip only"},
			&cli.StringFlag{Name: "airline", Value: flight.DefaultAirline, Usage: "Operating airline"},
			&cli.StringFlag{Name: "seat", Value: string(flight.Economy), Usage: "Seat type"},
			&cli.Float64Flag{Name: "luggage", Usage: "Extra luggage in kg"},
			&cli.StringSliceFlag{Name: "offer", Usage: "Special offer name (repeatable)"},
			&cli.BoolFlag{Name: "student", Usage: "Apply the student discount"},
			&cli.IntFlag{Name: "sold", Usage: "Seats already sold on the flight"},
			&cli.TimestampFlag{Name: "reserved-at", Layout: time.RFC3339, Usage: "Reservation time (RFC3339), defaults to now"},
		},
		Action: runQuote,
	}
}

func runQuote(c *cli.Context) error {
	req, err := planRequestFromFlags(c)
	if err != nil {
		return err
	}
	seat, err := flight.ParseSeatType(c.String("seat"))
	if err != nil {
		return err
	}
	reservedAt := time.Now().UTC()
	if ts := c.Timestamp("reserved-at"); ts != nil {
		reservedAt = *ts
	}

	return withApp(c, func(ctx context.Context, a *app.App) error {
		f, err := a.Flights.Build(ctx, req)
		if err != nil {
			return err
		}
		f.SoldSeats = c.Int("sold")
		ticket := flight.TicketRequest{
			ReservedAt:     reservedAt,
			Flight:         f,
			Seat:           seat,
			ExtraLuggageKg: c.Float64("luggage"),
			SpecialOffers:  offersFromFlags(c.StringSlice("offer")),
			Student:        c.Bool("student"),
		}
		q, err := a.Pricing.Estimate(ctx, ticket)
		if err != nil {
			return err
		}
		if q.Infeasible != nil {
			slog.Warn("quote used the expected price", "reason", q.Infeasible.Error())
		}
		return renderQuote(c.App.Writer, c.String("format"), f, q)
	})
}

func planRequestFromFlags(c *cli.Context) (flight.PlanRequest, error) {
	dep, err := time.Parse(flight.DateLayout, c.String("departure"))
	if err != nil {
		return flight.PlanRequest{}, fmt.Errorf("invalid --departure %q: %w", c.String("departure"), err)
	}
	req := flight.PlanRequest{
		From:      c.String("from"),
		To:        c.String("to"),
		Departure: dep,
		Airline:   c.String("airline"),
	}
	if raw := c.String("return"); raw != "" {
		ret, err := time.Parse(flight.DateLayout, raw)
		if err != nil {
			return flight.PlanRequest{}, fmt.Errorf("invalid --return %q: %w", raw, err)
		}
		req.Return = &ret
	}
	return req, nil
}

func offersFromFlags(names []string) []flight.SpecialOffer {
	var out []flight.SpecialOffer
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, flight.SpecialOffer{Name: n})
	}
	return out
}

// =============================================================================
// SETTINGS COMMAND
// =============================================================================

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Pricing settings file utilities",
		Subcommands: []*cli.Command{
			{
				Name:  "defaults",
				Usage: "Print or write the default pricing settings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write to this file instead of stdout"},
				},
				Action: func(c *cli.Context) error {
					cfg := settings.Defaults()
					if out := c.String("out"); out != "" {
						if err := settings.WriteFile(out, cfg); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
						return nil
					}
					return writeJSON(c.App.Writer, cfg.Record())
				},
			},
			{
				Name:  "validate",
				Usage: "Check a pricing settings file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Settings JSON file", Required: true},
					&cli.BoolFlag{Name: "strict", Usage: "Fail when stacked discounts can exceed 100%"},
				},
				Action: func(c *cli.Context) error {
					return validateSettings(c.App.Writer, c.String("file"), c.Bool("strict"))
				},
			},
		},
	}
}
