package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/modules/flight"
	"skyfare/internal/modules/pricing"
	"skyfare/internal/settings"
)

var (
	priceStyle   = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderSelection(w io.Writer, format string, sel aircraft.Selection) error {
	if format == "json" {
		return writeJSON(w, sel)
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Route", "Distance (km)", "Aircraft", "Range (km)", "Capacity", "Stops"})
	t.AppendRow(table.Row{
		sel.From + " -> " + sel.To,
		fmt.Sprintf("%.1f", sel.DistanceKm),
		sel.Aircraft.Name,
		sel.Aircraft.RangeKm,
		sel.Aircraft.Capacity,
		sel.Stops,
	})
	t.Render()
	return nil
}

func renderQuote(w io.Writer, format string, f *flight.Flight, q pricing.Quote) error {
	if format == "json" {
		return writeJSON(w, struct {
			Flight *flight.Flight `json:"flight"`
			Quote  pricing.Quote  `json:"quote"`
		}{f, q})
	}

	fmt.Fprintln(w, f.Summary())
	b := q.Breakdown
	t := newTable(w)
	t.AppendHeader(table.Row{"Step", "Value"})
	t.AppendRows([]table.Row{
		{"seat", q.Seat.String()},
		{"base price", fmt.Sprintf("%.2f (seat factor %.2f)", b.BasePrice, b.SeatFactor)},
		{"aircraft cost", fmt.Sprintf("%.2f (%s x %.2f)", b.AircraftCost, b.CostBucket, b.CostFactor)},
		{"demand", fmt.Sprintf("%.4f (load %.2f, tourism %s)", b.Demand, q.Signals.LoadFactor, q.Signals.Tourism)},
		{"discounts", adjustmentList(b.Discounts, b.DiscountTotal)},
		{"surcharges", adjustmentList(b.Surcharges, b.SurchargeTotal)},
		{"expected", fmt.Sprintf("%.2f", b.Expected)},
		{"operating floor", fmt.Sprintf("%.2f", b.OperatingFloor)},
		{"bounds", fmt.Sprintf("[%.2f, %.2f]", b.MinPrice, b.MaxPrice)},
	})
	t.Render()

	fmt.Fprintln(w, priceStyle.Render(fmt.Sprintf("Price: %s %s", q.Price.Amount.StringFixed(2), q.Price.Currency)))
	if q.Infeasible != nil {
		fmt.Fprintln(w, warningStyle.Render(q.Infeasible.Error()))
	}
	return nil
}

func adjustmentList(adj []pricing.Adjustment, total float64) string {
	if len(adj) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(adj))
	for _, a := range adj {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", a.Name, a.Rate*100))
	}
	return fmt.Sprintf("%s (total %.0f%%)", strings.Join(parts, ", "), total*100)
}

// validateSettings loads a settings file. The stacked discount check is a warning
// unless strict is set.
func validateSettings(w io.Writer, path string, strict bool) error {
	cfg, err := settings.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDiscountCeiling(); err != nil {
		var fe *settings.FieldError
		if strict || !errors.As(err, &fe) {
			return err
		}
		fmt.Fprintln(w, warningStyle.Render("warning: "+err.Error()))
	}
	fmt.Fprintf(w, "%s: ok (%d special offers)\n", path, len(cfg.SpecialOffers))
	return nil
}
