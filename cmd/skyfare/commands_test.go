package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/modules/flight"
	"skyfare/internal/modules/pricing"
	"skyfare/internal/settings"
	"skyfare/internal/types"
)

func newTestApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:     "skyfare",
		Writer:   out,
		Flags:    []cli.Flag{&cli.StringFlag{Name: "format", Value: "table"}},
		Commands: []*cli.Command{settingsCommand()},
	}
}

func TestSettingsDefaults_WritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	var out bytes.Buffer

	require.NoError(t, newTestApp(&out).Run([]string{"skyfare", "settings", "defaults", "--out", path}))
	assert.Contains(t, out.String(), "wrote "+path)

	cfg, err := settings.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), cfg)
}

func TestSettingsValidate_DiscountCeiling(t *testing.T) {
	cfg := settings.Defaults()
	cfg.SpecialOffers = []settings.OfferRate{{Name: "mega", Value: 95}}
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, settings.WriteFile(path, cfg))

	var out bytes.Buffer
	require.NoError(t, newTestApp(&out).Run([]string{"skyfare", "settings", "validate", "--file", path}))
	assert.Contains(t, out.String(), "warning:")
	assert.Contains(t, out.String(), "ok (1 special offers)")

	err := newTestApp(&out).Run([]string{"skyfare", "settings", "validate", "--strict", "--file", path})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestSettingsValidate_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := newTestApp(&out).Run([]string{"skyfare", "settings", "validate", "--file", filepath.Join(t.TempDir(), "nope.json")})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestRenderSelection(t *testing.T) {
	sel := aircraft.Selection{From: "Germany", To: "Japan", DistanceKm: 9000, Aircraft: aircraft.Catalog[2], Stops: 0}

	var out bytes.Buffer
	require.NoError(t, renderSelection(&out, "table", sel))
	assert.Contains(t, out.String(), "Germany -> Japan")
	assert.Contains(t, out.String(), "Long Haul")

	out.Reset()
	require.NoError(t, renderSelection(&out, "json", sel))
	assert.Contains(t, out.String(), `"distance_km": 9000`)
}

func TestRenderQuote_ShowsInfeasibleWarning(t *testing.T) {
	f := &flight.Flight{From: "A", To: "B", Departure: time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC), Airline: flight.Airline{Name: flight.DefaultAirline, Efficiency: 1}}
	q := pricing.Quote{
		Seat:  flight.Economy,
		Price: types.NewMoney(231.4712, ""),
		Breakdown: pricing.Breakdown{
			Discounts: []pricing.Adjustment{{Name: "student", Rate: 0.1}},
		},
		Infeasible: &pricing.InfeasibleError{MinPrice: 300, MaxPrice: 250, Expected: 231.47},
	}

	var out bytes.Buffer
	require.NoError(t, renderQuote(&out, "table", f, q))
	assert.Contains(t, out.String(), "Flight from A to B departing on 2026-12-20")
	assert.Contains(t, out.String(), "student 10%")
	assert.Contains(t, out.String(), "231.47 USD")
	assert.Contains(t, out.String(), "infeasible price bounds")
}

func TestOffersFromFlags(t *testing.T) {
	got := offersFromFlags([]string{"Summer", " ", " winter "})
	assert.Equal(t, []flight.SpecialOffer{{Name: "Summer"}, {Name: "winter"}}, got)
}
