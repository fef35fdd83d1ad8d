package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/types"
)

func TestWriteThenLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, WriteFile(path, Defaults()))

	cfg, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFile_FormStyleRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{
    "advanced_booking_discount": "20",
    "base_price": "150",
    "business_factor": "2.5",
    "economy_factor": "1",
    "efficiency": "0.9",
    "extended_cost_factor": "1.2",
    "first_class_factor": "4",
    "fuel_cost": "0.5",
    "holiday_factor": "20",
    "late_booking": "15",
    "long_cost_factor": "1.5",
    "luggage_surcharge": "5",
    "narrow_cost_factor": "1.0",
    "premium_economy_factor": "1.5",
    "roundtrip_discount": "10",
    "special_offers": [{"name": "Student", "value": "15%"}],
    "stop_discount": "5",
    "student_discount": "15",
    "tourist_surcharge": "12",
    "ultra_cost_factor": "2.0",
    "weekend_surcharge": "10"
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 150.0, cfg.BasePrice)
	assert.Equal(t, []OfferRate{{Name: "Student", Value: 15}}, cfg.SpecialOffers)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, types.ErrConfiguration)
}
