package feeds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/types"
)

func TestHolidayClient_Holidays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/holidays", r.URL.Path)
		assert.Equal(t, "Japan", r.URL.Query().Get("country"))
		assert.Equal(t, "public_holiday", r.URL.Query().Get("type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(`[
			{"country": "Japan", "iso": "JP", "year": 2025, "date": "2025-01-01", "day": "Wednesday", "name": "New Year's Day", "type": "PUBLIC_HOLIDAY"},
			{"country": "Japan", "iso": "JP", "year": 2025, "date": "2025-08-11", "day": "Monday", "name": "Mountain Day", "type": "PUBLIC_HOLIDAY"}
		]`))
	}))
	defer srv.Close()

	c := NewHolidayClient(srv.URL, "secret", time.Second)
	days, err := c.Holidays(context.Background(), "Japan")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC), days[1])
}

func TestHolidayClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid API Key."}`))
	}))
	defer srv.Close()

	_, err := NewHolidayClient(srv.URL, "bad", time.Second).Holidays(context.Background(), "Japan")
	assert.True(t, errors.Is(err, types.ErrLookup))

	_, err = NewHolidayClient(srv.URL, "", time.Second).Holidays(context.Background(), "Japan")
	assert.True(t, errors.Is(err, types.ErrLookup))
}

type staticCoder map[string]string

func (s staticCoder) CountryCode(_ context.Context, country string) (string, error) {
	if code, ok := s[country]; ok {
		return code, nil
	}
	return "", errors.New("unknown")
}

func TestTourismClient_FirstNonNullValue(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`[
			{"page": 1, "pages": 2, "per_page": 50, "total": 64},
			[
				{"indicator": {"id": "ST.INT.ARVL"}, "date": "2023", "value": null},
				{"indicator": {"id": "ST.INT.ARVL"}, "date": "2022", "value": null},
				{"indicator": {"id": "ST.INT.ARVL"}, "date": "2020", "value": 4116000},
				{"indicator": {"id": "ST.INT.ARVL"}, "date": "2019", "value": 31882000}
			]
		]`))
	}))
	defer srv.Close()

	c := NewTourismClient(srv.URL, staticCoder{"Japan": "JP"}, time.Second)
	v, err := c.Arrivals(context.Background(), "Japan")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 4116000.0, *v)
	assert.Equal(t, "/v2/country/JP/indicator/ST.INT.ARVL", gotPath)
}

func TestTourismClient_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"page": 1, "pages": 1, "total": 2}, [{"date": "2023", "value": null}, {"date": "2022", "value": null}]]`))
	}))
	defer srv.Close()

	v, err := NewTourismClient(srv.URL, nil, time.Second).Arrivals(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTourismClient_FallsBackToCountryName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[{"message": [{"id": "120", "key": "Invalid value"}]}]`))
	}))
	defer srv.Close()

	_, err := NewTourismClient(srv.URL, staticCoder{}, time.Second).Arrivals(context.Background(), "Narnia")
	assert.True(t, errors.Is(err, types.ErrLookup))
	assert.Equal(t, "/v2/country/Narnia/indicator/ST.INT.ARVL", gotPath)
}
