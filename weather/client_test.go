package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":      r.URL.Query().Get("latitude"),
			"longitude":     r.URL.Query().Get("longitude"),
			"timezone":      r.URL.Query().Get("timezone"),
			"forecast_days": r.URL.Query().Get("forecast_days"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"current": {
				"temperature_2m": 21.4,
				"relative_humidity_2m": 81,
				"precipitation": 0.3,
				"weather_code": 61
			},
			"daily": {
				"temperature_2m_max": [24.1, 23.8, null],
				"temperature_2m_min": [13.2, 12.9, 13.0],
				"precipitation_sum": [5.5, null, 2.0]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	snap, ok := client.Fetch(context.Background(), "Kiambu")
	require.True(t, ok)

	assert.Equal(t, "-1.17", gotQuery["latitude"])
	assert.Equal(t, "36.82", gotQuery["longitude"])
	assert.Equal(t, "Africa/Nairobi", gotQuery["timezone"])
	assert.Equal(t, "7", gotQuery["forecast_days"])

	require.NotNil(t, snap.Temperature)
	assert.Equal(t, 21.4, *snap.Temperature)
	require.NotNil(t, snap.Humidity)
	assert.Equal(t, 81.0, *snap.Humidity)
	assert.Equal(t, 0.3, snap.Precipitation)
	assert.Equal(t, 61, snap.Code)
	assert.Equal(t, "Rain", snap.Condition())

	require.NotNil(t, snap.TodayHigh())
	assert.Equal(t, 24.1, *snap.TodayHigh())
	require.NotNil(t, snap.TodayLow())
	assert.Equal(t, 13.2, *snap.TodayLow())

	// Nulls are skipped in the weekly total, not treated as zero entries.
	assert.InDelta(t, 7.5, snap.WeekPrecipitation(), 1e-9)
}

func TestClient_Fetch_UnknownCountyUsesFallbackCoords(t *testing.T) {
	var lat, lon string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lat = r.URL.Query().Get("latitude")
		lon = r.URL.Query().Get("longitude")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, ok := client.Fetch(context.Background(), "Atlantis")
	require.True(t, ok)
	assert.Equal(t, "-1.29", lat)
	assert.Equal(t, "36.82", lon)
}

func TestClient_Fetch_DefaultsWhenFieldsMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current": {"temperature_2m": 19.0}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	snap, ok := client.Fetch(context.Background(), "Nakuru")
	require.True(t, ok)

	assert.Equal(t, 0.0, snap.Precipitation)
	assert.Equal(t, 0, snap.Code)
	assert.Equal(t, "Clear", snap.Condition())
	assert.Nil(t, snap.Humidity)

	// Missing daily block degrades to single null entries.
	assert.Nil(t, snap.TodayHigh())
	assert.Nil(t, snap.TodayLow())
	assert.Equal(t, 0.0, snap.WeekPrecipitation())
}

func TestClient_Fetch_FailuresReturnNotOK(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, ok := NewClient(srv.URL, time.Second, nil).Fetch(context.Background(), "Kiambu")
		assert.False(t, ok)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"current": `))
		}))
		defer srv.Close()

		_, ok := NewClient(srv.URL, time.Second, nil).Fetch(context.Background(), "Kiambu")
		assert.False(t, ok)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // closed before use

		_, ok := NewClient(srv.URL, time.Second, nil).Fetch(context.Background(), "Kiambu")
		assert.False(t, ok)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, ok := NewClient(srv.URL, 20*time.Millisecond, nil).Fetch(context.Background(), "Kiambu")
		assert.False(t, ok)
	})
}
