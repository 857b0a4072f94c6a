// Package weather fetches current conditions and a 7-day forecast from the
// public Open-Meteo API (free, no key).
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"resilienceplanner"
	"resilienceplanner/geo"
)

const (
	DefaultEndpoint = "https://api.open-meteo.com/v1/forecast"
	DefaultTimeout  = 8 * time.Second

	forecastDays = 7
	timezone     = "Africa/Nairobi"
)

// Snapshot holds one fetched forecast. Nullable upstream fields stay pointers
// so absent values are distinguishable from zero.
type Snapshot struct {
	Temperature   *float64   `json:"temperature"`
	Humidity      *float64   `json:"humidity"`
	Precipitation float64    `json:"precipitation"`
	Code          int        `json:"weather_code"`
	DailyHighs    []*float64 `json:"daily_highs"`
	DailyLows     []*float64 `json:"daily_lows"`
	DailyRain     []*float64 `json:"daily_rain"`
}

// Condition is the readable label for the current weather code.
func (s Snapshot) Condition() string {
	return Describe(s.Code)
}

// TodayHigh returns the first daily maximum, nil when the service sent none.
func (s Snapshot) TodayHigh() *float64 {
	if len(s.DailyHighs) == 0 {
		return nil
	}
	return s.DailyHighs[0]
}

// TodayLow returns the first daily minimum, nil when the service sent none.
func (s Snapshot) TodayLow() *float64 {
	if len(s.DailyLows) == 0 {
		return nil
	}
	return s.DailyLows[0]
}

// WeekPrecipitation sums the non-null daily precipitation entries. The
// upstream array may be short or hold nulls; nulls are skipped, not imputed.
func (s Snapshot) WeekPrecipitation() float64 {
	var total float64
	for _, p := range s.DailyRain {
		if p != nil {
			total += *p
		}
	}
	return total
}

// Client fetches county forecasts. A failed or malformed fetch is reported
// via the ok result, never as an error: weather being down is an expected
// condition the caller degrades from, not a fault to propagate.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient resilienceplanner.HTTPClient
}

func NewClient(endpoint string, timeout time.Duration, httpClient resilienceplanner.HTTPClient) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// Fetch retrieves the current weather and 7-day forecast for a county.
// ok is false on any network error, timeout, non-200 status, or body that
// does not decode; the Snapshot is only valid when ok is true.
func (c *Client) Fetch(ctx context.Context, county string) (Snapshot, bool) {
	lat, lon := geo.Coordinates(county)

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.2f", lat))
	query.Set("longitude", fmt.Sprintf("%.2f", lon))
	query.Set("current", "temperature_2m,relative_humidity_2m,precipitation,weather_code")
	query.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	query.Set("timezone", timezone)
	query.Set("forecast_days", fmt.Sprintf("%d", forecastDays))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		slog.Warn("WEATHER: failed to build request", "county", county, "error", err)
		return Snapshot{}, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("WEATHER: fetch failed", "county", county, "error", err)
		return Snapshot{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("WEATHER: unexpected status", "county", county, "status", resp.Status, "body", string(body))
		return Snapshot{}, false
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Warn("WEATHER: failed to decode response", "county", county, "error", err)
		return Snapshot{}, false
	}

	return payload.toSnapshot(), true
}

type openMeteoResponse struct {
	Current *openMeteoCurrent `json:"current"`
	Daily   *openMeteoDaily   `json:"daily"`
}

type openMeteoCurrent struct {
	Temperature   *float64 `json:"temperature_2m"`
	Humidity      *float64 `json:"relative_humidity_2m"`
	Precipitation *float64 `json:"precipitation"`
	WeatherCode   *int     `json:"weather_code"`
}

type openMeteoDaily struct {
	TempMax          []*float64 `json:"temperature_2m_max"`
	TempMin          []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}

func (r openMeteoResponse) toSnapshot() Snapshot {
	var snap Snapshot

	if r.Current != nil {
		snap.Temperature = r.Current.Temperature
		snap.Humidity = r.Current.Humidity
		if r.Current.Precipitation != nil {
			snap.Precipitation = *r.Current.Precipitation
		}
		if r.Current.WeatherCode != nil {
			snap.Code = *r.Current.WeatherCode
		}
	}

	// A missing daily array degrades to a single null entry so "today"
	// reads stay in bounds.
	snap.DailyHighs = []*float64{nil}
	snap.DailyLows = []*float64{nil}
	snap.DailyRain = []*float64{nil}
	if r.Daily != nil {
		if len(r.Daily.TempMax) > 0 {
			snap.DailyHighs = r.Daily.TempMax
		}
		if len(r.Daily.TempMin) > 0 {
			snap.DailyLows = r.Daily.TempMin
		}
		if len(r.Daily.PrecipitationSum) > 0 {
			snap.DailyRain = r.Daily.PrecipitationSum
		}
	}

	return snap
}
