package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegk04/weather-lookup/internal/weather"
)

const forecastPayload = `{
	"list": [
		{
			"dt": 1705320000,
			"main": {"temp": 48.2, "feels_like": 45.1, "humidity": 62},
			"weather": [{"main": "Clouds", "description": "broken clouds", "icon": "04d"}],
			"wind": {"speed": 9.3},
			"pop": 0.25,
			"dt_txt": "2024-01-15 12:00:00"
		},
		{
			"dt": 1705330800,
			"main": {"temp": 51.7, "feels_like": 49.9, "humidity": 55},
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
			"wind": {"speed": 7.1},
			"pop": 0,
			"dt_txt": "2024-01-15 15:00:00"
		}
	],
	"city": {"name": "Austin", "country": "US"}
}`

func newTestProvider(serverURL string) *OpenWeatherProvider {
	p := NewOpenWeatherProvider(http.DefaultClient, "test-key")
	p.baseURL = serverURL
	p.httpCfg.Backoff.MaxRetries = 0
	return p
}

func TestFetchForecastDecodesSamples(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("appid") != "test-key" {
			t.Errorf("missing appid parameter")
		}
		if r.URL.Query().Get("units") != "imperial" {
			t.Errorf("units = %q, want imperial", r.URL.Query().Get("units"))
		}
		w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	resp, err := p.FetchForecast(context.Background(), "Austin,TX,US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "Austin,TX,US" {
		t.Errorf("query sent = %q, want Austin,TX,US", gotQuery)
	}
	if resp.Location != "Austin, US" {
		t.Errorf("location = %q, want Austin, US", resp.Location)
	}
	if len(resp.Samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(resp.Samples))
	}

	first := resp.Samples[0]
	if first.Timestamp != 1705320000 {
		t.Errorf("timestamp = %d, want 1705320000", first.Timestamp)
	}
	if first.Temp != 48.2 || first.FeelsLike != 45.1 {
		t.Errorf("temp/feelsLike = %v/%v, want 48.2/45.1", first.Temp, first.FeelsLike)
	}
	if first.Humidity != 62 {
		t.Errorf("humidity = %d, want 62", first.Humidity)
	}
	if first.Condition != "Clouds" || first.Icon != "04d" {
		t.Errorf("condition/icon = %q/%q, want Clouds/04d", first.Condition, first.Icon)
	}
	if first.Pop != 0.25 {
		t.Errorf("pop = %v, want 0.25", first.Pop)
	}
	if first.LocalText != "2024-01-15 12:00:00" {
		t.Errorf("localText = %q", first.LocalText)
	}
}

func TestFetchForecastStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, weather.ErrBadQuery},
		{http.StatusNotFound, weather.ErrNotFound},
		{http.StatusUnauthorized, weather.ErrUpstream},
		{http.StatusInternalServerError, weather.ErrUpstream},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		p := newTestProvider(server.URL)
		_, err := p.FetchForecast(context.Background(), "Nowhere,US")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}

		server.Close()
	}
}

func TestFetchForecastRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	p.httpCfg.Backoff.MaxRetries = 2

	resp, err := p.FetchForecast(context.Background(), "Austin,US")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(resp.Samples) != 2 {
		t.Errorf("samples = %d, want 2", len(resp.Samples))
	}
}

func TestFetchForecastDoesNotRetryNotFound(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	p.httpCfg.Backoff.MaxRetries = 3

	_, err := p.FetchForecast(context.Background(), "Nowhere,US")
	if !errors.Is(err, weather.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retries for 404)", attempts)
	}
}

func TestFetchForecastMissingAPIKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	_, err := p.FetchForecast(context.Background(), "Austin,US")
	if !errors.Is(err, weather.ErrUpstream) {
		t.Fatalf("expected ErrUpstream for missing key, got %v", err)
	}
}
