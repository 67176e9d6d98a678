package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/olegk04/weather-lookup/internal/weather"
)

// OpenWeatherProvider fetches the 5-day/3-hour forecast from OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	units   string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		units:   "imperial",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
		// Free-tier quota is 60 calls/minute; stay comfortably under it.
		limiter: rate.NewLimiter(rate.Limit(0.5), 3),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchForecast retrieves the 3-hour forecast series for a provider-formatted
// query ("Austin,TX,US", "78701,US") and normalizes it into RawSamples plus a
// resolved "City, CC" location name.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, query string) (weather.ForecastResponse, error) {
	if p.apiKey == "" {
		return weather.ForecastResponse{}, fmt.Errorf("%w: openweather api key is not configured", weather.ErrUpstream)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", p.units)
		values.Set("q", query)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, p.limiter, buildRequest)
	if err != nil {
		return weather.ForecastResponse{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
				Humidity  int     `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Pop     float64 `json:"pop"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
			DtTxt string `json:"dt_txt"`
		} `json:"list"`
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastResponse{}, fmt.Errorf("%w: decoding forecast payload: %v", weather.ErrUpstream, err)
	}

	samples := make([]weather.RawSample, 0, len(payload.List))
	for _, entry := range payload.List {
		s := weather.RawSample{
			Timestamp: entry.Dt,
			Temp:      entry.Main.Temp,
			FeelsLike: entry.Main.FeelsLike,
			Humidity:  entry.Main.Humidity,
			WindSpeed: entry.Wind.Speed,
			Pop:       entry.Pop,
			LocalText: entry.DtTxt,
		}
		if len(entry.Weather) > 0 {
			s.Condition = entry.Weather[0].Main
			s.Description = entry.Weather[0].Description
			s.Icon = entry.Weather[0].Icon
		}
		samples = append(samples, s)
	}

	location := payload.City.Name
	if location != "" && payload.City.Country != "" {
		location = fmt.Sprintf("%s, %s", payload.City.Name, payload.City.Country)
	}

	return weather.ForecastResponse{
		Location: location,
		Samples:  samples,
	}, nil
}
