// Package weather fetches current conditions from the open-meteo API for
// the morning briefing.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.open-meteo.com"

// Current is the briefing's view of the weather: a rounded temperature
// and a WMO weather code with its display label.
type Current struct {
	TemperatureC int
	Code         int
	Description  string
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a fake server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Fetch returns the current conditions at the given coordinates.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64, timezone string) (*Current, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", longitude))
	q.Set("current", "temperature_2m,weather_code")
	q.Set("timezone", timezone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api status %d", resp.StatusCode)
	}

	var fr forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	return &Current{
		TemperatureC: int(math.Round(fr.Current.Temperature)),
		Code:         fr.Current.WeatherCode,
		Description:  Describe(fr.Current.WeatherCode),
	}, nil
}

// Describe maps a WMO weather code to the briefing label.
func Describe(code int) string {
	switch {
	case code == 0:
		return "Açık"
	case code <= 3:
		return "Parçalı Bulutlu"
	case code <= 48:
		return "Sisli"
	case code <= 67:
		return "Yağmurlu"
	case code <= 77:
		return "Karlı"
	case code <= 82:
		return "Sağanak Yağışlı"
	}
	return "Fırtınalı"
}
