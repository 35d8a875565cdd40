// Package weather wraps the OpenWeatherMap 5-day forecast the app shows
// for the travel destination.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org"

// RequestTimeout bounds every forecast call; the mobile client raced its
// fetch against a ten second timer.
const RequestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: RequestTimeout},
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type Entry struct {
	Timestamp int64   `json:"dt"`
	TimeText  string  `json:"dt_txt"`
	Main      struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

type Forecast struct {
	City string  `json:"city"`
	Days []Entry `json:"days"`
}

type forecastResponse struct {
	Cod     json.Number `json:"cod"`
	Message any         `json:"message"`
	City    struct {
		Name string `json:"name"`
	} `json:"city"`
	List []Entry `json:"list"`
}

// Forecast fetches the 5-day forecast for city and keeps one entry per day
// (the 03:00 slot, matching what the app displayed).
func (c *Client) Forecast(ctx context.Context, city string) (*Forecast, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/data/2.5/forecast?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding weather response: %w", err)
	}
	if payload.Cod.String() != "200" {
		return nil, fmt.Errorf("weather api returned cod %s: %v", payload.Cod, payload.Message)
	}

	days := make([]Entry, 0, 5)
	for _, e := range payload.List {
		if strings.HasSuffix(e.TimeText, "03:00:00") {
			days = append(days, e)
		}
	}

	return &Forecast{City: payload.City.Name, Days: days}, nil
}
