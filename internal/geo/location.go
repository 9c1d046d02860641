package geo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Location is the locale data derived from a caller's IP address.
type Location struct {
	Country  string
	City     string
	Currency string
}

// unknownLocation keeps downstream required-field checks satisfied when no
// lookup result is available.
var unknownLocation = Location{Country: "Unknown", City: "Unknown", Currency: "Unknown"}

type geolocationResponse struct {
	CountryName string `json:"country_name"`
	City        string `json:"city"`
	Currency    struct {
		Code string `json:"code"`
	} `json:"currency"`
}

// Client resolves an IP address to its locale using the ipgeolocation.io
// API.
type Client struct {
	http   *resty.Client
	apiKey string
	logger *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &Client{
		http:   httpClient,
		apiKey: apiKey,
		logger: logger,
	}
}

// Locate returns the locale for the given IP. Lookup failures degrade to the
// unknown locale rather than failing the caller's request.
func (c *Client) Locate(ctx context.Context, ip string) (Location, error) {
	if ip == "" {
		return unknownLocation, nil
	}

	var result geolocationResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey": c.apiKey,
			"ip":     ip,
		}).
		SetResult(&result).
		Get("/ipgeo")
	if err != nil {
		c.logger.Warn("geolocation lookup failed", slog.Any("error", err))
		return unknownLocation, nil
	}

	if resp.IsError() {
		c.logger.Warn("geolocation lookup rejected",
			slog.Int("status", resp.StatusCode()))
		return unknownLocation, fmt.Errorf("geolocation request returned status %d", resp.StatusCode())
	}

	location := Location{
		Country:  result.CountryName,
		City:     result.City,
		Currency: result.Currency.Code,
	}
	if location.Country == "" {
		location.Country = unknownLocation.Country
	}
	if location.City == "" {
		location.City = unknownLocation.City
	}
	if location.Currency == "" {
		location.Currency = unknownLocation.Currency
	}

	return location, nil
}

// NoopLocator is used when no geolocation API key is configured.
type NoopLocator struct{}

func (NoopLocator) Locate(ctx context.Context, ip string) (Location, error) {
	return unknownLocation, nil
}
