package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

type AirlineStatistics struct {
	TotalFlights   float64 `json:"totalFlights"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AvgRating      float64 `json:"avgRating"`
	PendingCount   int64   `json:"pendingCount"`
	OnTimeCount    int64   `json:"onTimeCount"`
	CancelledCount int64   `json:"cancelledCount"`
}

// StatusCounts is the flight status distribution keyed like the API's
// status enum.
func (s AirlineStatistics) StatusCounts() map[string]int {
	return map[string]int{
		"PENDING":   int(s.PendingCount),
		"ON_TIME":   int(s.OnTimeCount),
		"CANCELLED": int(s.CancelledCount),
	}
}

type AirlineStats struct {
	AirlineName  string  `json:"airlineName"`
	TotalFlights float64 `json:"totalFlights"`
	TotalRevenue float64 `json:"totalRevenue"`
	AvgRating    float64 `json:"avgRating"`
}

type TripTypeStats struct {
	AirlineName           string             `json:"airlineName"`
	AverageTicketsPerType map[string]float64 `json:"averageTicketsPerType"`
}

// AirlineStatistics never fails: errors yield empty statistics.
func (c *Client) AirlineStatistics(ctx context.Context) AirlineStatistics {
	stats, err := fetch[AirlineStatistics](ctx, c, http.MethodGet, "/api/airline/statistics", nil, nil)
	if err != nil {
		c.logger.Warn("error fetching airline statistics", "error", err)
		return AirlineStatistics{}
	}
	return stats
}

func (c *Client) AirlineStats(ctx context.Context, airlineName string) (AirlineStats, error) {
	return fetch[AirlineStats](ctx, c, http.MethodGet, "/api/airline/"+url.PathEscape(airlineName), nil, nil)
}

// FlightStatusStats covers every airline when airlineName is empty.
func (c *Client) FlightStatusStats(ctx context.Context, airlineName string) (map[string]int, error) {
	return fetch[map[string]int](ctx, c, http.MethodGet, optionalName("/api/airline/flight-status", airlineName), nil, nil)
}

// TripTypeStats covers every airline when airlineName is empty.
func (c *Client) TripTypeStats(ctx context.Context, airlineName string) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, optionalName("/api/airline/trip-type", airlineName), nil, nil)
}

func optionalName(path, name string) string {
	if name == "" {
		return path
	}
	return path + "/" + url.PathEscape(name)
}

// ─── Profile ──────────────────────────────────────────────────────────────────

func (c *Client) AirlineProfile(ctx context.Context) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, "/api/airline/profile", nil, nil)
}

func (c *Client) UpdateAirlineInfo(ctx context.Context, info any) (*Envelope, error) {
	return send(ctx, c, http.MethodPut, "/api/airline/info", nil, info)
}

func (c *Client) UpdateAirlineAdmin(ctx context.Context, admin any) (*Envelope, error) {
	return send(ctx, c, http.MethodPut, "/api/airline/admin", nil, admin)
}
