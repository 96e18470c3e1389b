package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/omarzydan610/JetStay-sub001/monitoring"
	"github.com/omarzydan610/JetStay-sub001/search"
)

// AccountKind selects whose status an admin changes.
type AccountKind string

const (
	UserAccount    AccountKind = "user"
	AirlineAccount AccountKind = "airline"
	HotelAccount   AccountKind = "hotel"
)

// Partner is an id/name pair from the admin hotel and airline lists.
type Partner struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DashboardFilter is the body of the admin dashboard list endpoints. Empty
// strings are sent as absent.
type DashboardFilter struct {
	Search  string `json:"search,omitempty"`
	Role    string `json:"role,omitempty"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Status  string `json:"status,omitempty"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
}

// Page is a server-side page of results.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

// ─── Monitoring ───────────────────────────────────────────────────────────────

// MonitorBookings loads hotel booking figures for r. hotelID 0 covers every
// hotel.
func (c *Client) MonitorBookings(ctx context.Context, r search.DateRange, hotelID int) (monitoring.BookingMonitoring, error) {
	if err := r.Validate(); err != nil {
		return monitoring.BookingMonitoring{}, err
	}
	q := r.Query()
	q.Set("hotelId", strconv.Itoa(hotelID))
	return fetch[monitoring.BookingMonitoring](ctx, c, http.MethodGet, "/api/admin/monitor-bookings", q, nil)
}

// MonitorFlights loads ticket sales for r. airlineID 0 covers every airline.
func (c *Client) MonitorFlights(ctx context.Context, r search.DateRange, airlineID int) (monitoring.FlightMonitoring, error) {
	if err := r.Validate(); err != nil {
		return monitoring.FlightMonitoring{}, err
	}
	q := r.Query()
	q.Set("airlineId", strconv.Itoa(airlineID))
	return fetch[monitoring.FlightMonitoring](ctx, c, http.MethodGet, "/api/admin/monitor-flights", q, nil)
}

// AdminHotels lists every hotel for the monitoring filter. The list is cached
// per token so one admin's answer is never served to another caller.
func (c *Client) AdminHotels(ctx context.Context) ([]Partner, error) {
	return cached(ctx, c, "admin:hotels:"+c.tokenScope(), func(ctx context.Context) ([]Partner, error) {
		return fetch[[]Partner](ctx, c, http.MethodGet, "/api/admin/hotels", nil, nil)
	})
}

func (c *Client) AdminAirlines(ctx context.Context) ([]Partner, error) {
	return cached(ctx, c, "admin:airlines:"+c.tokenScope(), func(ctx context.Context) ([]Partner, error) {
		return fetch[[]Partner](ctx, c, http.MethodGet, "/api/admin/airlines", nil, nil)
	})
}

// ─── Accounts ─────────────────────────────────────────────────────────────────

// SetAccountStatus activates or deactivates a user (id is the email), an
// airline or a hotel. reason is only sent on deactivation.
func (c *Client) SetAccountStatus(ctx context.Context, kind AccountKind, id string, active bool, reason string) (*Envelope, error) {
	var param string
	switch kind {
	case UserAccount:
		param = "email"
	case AirlineAccount:
		param = "airlineID"
	case HotelAccount:
		param = "hotelID"
	default:
		return nil, &APIError{Code: CodeUnknown, Message: fmt.Sprintf("unknown account kind %q", kind)}
	}

	action := "deactivate"
	q := url.Values{param: {id}}
	if active {
		action = "activate"
	} else {
		q.Set("reason", reason)
	}
	path := fmt.Sprintf("/api/admin/status/%s/%s", kind, action)
	return send(ctx, c, http.MethodPut, path, q, nil)
}

func (c *Client) DashboardUsers(ctx context.Context, f DashboardFilter) (Page[json.RawMessage], error) {
	return fetch[Page[json.RawMessage]](ctx, c, http.MethodPost, "/api/admin/dashboard/users", nil, f)
}

func (c *Client) DashboardAirlines(ctx context.Context, f DashboardFilter) (Page[json.RawMessage], error) {
	return fetch[Page[json.RawMessage]](ctx, c, http.MethodPost, "/api/admin/dashboard/airlines", nil, f)
}

func (c *Client) DashboardHotels(ctx context.Context, f DashboardFilter) (Page[json.RawMessage], error) {
	return fetch[Page[json.RawMessage]](ctx, c, http.MethodPost, "/api/admin/dashboard/hotels", nil, f)
}

func (c *Client) AirlineAdmin(ctx context.Context, id int) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, fmt.Sprintf("/api/admin/dashboard/airline-admin/%d", id), nil, nil)
}

func (c *Client) HotelAdmin(ctx context.Context, id int) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, fmt.Sprintf("/api/admin/dashboard/hotel-admin/%d", id), nil, nil)
}

// ─── Flagged reviews ──────────────────────────────────────────────────────────

func (c *Client) FlaggedReviews(ctx context.Context, kind ReviewKind, page, size int) (Page[json.RawMessage], error) {
	path := fmt.Sprintf("/api/admin/dashboard/%s/flagged-reviews", kind)
	return fetch[Page[json.RawMessage]](ctx, c, http.MethodGet, path, pageQuery(page, size), nil)
}

func (c *Client) DeleteFlaggedReview(ctx context.Context, kind ReviewKind, id int) (*Envelope, error) {
	path := fmt.Sprintf("/api/admin/dashboard/%s/flagged-review/%d", kind, id)
	return send(ctx, c, http.MethodDelete, path, nil, nil)
}

// ApproveFlaggedReview clears the flag and keeps the review.
func (c *Client) ApproveFlaggedReview(ctx context.Context, kind ReviewKind, id int) (*Envelope, error) {
	path := fmt.Sprintf("/api/admin/dashboard/%s/flagged-review/%d", kind, id)
	return send(ctx, c, http.MethodPut, path, nil, struct{}{})
}
