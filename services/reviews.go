package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ReviewKind selects the airline or hotel review endpoints.
type ReviewKind string

const (
	AirlineReviews ReviewKind = "airline"
	HotelReviews   ReviewKind = "hotel"
)

var ErrUnrated = errors.New("please rate all categories")

// AirlineReview rates a flown ticket. Every rate is 1 to 5.
type AirlineReview struct {
	TicketID      int    `json:"ticketId"`
	OnTimeRate    int    `json:"onTimeRate"`
	ComfortRate   int    `json:"comfortRate"`
	StaffRate     int    `json:"staffRate"`
	AmenitiesRate int    `json:"amenitiesRate"`
	Comment       string `json:"comment"`
}

func (r AirlineReview) Validate() error {
	if r.TicketID == 0 {
		return errors.New("ticket ID is required")
	}
	return checkRates(r.OnTimeRate, r.ComfortRate, r.StaffRate, r.AmenitiesRate)
}

// HotelReview rates a stay.
type HotelReview struct {
	BookingTransactionID int    `json:"bookingTransactionId"`
	StaffRate            int    `json:"staffRate"`
	ComfortRate          int    `json:"comfortRate"`
	FacilitiesRate       int    `json:"facilitiesRate"`
	CleanlinessRate      int    `json:"cleanlinessRate"`
	ValueForMoneyRate    int    `json:"valueForMoneyRate"`
	LocationRate         int    `json:"locationRate"`
	Comment              string `json:"comment"`
}

func (r HotelReview) Validate() error {
	if r.BookingTransactionID == 0 {
		return errors.New("booking ID is required")
	}
	return checkRates(r.StaffRate, r.ComfortRate, r.FacilitiesRate, r.CleanlinessRate, r.ValueForMoneyRate, r.LocationRate)
}

func checkRates(rates ...int) error {
	for _, r := range rates {
		if r < 1 || r > 5 {
			return ErrUnrated
		}
	}
	return nil
}

func reviewPath(kind ReviewKind, suffix string) string {
	return fmt.Sprintf("/api/%s/reviews/%s", kind, suffix)
}

type validator interface{ Validate() error }

// AddReview posts an AirlineReview or HotelReview after checking it.
func (c *Client) AddReview(ctx context.Context, kind ReviewKind, review any) (*Envelope, error) {
	if v, ok := review.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return send(ctx, c, http.MethodPost, reviewPath(kind, "add"), nil, review)
}

func (c *Client) EditReview(ctx context.Context, kind ReviewKind, review any) (*Envelope, error) {
	if v, ok := review.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return send(ctx, c, http.MethodPut, reviewPath(kind, "edit"), nil, review)
}

// DeleteReview takes the ticket id for airline reviews and the booking
// transaction id for hotel reviews.
func (c *Client) DeleteReview(ctx context.Context, kind ReviewKind, id int) (*Envelope, error) {
	return send(ctx, c, http.MethodDelete, reviewPath(kind, fmt.Sprintf("delete/%d", id)), nil, nil)
}

func (c *Client) Reviews(ctx context.Context, kind ReviewKind, targetID, page, size int) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, reviewPath(kind, fmt.Sprint(targetID)), pageQuery(page, size), nil)
}

func (c *Client) ReviewSummary(ctx context.Context, kind ReviewKind, targetID int) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, reviewPath(kind, fmt.Sprintf("%d/summary", targetID)), nil, nil)
}
