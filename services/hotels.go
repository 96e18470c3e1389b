package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/omarzydan610/JetStay-sub001/search"
)

type RoomTypeRequest struct {
	RoomTypeName   string  `json:"roomTypeName"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	NumberOfGuests int     `json:"numberOfGuests"`
	Description    string  `json:"description,omitempty"`
}

type RoomTypeStats struct {
	RoomTypeName  string `json:"roomTypeName"`
	TotalRooms    int    `json:"totalRooms"`
	OccupiedRooms int    `json:"occupiedRooms"`
}

type HotelStatistics struct {
	TotalRooms    int             `json:"totalRooms"`
	OccupiedRooms int             `json:"occupiedRooms"`
	RoomTypes     []RoomTypeStats `json:"roomTypes"`
}

func (s HotelStatistics) AvailableRooms() int { return s.TotalRooms - s.OccupiedRooms }

// Occupancy is the share of occupied rooms as a percentage.
func (s HotelStatistics) Occupancy() float64 {
	if s.TotalRooms == 0 {
		return 0
	}
	return float64(s.OccupiedRooms) / float64(s.TotalRooms) * 100
}

func emptyHotelStatistics() HotelStatistics {
	return HotelStatistics{RoomTypes: []RoomTypeStats{}}
}

// HotelStatistics never fails: errors and empty answers yield zeroed
// statistics so the dashboard still renders.
func (c *Client) HotelStatistics(ctx context.Context) HotelStatistics {
	var stats *HotelStatistics
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/hotel/statistics"}, &stats)
	if err != nil {
		c.logger.Warn("error fetching hotel statistics", "error", err)
		return emptyHotelStatistics()
	}
	if stats == nil {
		return emptyHotelStatistics()
	}
	if stats.RoomTypes == nil {
		stats.RoomTypes = []RoomTypeStats{}
	}
	return *stats
}

// Rooms lists the signed in hotel's room types.
func (c *Client) Rooms(ctx context.Context) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, "/api/room/", nil, nil)
}

func (c *Client) AddRoom(ctx context.Context, r RoomTypeRequest) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodPost, "/api/room/add", nil, r)
}

func (c *Client) UpdateRoom(ctx context.Context, id int, r RoomTypeRequest) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodPatch, fmt.Sprintf("/api/room/update/%d", id), nil, r)
}

func (c *Client) DeleteRoom(ctx context.Context, id int) (*Envelope, error) {
	return send(ctx, c, http.MethodDelete, fmt.Sprintf("/api/room/delete/%d", id), nil, nil)
}

// ─── Room images ──────────────────────────────────────────────────────────────

// UploadRoomImage attaches an image to a room type. The same type and size
// limits as partnership logos apply.
func (c *Client) UploadRoomImage(ctx context.Context, roomTypeID int, img Logo) (*Envelope, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return c.submitMultipart(ctx, fmt.Sprintf("/api/room-types/%d/images", roomTypeID), nil, "file", &img)
}

func (c *Client) RoomImages(ctx context.Context, roomTypeID int) ([]search.RoomImage, error) {
	return fetch[[]search.RoomImage](ctx, c, http.MethodGet, fmt.Sprintf("/api/room-types/%d/images", roomTypeID), nil, nil)
}

func (c *Client) DeleteRoomImage(ctx context.Context, imageID int) (*Envelope, error) {
	return send(ctx, c, http.MethodDelete, fmt.Sprintf("/api/room-types/images/%d", imageID), nil, nil)
}

// ─── Profile ──────────────────────────────────────────────────────────────────

func (c *Client) HotelProfile(ctx context.Context) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, "/api/hotel/profile", nil, nil)
}

func (c *Client) UpdateHotelInfo(ctx context.Context, info any) (*Envelope, error) {
	return send(ctx, c, http.MethodPut, "/api/hotel/info", nil, info)
}

func (c *Client) UpdateHotelAdmin(ctx context.Context, admin any) (*Envelope, error) {
	return send(ctx, c, http.MethodPut, "/api/hotel/admin", nil, admin)
}
