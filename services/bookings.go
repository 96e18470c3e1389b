package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxTickets is the most tickets one booking may hold.
const MaxTickets = 10

// Booking kinds.
const (
	HotelBooking  = "HOTEL"
	FlightBooking = "FLIGHT"
)

type TicketBookingRequest struct {
	AirlineID  int `json:"airlineId"`
	FlightID   int `json:"flightId"`
	TripTypeID int `json:"tripTypeId"`
	Quantity   int `json:"quantity"`
}

func (r TicketBookingRequest) Validate() error {
	if r.AirlineID == 0 || r.FlightID == 0 || r.TripTypeID == 0 {
		return ErrMissingBookingFields
	}
	if r.Quantity < 1 || r.Quantity > MaxTickets {
		return ErrQuantity
	}
	return nil
}

// BookTickets reserves r.Quantity tickets and returns their ids.
func (c *Client) BookTickets(ctx context.Context, r TicketBookingRequest) ([]int, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	ids, err := fetch[[]int](ctx, c, http.MethodPost, "/book-ticket", nil, r)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// ─── Booking records ──────────────────────────────────────────────────────────

// BookingRecord is a booking as the API returns it: a type tag plus either a
// hotel or a flight payload.
type BookingRecord struct {
	Type          string              `json:"type"`
	HotelBooking  *HotelBookingRecord `json:"hotelBooking,omitempty"`
	FlightBooking *FlightTicketRecord `json:"flightBooking,omitempty"`
}

type HotelBookingRecord struct {
	BookingID      int     `json:"bookingId"`
	Status         string  `json:"status"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	TotalPrice     float64 `json:"totalPrice"`
	CreatedAt      string  `json:"createdAt"`
	NumberOfGuests int     `json:"numberOfGuests"`
	Room           struct {
		Type     string  `json:"type"`
		Capacity int     `json:"capacity"`
		Price    float64 `json:"price"`
	} `json:"room"`
	Hotel struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"hotel"`
}

type FlightTicketRecord struct {
	TicketID   int     `json:"ticketId"`
	IsPaid     bool    `json:"isPaid"`
	FlightDate string  `json:"flightDate"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt"`
	Trip       struct {
		Type  string  `json:"type"`
		Price float64 `json:"price"`
	} `json:"trip"`
	Airline BookedAirline `json:"airline"`
	Flight  struct {
		DepartureCity    string `json:"departureCity"`
		ArrivalCity      string `json:"arrivalCity"`
		DepartureDate    string `json:"departureDate"`
		ArrivalDate      string `json:"arrivalDate"`
		DepartureAirport string `json:"departureAirport"`
		ArrivalAirport   string `json:"arrivalAirport"`
	} `json:"flight"`
}

type BookedAirline struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality,omitempty"`
}

// Booking is the flattened shape shared by hotel and flight bookings.
type Booking struct {
	ID             int           `json:"id"`
	Type           string        `json:"type"`
	Status         string        `json:"status"`
	CheckInDate    string        `json:"checkInDate"`
	CheckOutDate   string        `json:"checkOutDate"`
	TotalPrice     float64       `json:"totalPrice"`
	CreatedAt      string        `json:"createdAt"`
	NumberOfGuests int           `json:"numberOfGuests,omitempty"`
	Room           *BookedRoom   `json:"room,omitempty"`
	Ticket         *BookedTicket `json:"ticket,omitempty"`
}

type BookedRoom struct {
	Type     string      `json:"type"`
	Capacity int         `json:"capacity"`
	Price    float64     `json:"price"`
	Hotel    BookedHotel `json:"hotel"`
}

type BookedHotel struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Location string `json:"location"`
}

type BookedTicket struct {
	Class  string       `json:"class"`
	Price  float64      `json:"price"`
	Flight BookedFlight `json:"flight"`
}

type BookedFlight struct {
	Airline          BookedAirline `json:"airline"`
	From             string        `json:"from"`
	To               string        `json:"to"`
	DepartureDate    string        `json:"departureDate"`
	ArrivalDate      string        `json:"arrivalDate"`
	DepartureAirport string        `json:"departureAirport,omitempty"`
	ArrivalAirport   string        `json:"arrivalAirport,omitempty"`
}

// Normalize flattens a record. Records without a hotel payload are treated
// as flight tickets.
func (r BookingRecord) Normalize() (Booking, error) {
	if r.Type == HotelBooking {
		h := r.HotelBooking
		if h == nil {
			return Booking{}, fmt.Errorf("hotel booking record without hotelBooking")
		}
		return Booking{
			ID:             h.BookingID,
			Type:           HotelBooking,
			Status:         h.Status,
			CheckInDate:    h.CheckInDate,
			CheckOutDate:   h.CheckOutDate,
			TotalPrice:     h.TotalPrice,
			CreatedAt:      h.CreatedAt,
			NumberOfGuests: h.NumberOfGuests,
			Room: &BookedRoom{
				Type:     h.Room.Type,
				Capacity: h.Room.Capacity,
				Price:    h.Room.Price,
				Hotel: BookedHotel{
					ID:       h.Hotel.ID,
					Name:     h.Hotel.Name,
					City:     h.Hotel.City,
					Country:  h.Hotel.Country,
					Location: h.Hotel.City + ", " + h.Hotel.Country,
				},
			},
		}, nil
	}

	f := r.FlightBooking
	if f == nil {
		return Booking{}, fmt.Errorf("flight booking record without flightBooking")
	}
	status := "PENDING"
	if f.IsPaid {
		status = "CONFIRMED"
	}
	return Booking{
		ID:           f.TicketID,
		Type:         FlightBooking,
		Status:       status,
		CheckInDate:  f.FlightDate,
		CheckOutDate: f.FlightDate,
		TotalPrice:   f.TotalPrice,
		CreatedAt:    f.CreatedAt,
		Ticket: &BookedTicket{
			Class: f.Trip.Type,
			Price: f.Trip.Price,
			Flight: BookedFlight{
				Airline:          f.Airline,
				From:             f.Flight.DepartureCity,
				To:               f.Flight.ArrivalCity,
				DepartureDate:    f.Flight.DepartureDate,
				ArrivalDate:      f.Flight.ArrivalDate,
				DepartureAirport: f.Flight.DepartureAirport,
				ArrivalAirport:   f.Flight.ArrivalAirport,
			},
		},
	}, nil
}

func (c *Client) BookingHistory(ctx context.Context) ([]Booking, error) {
	return c.bookings(ctx, "/api/bookings/history")
}

func (c *Client) UpcomingBookings(ctx context.Context) ([]Booking, error) {
	return c.bookings(ctx, "/api/bookings/upcoming")
}

func (c *Client) bookings(ctx context.Context, path string) ([]Booking, error) {
	records, err := fetch[[]BookingRecord](ctx, c, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Booking, 0, len(records))
	for _, rec := range records {
		b, err := rec.Normalize()
		if err != nil {
			c.logger.Warn("skipping malformed booking", "path", path, "error", err)
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *Client) BookingDetails(ctx context.Context, id int) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, fmt.Sprintf("/api/bookings/%d", id), nil, nil)
}

func (c *Client) CancelBooking(ctx context.Context, id int) (*Envelope, error) {
	return send(ctx, c, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", id), nil, nil)
}
