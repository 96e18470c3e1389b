package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/omarzydan610/JetStay-sub001/search"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// graphQL runs query and returns the raw payload under field, nil when the
// server sent none.
func (c *Client) graphQL(ctx context.Context, query string, vars map[string]any, field string) (json.RawMessage, error) {
	var resp graphQLResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/graphql",
		body:   graphQLRequest{Query: query, Variables: vars},
		whole:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range resp.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return nil, gqlErr
	}
	payload := resp.Data[field]
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, nil
	}
	return payload, nil
}

// unexpectedPayload reports a field that is neither the list nor the page
// shape the search views understand.
func unexpectedPayload(field string, payload json.RawMessage) *APIError {
	return &APIError{Code: CodeServer, Message: fmt.Sprintf("unexpected %s payload: %.40s", field, payload)}
}

// ─── Flights ──────────────────────────────────────────────────────────────────

const flightsQuery = `
query Flights($filter: FlightFilterDTO, $page: Int, $size: Int) {
  flights(filter: $filter, page: $page, size: $size) {
    flightID
    status
    planeType
    departureDate
    arrivalDate
    departureAirport { airportName city country }
    arrivalAirport { airportName city country }
    airline { airlineID airlineName airlineRate airlineNationality }
    tripsTypes { typeID typeName price }
  }
}`

type Flight struct {
	FlightID         int           `json:"flightID"`
	Status           string        `json:"status"`
	PlaneType        string        `json:"planeType"`
	DepartureDate    string        `json:"departureDate"`
	ArrivalDate      string        `json:"arrivalDate"`
	DepartureAirport Airport       `json:"departureAirport"`
	ArrivalAirport   Airport       `json:"arrivalAirport"`
	Airline          FlightCarrier `json:"airline"`
	TripsTypes       []TripPrice   `json:"tripsTypes"`
}

type Airport struct {
	AirportName string `json:"airportName"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type FlightCarrier struct {
	AirlineID          int     `json:"airlineID"`
	AirlineName        string  `json:"airlineName"`
	AirlineRate        float64 `json:"airlineRate"`
	AirlineNationality string  `json:"airlineNationality"`
}

type TripPrice struct {
	TypeID   int     `json:"typeID"`
	TypeName string  `json:"typeName"`
	Price    float64 `json:"price"`
}

// LowestPrice is the cheapest trip type, 0 when none are listed.
func (f Flight) LowestPrice() float64 {
	var low float64
	for i, t := range f.TripsTypes {
		if i == 0 || t.Price < low {
			low = t.Price
		}
	}
	return low
}

// FlightPage is one page of flight search results. TotalPages is 0 when the
// server returned a bare list.
type FlightPage struct {
	Flights    []Flight `json:"flights"`
	TotalPages int      `json:"totalPages,omitempty"`
}

// SearchFlights runs the flights GraphQL query. The server may answer with
// a list or with a {content, totalPages} page.
func (c *Client) SearchFlights(ctx context.Context, filter search.FlightFilter, page, size int) (FlightPage, error) {
	payload, err := c.graphQL(ctx, flightsQuery, map[string]any{"filter": filter, "page": page, "size": size}, "flights")
	if err != nil {
		return FlightPage{}, err
	}
	out := FlightPage{Flights: []Flight{}}
	if payload == nil {
		return out, nil
	}

	switch bytes.TrimSpace(payload)[0] {
	case '[':
		if err := json.Unmarshal(payload, &out.Flights); err != nil {
			return FlightPage{}, &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
		}
	case '{':
		var paged struct {
			Content    []Flight `json:"content"`
			TotalPages int      `json:"totalPages"`
		}
		if err := json.Unmarshal(payload, &paged); err != nil {
			return FlightPage{}, &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
		}
		if paged.Content != nil {
			out.Flights = paged.Content
			out.TotalPages = paged.TotalPages
		}
	default:
		return FlightPage{}, unexpectedPayload("flights", payload)
	}
	return out, nil
}

// ─── Rooms ────────────────────────────────────────────────────────────────────

const roomsQuery = `
query Rooms($filter: RoomFilterDTO, $page: Int, $size: Int) {
  rooms(filter: $filter, page: $page, size: $size) {
    roomTypeID
    roomTypeName
    price
    quantity
    numberOfGuests
    description
    images { imageID imageUrl }
    hotel { hotelID hotelName logoUrl city country hotelRate numberOfRates }
  }
}`

// SearchRooms runs the rooms GraphQL query. Group the result with
// search.MergeRooms.
func (c *Client) SearchRooms(ctx context.Context, filter search.RoomFilter, page, size int) ([]search.Room, error) {
	payload, err := c.graphQL(ctx, roomsQuery, map[string]any{"filter": filter, "page": page, "size": size}, "rooms")
	if err != nil {
		return nil, err
	}
	rooms := []search.Room{}
	if payload == nil {
		return rooms, nil
	}
	if bytes.TrimSpace(payload)[0] != '[' {
		return nil, unexpectedPayload("rooms", payload)
	}
	if err := json.Unmarshal(payload, &rooms); err != nil {
		return nil, &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
	}
	return rooms, nil
}
