package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/omarzydan610/JetStay-sub001/offers"
)

// FlightRequest creates or updates a flight. Airports are referenced by id.
type FlightRequest struct {
	DepartureAirportInt int    `json:"departureAirportInt"`
	ArrivalAirportInt   int    `json:"arrivalAirportInt"`
	DepartureDate       string `json:"departureDate"`
	ArrivalDate         string `json:"arrivalDate"`
	Status              string `json:"status"`
	PlaneType           string `json:"planeType"`
	Description         string `json:"description,omitempty"`
}

type Country struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

type City struct {
	Name string `json:"name"`
}

type AirportRef struct {
	AirportID   int    `json:"airportID"`
	AirportName string `json:"airportName"`
	AirportCode string `json:"airportCode,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// FlightDetail is one trip type row of a flight's details.
type FlightDetail struct {
	DepartureDate        string  `json:"departureDate"`
	ArrivalDate          string  `json:"arrivalDate"`
	Status               string  `json:"status"`
	DepartureAirportName string  `json:"departureAirportName"`
	DepartureAirportCity string  `json:"departureAirportCity"`
	ArrivalAirportName   string  `json:"arrivalAirportName"`
	ArrivalAirportCity   string  `json:"arrivalAirportCity"`
	PlaneType            string  `json:"planeType"`
	TripType             string  `json:"tripType"`
	Price                float64 `json:"price"`
	AirlineLogoURL       string  `json:"airlineLogoURL,omitempty"`
	AirlineName          string  `json:"airlineName"`
}

// OfferRequest adds a discount offer to a flight or room type.
type OfferRequest struct {
	OfferName     string  `json:"offerName"`
	DiscountValue float64 `json:"discountValue"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	MaxUsage      *int    `json:"maxUsage"`
	Description   *string `json:"description"`
}

// ─── Airline staff ────────────────────────────────────────────────────────────

// ListFlights pages through the signed in airline's flights.
func (c *Client) ListFlights(ctx context.Context, page, size int) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, "/api/flight/", pageQuery(page, size), nil)
}

func (c *Client) Flight(ctx context.Context, id int) (json.RawMessage, error) {
	return fetch[json.RawMessage](ctx, c, http.MethodGet, fmt.Sprintf("/api/flight/%d", id), nil, nil)
}

func (c *Client) AddFlight(ctx context.Context, f FlightRequest) (*Envelope, error) {
	return send(ctx, c, http.MethodPost, "/api/flight/add", nil, f)
}

func (c *Client) UpdateFlight(ctx context.Context, id int, f FlightRequest) (*Envelope, error) {
	return send(ctx, c, http.MethodPatch, fmt.Sprintf("/api/flight/update/%d", id), nil, f)
}

func (c *Client) DeleteFlight(ctx context.Context, id int) (*Envelope, error) {
	return send(ctx, c, http.MethodDelete, fmt.Sprintf("/api/flight/delete/%d", id), nil, nil)
}

func (c *Client) FlightDetails(ctx context.Context, id int) ([]FlightDetail, error) {
	return fetch[[]FlightDetail](ctx, c, http.MethodGet, fmt.Sprintf("/api/flight/details/%d", id), nil, nil)
}

// ─── Reference data ───────────────────────────────────────────────────────────

func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	return cached(ctx, c, "countries", func(ctx context.Context) ([]Country, error) {
		return fetch[[]Country](ctx, c, http.MethodGet, "/api/flight/countries", nil, nil)
	})
}

func (c *Client) Cities(ctx context.Context, country string) ([]City, error) {
	return cached(ctx, c, "cities:"+country, func(ctx context.Context) ([]City, error) {
		return fetch[[]City](ctx, c, http.MethodGet, "/api/flight/cities", url.Values{"country": {country}}, nil)
	})
}

func (c *Client) Airports(ctx context.Context, country, city string) ([]AirportRef, error) {
	return cached(ctx, c, "airports:"+country+":"+city, func(ctx context.Context) ([]AirportRef, error) {
		q := url.Values{"country": {country}, "city": {city}}
		return fetch[[]AirportRef](ctx, c, http.MethodGet, "/api/flight/airPorts", q, nil)
	})
}

func (c *Client) TicketTypes(ctx context.Context) ([]string, error) {
	return cached(ctx, c, "ticket-types", func(ctx context.Context) ([]string, error) {
		return fetch[[]string](ctx, c, http.MethodGet, "/api/flight/ticket-types", nil, nil)
	})
}

// ─── Offers ───────────────────────────────────────────────────────────────────

func (c *Client) AddFlightOffer(ctx context.Context, flightID int, o OfferRequest) (offers.Offer, error) {
	return fetch[offers.Offer](ctx, c, http.MethodPost, fmt.Sprintf("/api/flight/%d/offers/add", flightID), nil, o)
}

// FlightOffers lists every offer on one of the airline's flights.
func (c *Client) FlightOffers(ctx context.Context, flightID int) ([]offers.Offer, error) {
	return fetch[[]offers.Offer](ctx, c, http.MethodGet, fmt.Sprintf("/api/flight/%d/offers", flightID), nil, nil)
}

// PublicFlightOffers lists the offers a traveller can apply. Failures yield
// no offers so booking can go ahead at full price.
func (c *Client) PublicFlightOffers(ctx context.Context, flightID int) []offers.Offer {
	list, err := fetch[[]offers.Offer](ctx, c, http.MethodGet, fmt.Sprintf("/api/flight/%d/offers/public", flightID), nil, nil)
	if err != nil {
		c.logger.Warn("failed to fetch flight offers", "flightId", flightID, "error", err)
		return []offers.Offer{}
	}
	if list == nil {
		list = []offers.Offer{}
	}
	return list
}

func (c *Client) DeleteFlightOffer(ctx context.Context, offerID int) (*Envelope, error) {
	return send(ctx, c, http.MethodDelete, fmt.Sprintf("/api/flight/offers/delete/%d", offerID), nil, nil)
}
