// Package search turns the flight and hotel search forms into API filters and
// keeps the paging, date range and result grouping state around them.
package search

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/omarzydan610/JetStay-sub001/validate"
)

// ErrFilterErrors is returned when a form with outstanding field errors is applied.
var ErrFilterErrors = errors.New("please fix filter errors before applying")

const (
	// DefaultPrice is the preselected price on both search forms.
	DefaultPrice = "50"
	// FlightPriceDelta is the half width of the ticket price window.
	FlightPriceDelta = 200.0
)

// FlightFilter mirrors the API's FlightFilterDTO. Empty fields are omitted.
type FlightFilter struct {
	FlightID                     *int     `json:"flightId,omitempty"`
	AirlineNameContains          string   `json:"airlineNameContains,omitempty"`
	AirlineRatingGte             *float64 `json:"airlineRatingGte,omitempty"`
	AirlineRatingLte             *float64 `json:"airlineRatingLte,omitempty"`
	AirlineNationalityContains   string   `json:"airlineNationalityContains,omitempty"`
	DepartureAirportNameContains string   `json:"departureAirportNameContains,omitempty"`
	DepartureCityContains        string   `json:"departureCityContains,omitempty"`
	DepartureCountryContains     string   `json:"departureCountryContains,omitempty"`
	ArrivalAirportNameContains   string   `json:"arrivalAirportNameContains,omitempty"`
	ArrivalCityContains          string   `json:"arrivalCityContains,omitempty"`
	ArrivalCountryContains       string   `json:"arrivalCountryContains,omitempty"`
	DepartureDateGte             string   `json:"departureDateGte,omitempty"`
	DepartureDateLte             string   `json:"departureDateLte,omitempty"`
	ArrivalDateGte               string   `json:"arrivalDateGte,omitempty"`
	ArrivalDateLte               string   `json:"arrivalDateLte,omitempty"`
	Status                       string   `json:"status,omitempty"`
	TripTypeNameContains         string   `json:"tripTypeNameContains,omitempty"`
	TripTypePriceGte             *float64 `json:"tripTypePriceGte,omitempty"`
	TripTypePriceLte             *float64 `json:"tripTypePriceLte,omitempty"`
}

// FlightForm is the user facing flight search form. All values are kept as
// entered; Filter does the translation.
type FlightForm struct {
	AirlineNameContains      string `json:"airlineNameContains"`
	DepartureCityContains    string `json:"departureCityContains"`
	ArrivalCityContains      string `json:"arrivalCityContains"`
	DepartureCountryContains string `json:"departureCountryContains"`
	ArrivalCountryContains   string `json:"arrivalCountryContains"`
	DepartureDateGte         string `json:"departureDateGte"`
	TripTypePrice            string `json:"tripTypePrice"`
}

func NewFlightForm() FlightForm {
	return FlightForm{TripTypePrice: DefaultPrice}
}

// Clear resets every field to its initial value.
func (f *FlightForm) Clear() {
	*f = NewFlightForm()
}

func (f FlightForm) Validate() validate.Errors {
	errs := validate.Errors{}
	if f.TripTypePrice != "" {
		if _, ok := nonNegative(f.TripTypePrice); !ok {
			errs["tripTypePrice"] = "Enter a valid non-negative number"
		}
	}
	if f.DepartureDateGte != "" && !validate.Date(f.DepartureDateGte) {
		errs["departureDateGte"] = "Enter a date as YYYY-MM-DD"
	}
	return errs
}

// Filter builds the API filter from the non-empty form fields.
func (f FlightForm) Filter() (FlightFilter, error) {
	if errs := f.Validate(); !errs.OK() {
		return FlightFilter{}, ErrFilterErrors
	}

	out := FlightFilter{
		AirlineNameContains:      f.AirlineNameContains,
		DepartureCityContains:    f.DepartureCityContains,
		ArrivalCityContains:      f.ArrivalCityContains,
		DepartureCountryContains: f.DepartureCountryContains,
		ArrivalCountryContains:   f.ArrivalCountryContains,
	}
	if f.DepartureDateGte != "" {
		out.DepartureDateGte = f.DepartureDateGte + "T00:00:00"
	}
	if p, ok := nonNegative(f.TripTypePrice); ok {
		out.TripTypePriceGte = ptr(math.Max(0, p-FlightPriceDelta))
		out.TripTypePriceLte = ptr(p + FlightPriceDelta)
	}
	return out, nil
}

func nonNegative(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

func ptr[T any](v T) *T { return &v }
