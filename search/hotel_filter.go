package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/omarzydan610/JetStay-sub001/validate"
)

const (
	// RoomPriceDelta is the half width of the nightly price window.
	RoomPriceDelta = 100.0
	// clearedRoomPrice is what the hotel form shows after "clear filters".
	clearedRoomPrice = "15"
)

// RoomFilter mirrors the API's RoomFilterDTO.
type RoomFilter struct {
	RoomNameContains  string   `json:"roomNameContains,omitempty"`
	RoomTypeContains  string   `json:"roomTypeContains,omitempty"`
	PriceGte          *float64 `json:"priceGte,omitempty"`
	PriceLte          *float64 `json:"priceLte,omitempty"`
	HotelID           *int     `json:"hotelID,omitempty"`
	HotelNameContains string   `json:"hotelNameContains,omitempty"`
	CityContains      string   `json:"cityContains,omitempty"`
	CountryContains   string   `json:"countryContains,omitempty"`
	HotelRateGte      *float64 `json:"hotelRateGte,omitempty"`
	HotelRateLte      *float64 `json:"hotelRateLte,omitempty"`
	NumberOfRatesGte  *int     `json:"numberOfRatesGte,omitempty"`
	NumberOfRatesLte  *int     `json:"numberOfRatesLte,omitempty"`
	AdminID           *int     `json:"adminID,omitempty"`
	Status            string   `json:"status,omitempty"`
	CreatedAfter      string   `json:"createdAfter,omitempty"`
	CreatedBefore     string   `json:"createdBefore,omitempty"`
}

type HotelForm struct {
	HotelNameContains string `json:"hotelNameContains"`
	CityContains      string `json:"cityContains"`
	CountryContains   string `json:"countryContains"`
	HotelRating       string `json:"hotelRating"`
	RoomTypePrice     string `json:"roomTypePrice"`
	RoomTypeContains  string `json:"roomTypeContains"`
}

func NewHotelForm() HotelForm {
	return HotelForm{RoomTypePrice: DefaultPrice}
}

// Clear empties the form. The price falls back to 15 rather than the initial 50.
func (f *HotelForm) Clear() {
	*f = HotelForm{RoomTypePrice: clearedRoomPrice}
}

func (f HotelForm) Validate() validate.Errors {
	errs := validate.Errors{}
	if f.RoomTypePrice != "" {
		if _, ok := nonNegative(f.RoomTypePrice); !ok {
			errs["roomTypePrice"] = "Enter a valid non-negative number"
		}
	}
	if f.HotelRating != "" {
		if r, ok := nonNegative(f.HotelRating); !ok || r > 5 {
			errs["hotelRating"] = "Rating must be between 0 and 5"
		}
	}
	return errs
}

func (f HotelForm) Filter() (RoomFilter, error) {
	if errs := f.Validate(); !errs.OK() {
		return RoomFilter{}, ErrFilterErrors
	}

	out := RoomFilter{
		HotelNameContains: f.HotelNameContains,
		CityContains:      f.CityContains,
		CountryContains:   f.CountryContains,
		RoomTypeContains:  f.RoomTypeContains,
	}
	if f.HotelRating != "" {
		r, _ := strconv.ParseFloat(strings.TrimSpace(f.HotelRating), 64)
		out.HotelRateGte = ptr(math.Max(0, r-0.5))
		out.HotelRateLte = ptr(math.Min(5, r+2))
	}
	if p, ok := nonNegative(f.RoomTypePrice); ok {
		out.PriceGte = ptr(math.Max(0, p-RoomPriceDelta))
		out.PriceLte = ptr(p + RoomPriceDelta)
	}
	return out, nil
}
