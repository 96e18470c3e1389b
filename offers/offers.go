// Package offers applies flight and room discount offers to prices.
package offers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// Offer is a percentage discount attached to a flight or room type.
type Offer struct {
	ID            int     `json:"offerId,omitempty"`
	Name          string  `json:"offerName"`
	DiscountValue float64 `json:"discountValue"`
	StartDate     *Time   `json:"startDate,omitempty"`
	EndDate       *Time   `json:"endDate,omitempty"`
	MaxUsage      *int    `json:"maxUsage,omitempty"`
	CurrentUsage  *int    `json:"currentUsage,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// UnmarshalJSON reads the id from whichever key the owning resource uses.
func (o *Offer) UnmarshalJSON(b []byte) error {
	type plain Offer
	aux := struct {
		*plain
		FlightOfferID int `json:"flightOfferId"`
		RoomOfferID   int `json:"roomOfferId"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	switch {
	case aux.FlightOfferID != 0:
		o.ID = aux.FlightOfferID
	case aux.RoomOfferID != 0:
		o.ID = aux.RoomOfferID
	}
	return nil
}

// Time accepts the API's zoneless timestamps as well as RFC 3339.
type Time struct {
	time.Time
}

var timeLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339, "2006-01-02"}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("offers: unrecognised time %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}

// Active reports whether o can be applied at now. The start date is not
// checked so offers can be previewed before they open.
func Active(o Offer, now time.Time) bool {
	if o.IsActive != nil && !*o.IsActive {
		return false
	}
	if o.EndDate != nil && now.After(o.EndDate.Time) {
		return false
	}
	if o.MaxUsage != nil && *o.MaxUsage > 0 && o.CurrentUsage != nil && *o.CurrentUsage >= *o.MaxUsage {
		return false
	}
	return true
}

// DiscountedPrice applies a percentage discount. A zero price or discount
// returns the price unchanged.
func DiscountedPrice(price, discount float64) float64 {
	if price == 0 || discount == 0 {
		return price
	}
	return price * (1 - discount/100)
}

// Best returns the active offer with the highest discount. Ties keep the
// earlier offer.
func Best(list []Offer, now time.Time) (Offer, bool) {
	var best Offer
	found := false
	for _, o := range list {
		if !Active(o, now) {
			continue
		}
		if !found || o.DiscountValue > best.DiscountValue {
			best, found = o, true
		}
	}
	return best, found
}

// SortByDiscount returns a copy ordered from the highest discount down.
func SortByDiscount(list []Offer) []Offer {
	out := append([]Offer(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DiscountValue > out[j].DiscountValue
	})
	return out
}

// TotalSavings is what the best active offer takes off price.
func TotalSavings(list []Offer, price float64, now time.Time) float64 {
	if price == 0 {
		return 0
	}
	best, ok := Best(list, now)
	if !ok {
		return 0
	}
	return price - DiscountedPrice(price, best.DiscountValue)
}

// TicketTotal prices quantity tickets with an optional offer applied to each.
func TicketTotal(price float64, offer *Offer, quantity int) float64 {
	per := price
	if offer != nil {
		per = DiscountedPrice(price, offer.DiscountValue)
	}
	return per * float64(quantity)
}

type PriceDisplay struct {
	DisplayPrice  string  `json:"displayPrice"`
	OriginalPrice string  `json:"originalPrice,omitempty"`
	IsDiscounted  bool    `json:"isDiscounted"`
	Savings       float64 `json:"savings,omitempty"`
}

// FormatPrice shows the original price struck through only when discounted is
// set and actually lower.
func FormatPrice(original float64, discounted *float64, currency string) PriceDisplay {
	if currency == "" {
		currency = "$"
	}
	format := func(p float64) string { return fmt.Sprintf("%s%.2f", currency, p) }

	if discounted != nil && *discounted < original {
		return PriceDisplay{
			DisplayPrice:  format(*discounted),
			OriginalPrice: format(original),
			IsDiscounted:  true,
			Savings:       original - *discounted,
		}
	}
	return PriceDisplay{DisplayPrice: format(original)}
}

// BadgeText renders "15% OFF".
func BadgeText(discount float64) string {
	if math.IsNaN(discount) {
		return "Offer"
	}
	return fmt.Sprintf("%s%% OFF", trimFloat(discount))
}

// ExpiringSoon reports whether o ends within the next 24 hours.
func ExpiringSoon(o Offer, now time.Time) bool {
	if o.EndDate == nil {
		return false
	}
	left := o.EndDate.Time.Sub(now)
	return left > 0 && left <= 24*time.Hour
}

// DateRangeLabel renders "Jan 2, 15:04 - Jan 9, 15:04" or "N/A".
func DateRangeLabel(start, end *Time) string {
	if start == nil || end == nil {
		return "N/A"
	}
	const layout = "Jan 2, 15:04"
	return start.Format(layout) + " - " + end.Format(layout)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
