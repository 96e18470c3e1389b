// Package monitoring holds the admin monitoring payloads and reshapes them
// into chart series.
package monitoring

import (
	"math"
	"sort"
)

type BookingMonitoring struct {
	TotalBookings           int               `json:"totalBookings"`
	TotalRevenue            float64           `json:"totalRevenue"`
	TotalRoomsBooked        float64           `json:"totalRoomsBooked"`
	TotalGuests             float64           `json:"totalGuests"`
	BookingsByStatus        map[string]int    `json:"bookingsByStatus"`
	BookingsByPaymentStatus map[string]int    `json:"bookingsByPaymentStatus"`
	BookingsByHotel         []HotelStats      `json:"bookingsByHotel"`
	BookingsByPaymentMethod []PaymentMethod   `json:"bookingsByPaymentMethod"`
	DailyBookings           []DailyBookingRow `json:"dailyBookings"`
}

type HotelStats struct {
	HotelID       int     `json:"hotelId"`
	HotelName     string  `json:"hotelName"`
	TotalBookings int     `json:"totalBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type PaymentMethod struct {
	MethodID    int     `json:"methodId,omitempty"`
	MethodName  string  `json:"methodName"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type DailyBookingRow struct {
	Date          string  `json:"date"`
	TotalBookings int     `json:"totalBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type FlightMonitoring struct {
	TotalTickets           int              `json:"totalTickets"`
	TotalRevenue           float64          `json:"totalRevenue"`
	TicketsByPaymentStatus map[string]int   `json:"ticketsByPaymentStatus"`
	TicketsByAirline       []AirlineStats   `json:"ticketsByAirline"`
	FlightsByStatus        map[string]int   `json:"flightsByStatus"`
	PaymentsByStatus       map[string]int   `json:"paymentsByStatus"`
	PaymentsByMethod       []PaymentMethod  `json:"paymentsByMethod"`
	DailyTickets           []DailyTicketRow `json:"dailyTickets"`
}

type AirlineStats struct {
	AirlineID    int     `json:"airlineId"`
	AirlineName  string  `json:"airlineName"`
	TotalTickets int     `json:"totalTickets"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type DailyTicketRow struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// ChartPoint is one slice of a pie or bar chart.
type ChartPoint struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type MethodShare struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
	Percent     float64 `json:"percent"`
	Average     float64 `json:"average"`
}

// Series turns a status → count map into chart points ordered by value
// descending, then name.
func Series(m map[string]int) []ChartPoint {
	points := make([]ChartPoint, 0, len(m))
	for name, v := range m {
		points = append(points, ChartPoint{Name: name, Value: float64(v)})
	}
	return Share(points)
}

// Share sorts points and fills in each one's percentage of the total,
// rounded to one decimal.
func Share(points []ChartPoint) []ChartPoint {
	sortPoints(points)
	var total float64
	for _, p := range points {
		total += p.Value
	}
	for i := range points {
		points[i].Percent = percent(points[i].Value, total)
	}
	return points
}

// Average divides a sum by a count, returning 0 for an empty count.
func Average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// PaidRate is the share of paid items, with an empty total counted as 1.
func PaidRate(byPaymentStatus map[string]int, total int) float64 {
	if total == 0 {
		total = 1
	}
	return percent(float64(byPaymentStatus["paid"]), float64(total))
}

type BookingCharts struct {
	Status           []ChartPoint  `json:"status"`
	PaymentStatus    []ChartPoint  `json:"paymentStatus"`
	HotelRevenue     []ChartPoint  `json:"hotelRevenue"`
	HotelBookings    []ChartPoint  `json:"hotelBookings"`
	PaymentMethods   []MethodShare `json:"paymentMethods"`
	Daily            []TrendPoint  `json:"daily"`
	PaidRate         float64       `json:"paidRate"`
	AverageRevenue   float64       `json:"averageRevenue"`
	AverageGuests    float64       `json:"averageGuests"`
	AverageRoomsUsed float64       `json:"averageRooms"`
}

// NewBookingCharts reshapes a booking monitoring payload. Method shares are
// taken against the total number of bookings.
func NewBookingCharts(m BookingMonitoring) BookingCharts {
	c := BookingCharts{
		Status:           Series(m.BookingsByStatus),
		PaymentStatus:    Series(m.BookingsByPaymentStatus),
		PaidRate:         PaidRate(m.BookingsByPaymentStatus, m.TotalBookings),
		AverageRevenue:   round(Average(m.TotalRevenue, m.TotalBookings), 2),
		AverageGuests:    round(Average(m.TotalGuests, m.TotalBookings), 2),
		AverageRoomsUsed: round(Average(m.TotalRoomsBooked, m.TotalBookings), 2),
	}

	revenue := make([]ChartPoint, 0, len(m.BookingsByHotel))
	bookings := make([]ChartPoint, 0, len(m.BookingsByHotel))
	for _, h := range m.BookingsByHotel {
		revenue = append(revenue, ChartPoint{Name: h.HotelName, Value: h.TotalRevenue})
		bookings = append(bookings, ChartPoint{Name: h.HotelName, Value: float64(h.TotalBookings)})
	}
	c.HotelRevenue = Share(revenue)
	c.HotelBookings = Share(bookings)

	c.PaymentMethods = methodShares(m.BookingsByPaymentMethod, m.TotalBookings)

	c.Daily = make([]TrendPoint, 0, len(m.DailyBookings))
	for _, d := range m.DailyBookings {
		c.Daily = append(c.Daily, TrendPoint{Date: d.Date, Count: d.TotalBookings, Revenue: d.TotalRevenue})
	}
	sortTrend(c.Daily)
	return c
}

type FlightCharts struct {
	TicketPaymentStatus []ChartPoint  `json:"ticketPaymentStatus"`
	FlightStatus        []ChartPoint  `json:"flightStatus"`
	PaymentStatus       []ChartPoint  `json:"paymentStatus"`
	AirlineRevenue      []ChartPoint  `json:"airlineRevenue"`
	AirlineTickets      []ChartPoint  `json:"airlineTickets"`
	PaymentMethods      []MethodShare `json:"paymentMethods"`
	Daily               []TrendPoint  `json:"daily"`
	PaidRate            float64       `json:"paidRate"`
	AverageRevenue      float64       `json:"averageRevenue"`
}

// NewFlightCharts reshapes a flight monitoring payload. Method shares are
// taken against the summed method counts.
func NewFlightCharts(m FlightMonitoring) FlightCharts {
	c := FlightCharts{
		TicketPaymentStatus: Series(m.TicketsByPaymentStatus),
		FlightStatus:        Series(m.FlightsByStatus),
		PaymentStatus:       Series(m.PaymentsByStatus),
		PaidRate:            PaidRate(m.TicketsByPaymentStatus, m.TotalTickets),
		AverageRevenue:      round(Average(m.TotalRevenue, m.TotalTickets), 2),
	}

	revenue := make([]ChartPoint, 0, len(m.TicketsByAirline))
	tickets := make([]ChartPoint, 0, len(m.TicketsByAirline))
	for _, a := range m.TicketsByAirline {
		revenue = append(revenue, ChartPoint{Name: a.AirlineName, Value: a.TotalRevenue})
		tickets = append(tickets, ChartPoint{Name: a.AirlineName, Value: float64(a.TotalTickets)})
	}
	c.AirlineRevenue = Share(revenue)
	c.AirlineTickets = Share(tickets)

	var payments int
	for _, p := range m.PaymentsByMethod {
		payments += p.Count
	}
	c.PaymentMethods = methodShares(m.PaymentsByMethod, payments)

	c.Daily = make([]TrendPoint, 0, len(m.DailyTickets))
	for _, d := range m.DailyTickets {
		c.Daily = append(c.Daily, TrendPoint{Date: d.Date, Count: d.Count, Revenue: d.Revenue})
	}
	sortTrend(c.Daily)
	return c
}

func methodShares(methods []PaymentMethod, total int) []MethodShare {
	out := make([]MethodShare, 0, len(methods))
	for _, m := range methods {
		out = append(out, MethodShare{
			Name:        m.MethodName,
			Count:       m.Count,
			TotalAmount: m.TotalAmount,
			Percent:     percent(float64(m.Count), float64(total)),
			Average:     round(Average(m.TotalAmount, m.Count), 2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sortPoints(points []ChartPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Name < points[j].Name
	})
}

// sortTrend orders by date; YYYY-MM-DD sorts lexically.
func sortTrend(points []TrendPoint) {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
}

func percent(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round(v/total*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
