package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/database"
	"github.com/omarzydan610/JetStay-sub001/middleware"
	"github.com/omarzydan610/JetStay-sub001/offers"
	"github.com/omarzydan610/JetStay-sub001/search"
	"github.com/omarzydan610/JetStay-sub001/services"
)

const (
	FlightSearches = "flights"
	HotelSearches  = "hotels"
)

type flightSearchRequest struct {
	Form *search.FlightForm `json:"form"`
	Page int                `json:"page"`
	Size int                `json:"size"`
}

type hotelSearchRequest struct {
	Form *search.HotelForm `json:"form"`
	Page int               `json:"page"`
	Size int               `json:"size"`
}

// FlightResult is a search hit with its display fields worked out.
type FlightResult struct {
	services.Flight
	FromPrice     float64 `json:"lowestPrice"`
	Duration      string  `json:"duration"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	From          string  `json:"fromCode"`
	To            string  `json:"toCode"`
}

type FlightSearchResponse struct {
	Flights    []FlightResult      `json:"flights"`
	Filter     search.FlightFilter `json:"filter"`
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
	TotalPages int                 `json:"totalPages,omitempty"`
}

type HotelResult struct {
	search.Hotel
	FromPrice float64 `json:"lowestPrice"`
}

type HotelSearchResponse struct {
	Hotels []HotelResult     `json:"hotels"`
	Rooms  int               `json:"rooms"`
	Filter search.RoomFilter `json:"filter"`
	Page   int               `json:"page"`
	Size   int               `json:"size"`
}

// ─── Search ───────────────────────────────────────────────────────────────────

func (h *Handler) SearchFlights(c *gin.Context) {
	var req flightSearchRequest
	if !bindJSON(c, flightSearchSchema, &req) {
		return
	}
	form := search.NewFlightForm()
	if req.Form != nil {
		form = *req.Form
	}
	if errs := form.Validate(); !errs.OK() {
		formErrors(c, errs)
		return
	}
	filter, err := form.Filter()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	pager := search.Pager{Page: req.Page, Size: req.Size}.Normalize()

	page, err := h.api(c).SearchFlights(c.Request.Context(), filter, pager.Page, pager.Size)
	if err != nil {
		h.fail(c, err)
		return
	}

	results := make([]FlightResult, 0, len(page.Flights))
	for _, f := range page.Flights {
		results = append(results, FlightResult{
			Flight:        f,
			FromPrice:     f.LowestPrice(),
			Duration:      search.FlightDuration(f.DepartureDate, f.ArrivalDate),
			DepartureTime: search.FlightTime(f.DepartureDate),
			ArrivalTime:   search.FlightTime(f.ArrivalDate),
			From:          search.AirportCode(f.DepartureAirport.AirportName),
			To:            search.AirportCode(f.ArrivalAirport.AirportName),
		})
	}
	h.record(c, FlightSearches, filter, pager.Page, len(results))

	c.JSON(http.StatusOK, FlightSearchResponse{
		Flights:    results,
		Filter:     filter,
		Page:       pager.Page,
		Size:       pager.Size,
		TotalPages: page.TotalPages,
	})
}

// SearchHotels runs the room query and groups the rooms by hotel.
func (h *Handler) SearchHotels(c *gin.Context) {
	var req hotelSearchRequest
	if !bindJSON(c, hotelSearchSchema, &req) {
		return
	}
	form := search.NewHotelForm()
	if req.Form != nil {
		form = *req.Form
	}
	if errs := form.Validate(); !errs.OK() {
		formErrors(c, errs)
		return
	}
	filter, err := form.Filter()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	pager := search.Pager{Page: req.Page, Size: req.Size}.Normalize()

	rooms, err := h.api(c).SearchRooms(c.Request.Context(), filter, pager.Page, pager.Size)
	if err != nil {
		h.fail(c, err)
		return
	}

	hotels := search.MergeRooms(rooms)
	results := make([]HotelResult, 0, len(hotels))
	for _, hotel := range hotels {
		results = append(results, HotelResult{Hotel: hotel, FromPrice: hotel.LowestPrice()})
	}
	h.record(c, HotelSearches, filter, pager.Page, len(results))

	c.JSON(http.StatusOK, HotelSearchResponse{
		Hotels: results,
		Rooms:  len(rooms),
		Filter: filter,
		Page:   pager.Page,
		Size:   pager.Size,
	})
}

// record saves the search when history is enabled. Failures are logged and
// never fail the search itself.
func (h *Handler) record(c *gin.Context, kind string, filter any, page, results int) {
	owner := historyOwner(middleware.TokenFrom(c))
	if h.history == nil || owner == "" {
		return
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		h.logger.Warn("⚠️  could not encode search filter", "kind", kind, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
	defer cancel()

	s := &database.Search{Owner: owner, Kind: kind, Filter: raw, Page: page, Results: results}
	if err := h.history.SaveSearch(ctx, s); err != nil {
		h.logger.Warn("⚠️  could not record search",
			"request_id", middleware.RequestIDFrom(c),
			"kind", kind,
			"error", err,
		)
	}
}

// historyOwner keys history by a digest of the bearer token, so a caller only
// sees searches made with the same session. Anonymous searches are not kept.
func historyOwner(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// SearchHistory lists the caller's recent searches, optionally of one kind.
func (h *Handler) SearchHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNoHistory.Error()})
		return
	}
	owner := historyOwner(middleware.TokenFrom(c))
	if owner == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Sign in to see your search history",
			"code":  services.CodeUnauthorized,
		})
		return
	}
	kind := c.Query("kind")
	if kind != "" && kind != FlightSearches && kind != HotelSearches {
		badRequest(c, "kind must be flights or hotels")
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	list, err := h.history.RecentSearches(c.Request.Context(), owner, kind, database.ClampSearchLimit(limit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": list})
}

// ─── Offers ───────────────────────────────────────────────────────────────────

type OfferView struct {
	offers.Offer
	Badge        string `json:"badge"`
	Period       string `json:"period"`
	ExpiringSoon bool   `json:"expiringSoon"`
	Active       bool   `json:"active"`
}

type OffersResponse struct {
	Offers  []OfferView          `json:"offers"`
	Best    *offers.Offer        `json:"best,omitempty"`
	Price   *offers.PriceDisplay `json:"price,omitempty"`
	Savings float64              `json:"savings"`
}

// FlightOffers lists a flight's public offers, best first. With ?price the
// best offer is applied to it.
func (h *Handler) FlightOffers(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var price float64
	if raw := c.Query("price"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || p < 0 {
			badRequest(c, "price must be a non-negative number")
			return
		}
		price = p
	}

	now := h.now()
	list := h.api(c).PublicFlightOffers(c.Request.Context(), id)
	resp := OffersResponse{
		Offers:  make([]OfferView, 0, len(list)),
		Savings: offers.TotalSavings(list, price, now),
	}
	for _, o := range offers.SortByDiscount(list) {
		resp.Offers = append(resp.Offers, OfferView{
			Offer:        o,
			Badge:        offers.BadgeText(o.DiscountValue),
			Period:       offers.DateRangeLabel(o.StartDate, o.EndDate),
			ExpiringSoon: offers.ExpiringSoon(o, now),
			Active:       offers.Active(o, now),
		})
	}
	if best, ok := offers.Best(list, now); ok {
		resp.Best = &best
		if price > 0 {
			discounted := offers.DiscountedPrice(price, best.DiscountValue)
			display := offers.FormatPrice(price, &discounted, "")
			resp.Price = &display
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Date ranges ──────────────────────────────────────────────────────────────

type PresetRange struct {
	search.Preset
	Range search.DateRange `json:"range"`
	Text  string           `json:"text"`
}

// RangePresets returns the quick selections resolved against today, plus
// the default range.
func (h *Handler) RangePresets(c *gin.Context) {
	now := h.now()
	presets := make([]PresetRange, 0, len(search.Presets))
	for _, p := range search.Presets {
		r := search.LastDays(now, p.Days)
		presets = append(presets, PresetRange{Preset: p, Range: r, Text: r.Label()})
	}
	def := search.DefaultRange(now)
	c.JSON(http.StatusOK, gin.H{
		"presets":   presets,
		"default":   def,
		"yesterday": search.Yesterday(now),
		"text":      def.Label(),
	})
}

type CalendarCell struct {
	search.CalendarDay
	Selected bool `json:"selected"`
}

// Calendar lays out ?month=YYYY-MM (default: this month) and marks the days
// inside ?startDate..?endDate.
func (h *Handler) Calendar(c *gin.Context) {
	month := h.now()
	if raw := c.Query("month"); raw != "" {
		m, err := time.ParseInLocation("2006-01", raw, time.Local)
		if err != nil {
			badRequest(c, "month must be YYYY-MM")
			return
		}
		month = m
	}

	picker := search.NewRangePicker(search.DateRange{})
	if start := c.Query("startDate"); start != "" {
		picker.Click(start)
		if end := c.Query("endDate"); end != "" {
			picker.Click(end)
		}
		if _, err := picker.Apply(); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	days := search.CalendarMonth(month)
	cells := make([]CalendarCell, 0, len(days))
	for _, d := range days {
		cells = append(cells, CalendarCell{CalendarDay: d, Selected: picker.InRange(d.Date)})
	}
	c.JSON(http.StatusOK, gin.H{
		"month": month.Format("January 2006"),
		"days":  cells,
		"range": picker.Committed,
	})
}
