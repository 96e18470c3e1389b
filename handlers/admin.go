package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/monitoring"
	"github.com/omarzydan610/JetStay-sub001/search"
	"github.com/omarzydan610/JetStay-sub001/services"
)

type BookingMonitorResponse struct {
	Range  search.DateRange             `json:"range"`
	Label  string                       `json:"label"`
	Data   monitoring.BookingMonitoring `json:"data"`
	Charts monitoring.BookingCharts     `json:"charts"`
}

type FlightMonitorResponse struct {
	Range  search.DateRange            `json:"range"`
	Label  string                      `json:"label"`
	Data   monitoring.FlightMonitoring `json:"data"`
	Charts monitoring.FlightCharts     `json:"charts"`
}

// dateRange reads ?startDate&endDate, defaulting to the last 30 days when
// both are absent.
func (h *Handler) dateRange(c *gin.Context) (search.DateRange, bool) {
	r := search.DateRange{Start: c.Query("startDate"), End: c.Query("endDate")}
	if r.Start == "" && r.End == "" {
		return search.DefaultRange(h.now()), true
	}
	if err := r.Validate(); err != nil {
		badRequest(c, err.Error())
		return r, false
	}
	return r, true
}

func (h *Handler) MonitorBookings(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	hotelID, ok := queryInt(c, "hotelId")
	if !ok {
		return
	}
	data, err := h.api(c).MonitorBookings(c.Request.Context(), r, hotelID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, BookingMonitorResponse{
		Range:  r,
		Label:  r.Label(),
		Data:   data,
		Charts: monitoring.NewBookingCharts(data),
	})
}

func (h *Handler) MonitorFlights(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	airlineID, ok := queryInt(c, "airlineId")
	if !ok {
		return
	}
	data, err := h.api(c).MonitorFlights(c.Request.Context(), r, airlineID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, FlightMonitorResponse{
		Range:  r,
		Label:  r.Label(),
		Data:   data,
		Charts: monitoring.NewFlightCharts(data),
	})
}

type statusBody struct {
	Active bool   `json:"active"`
	Reason string `json:"reason"`
}

// SetAccountStatus activates or deactivates a user (by email), airline or
// hotel (by id).
func (h *Handler) SetAccountStatus(c *gin.Context) {
	kind := services.AccountKind(c.Param("kind"))
	switch kind {
	case services.UserAccount, services.AirlineAccount, services.HotelAccount:
	default:
		badRequest(c, "kind must be user, airline or hotel")
		return
	}
	var body statusBody
	if !bindJSON(c, statusSchema, &body) {
		return
	}

	env, err := h.api(c).SetAccountStatus(c.Request.Context(), kind, c.Param("id"), body.Active, body.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope(c, env)
}
