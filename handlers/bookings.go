package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/offers"
	"github.com/omarzydan610/JetStay-sub001/services"
)

type ticketBody struct {
	services.TicketBookingRequest
	// Price is the trip type price shown to the traveller.
	Price float64 `json:"price"`
}

type TicketBookingResponse struct {
	TicketIDs []int         `json:"ticketIds"`
	Quantity  int           `json:"quantity"`
	Offer     *offers.Offer `json:"offer,omitempty"`
	UnitPrice float64       `json:"unitPrice"`
	Total     float64       `json:"total"`
}

// BookTickets books the tickets and prices them with the flight's best
// active offer.
func (h *Handler) BookTickets(c *gin.Context) {
	var body ticketBody
	if !bindJSON(c, ticketSchema, &body) {
		return
	}
	req := body.TicketBookingRequest
	if err := req.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	api := h.api(c)
	ctx := c.Request.Context()

	var offer *offers.Offer
	if best, ok := offers.Best(api.PublicFlightOffers(ctx, req.FlightID), h.now()); ok {
		offer = &best
	}

	ids, err := api.BookTickets(ctx, req)
	if err != nil {
		if errors.Is(err, services.ErrQuantity) || errors.Is(err, services.ErrMissingBookingFields) {
			badRequest(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}

	unit := body.Price
	if offer != nil {
		unit = offers.DiscountedPrice(body.Price, offer.DiscountValue)
	}
	h.logger.Info("✅ tickets booked", "flight_id", req.FlightID, "quantity", req.Quantity, "tickets", len(ids))
	c.JSON(http.StatusCreated, TicketBookingResponse{
		TicketIDs: ids,
		Quantity:  req.Quantity,
		Offer:     offer,
		UnitPrice: unit,
		Total:     offers.TicketTotal(body.Price, offer, req.Quantity),
	})
}

func (h *Handler) BookingHistory(c *gin.Context) {
	list, err := h.api(c).BookingHistory(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) UpcomingBookings(c *gin.Context) {
	list, err := h.api(c).UpcomingBookings(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	env, err := h.api(c).CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope(c, env)
}
