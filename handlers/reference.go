package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Reference lists come from the API client's cache when one is configured.

func (h *Handler) Countries(c *gin.Context) {
	list, err := h.api(c).Countries(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": list})
}

func (h *Handler) Cities(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		badRequest(c, "country is required")
		return
	}
	list, err := h.api(c).Cities(c.Request.Context(), country)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"country": country, "cities": list})
}

func (h *Handler) Airports(c *gin.Context) {
	country, city := c.Query("country"), c.Query("city")
	if country == "" || city == "" {
		badRequest(c, "country and city are required")
		return
	}
	list, err := h.api(c).Airports(c.Request.Context(), country, city)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"airports": list})
}

func (h *Handler) TicketTypes(c *gin.Context) {
	list, err := h.api(c).TicketTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketTypes": list})
}

// ─── Admin filters ────────────────────────────────────────────────────────────

// AdminHotels feeds the hotel picker of the booking monitor.
func (h *Handler) AdminHotels(c *gin.Context) {
	list, err := h.api(c).AdminHotels(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": list})
}

// AdminAirlines feeds the airline picker of the flight monitor.
func (h *Handler) AdminAirlines(c *gin.Context) {
	list, err := h.api(c).AdminAirlines(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"airlines": list})
}
