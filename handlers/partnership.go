package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/services"
	"github.com/omarzydan610/JetStay-sub001/validate"
)

// multipart bodies above this are refused before parsing
const maxPartnershipBody = services.MaxLogoSize + 1<<20

func (h *Handler) AirlinePartnership(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPartnershipBody)
	logo, ok := readLogo(c)
	if !ok {
		return
	}
	form := validate.AirlinePartnershipForm{
		AirlineName:        c.PostForm("airlineName"),
		AirlineNationality: c.PostForm("airlineNationality"),
		PartnerAdmin:       partnerAdmin(c),
	}

	env, err := h.api(c).SubmitAirlinePartnership(c.Request.Context(), form, logo)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("✅ airline partnership submitted", "airline", strings.TrimSpace(form.AirlineName))
	envelope(c, env)
}

func (h *Handler) HotelPartnership(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPartnershipBody)
	logo, ok := readLogo(c)
	if !ok {
		return
	}
	form := validate.HotelPartnershipForm{
		HotelName:    c.PostForm("hotelName"),
		Latitude:     c.PostForm("latitude"),
		Longitude:    c.PostForm("longitude"),
		City:         c.PostForm("city"),
		Country:      c.PostForm("country"),
		PartnerAdmin: partnerAdmin(c),
	}

	env, err := h.api(c).SubmitHotelPartnership(c.Request.Context(), form, logo)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("✅ hotel partnership submitted", "hotel", strings.TrimSpace(form.HotelName))
	envelope(c, env)
}

func partnerAdmin(c *gin.Context) validate.PartnerAdmin {
	return validate.PartnerAdmin{
		AdminFirstName:  c.PostForm("adminFirstName"),
		AdminLastName:   c.PostForm("adminLastName"),
		AdminPhone:      c.PostForm("adminPhone"),
		ManagerEmail:    c.PostForm("managerEmail"),
		ManagerPassword: c.PostForm("managerPassword"),
		ConfirmPassword: c.PostForm("confirmPassword"),
	}
}

// readLogo returns the optional "logo" file. Type and size are checked by
// the client together with the other fields.
func readLogo(c *gin.Context) (*services.Logo, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		badRequest(c, "Invalid request: expected multipart/form-data")
		return nil, false
	}
	fh, err := c.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		badRequest(c, fmt.Sprintf("Invalid request: %v", err))
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, "Invalid request: unreadable logo")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, services.MaxLogoSize+1))
	if err != nil {
		badRequest(c, "Invalid request: unreadable logo")
		return nil, false
	}
	return &services.Logo{Filename: fh.Filename, Data: data}, true
}
