package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strconv"
	"strings"

	"github.com/omarzydan610/JetStay-sub001/validate"
)

// MaxLogoSize is the largest logo a partnership request may carry.
const MaxLogoSize = 5 << 20

var (
	ErrLogoType = errors.New("Please upload a valid image file (JPEG, PNG, GIF)")
	ErrLogoSize = errors.New("File size must be less than 5MB")
)

var logoTypes = map[string]bool{"image/jpeg": true, "image/png": true, "image/gif": true}

// Logo is an uploaded image file.
type Logo struct {
	Filename string
	Data     []byte
}

// ContentType sniffs the image type from the file contents.
func (l Logo) ContentType() string {
	return http.DetectContentType(l.Data)
}

// Validate accepts JPEG, PNG and GIF images up to MaxLogoSize.
func (l Logo) Validate() error {
	if !logoTypes[l.ContentType()] {
		return ErrLogoType
	}
	if len(l.Data) > MaxLogoSize {
		return ErrLogoSize
	}
	return nil
}

type PartnershipResponse struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	ManagerEmail string `json:"managerEmail,omitempty"`
	Status       string `json:"status,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// SubmitAirlinePartnership sends an airline onboarding request. logo may be
// nil.
func (c *Client) SubmitAirlinePartnership(ctx context.Context, f validate.AirlinePartnershipForm, logo *Logo) (*Envelope, error) {
	if err := checkPartnership(f.Validate(), logo); err != nil {
		return nil, err
	}
	fields := [][2]string{
		{"airlineName", f.AirlineName},
		{"airlineNationality", f.AirlineNationality},
	}
	fields = append(fields, adminFields(f.PartnerAdmin)...)
	return c.submitMultipart(ctx, "/api/partnership/airline", fields, "airlineLogo", logo)
}

// SubmitHotelPartnership sends a hotel onboarding request with normalised
// coordinates. logo may be nil.
func (c *Client) SubmitHotelPartnership(ctx context.Context, f validate.HotelPartnershipForm, logo *Logo) (*Envelope, error) {
	if err := checkPartnership(f.Validate(), logo); err != nil {
		return nil, err
	}
	lat, lng := f.Coordinates()
	fields := [][2]string{
		{"hotelName", f.HotelName},
		{"latitude", strconv.FormatFloat(lat, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(lng, 'f', -1, 64)},
		{"city", f.City},
		{"country", f.Country},
	}
	fields = append(fields, adminFields(f.PartnerAdmin)...)
	return c.submitMultipart(ctx, "/api/partnership/hotel", fields, "hotelLogo", logo)
}

// checkPartnership reports form and logo problems the way the server reports
// validation failures, so callers handle both alike.
func checkPartnership(errs validate.Errors, logo *Logo) error {
	if logo != nil {
		if err := logo.Validate(); err != nil {
			errs["logo"] = err.Error()
		}
	}
	if errs.OK() {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	details := make([]FieldError, 0, len(fields))
	for _, field := range fields {
		details = append(details, FieldError{Field: field, Message: errs[field]})
	}
	return &APIError{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: "Please fix the errors in the form",
		Details: details,
	}
}

func adminFields(a validate.PartnerAdmin) [][2]string {
	return [][2]string{
		{"adminFirstName", a.AdminFirstName},
		{"adminLastName", a.AdminLastName},
		{"adminPhone", a.AdminPhone},
		{"managerEmail", a.ManagerEmail},
		{"managerPassword", a.ManagerPassword},
	}
}

func (c *Client) submitMultipart(ctx context.Context, path string, fields [][2]string, fileField string, logo *Logo) (*Envelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
		}
	}
	if logo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			fileField, escapeQuotes(logo.Filename)))
		h.Set("Content-Type", logo.ContentType())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
		}
		if _, err := part.Write(logo.Data); err != nil {
			return nil, &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
	}

	env := &Envelope{}
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		raw:         &buf,
		contentType: w.FormDataContentType(),
		whole:       true,
	}, env)
	if err != nil {
		return nil, err
	}
	return env, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
