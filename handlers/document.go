package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/omarzydan610/JetStay-sub001/database"
	"github.com/omarzydan610/JetStay-sub001/middleware"
	"github.com/omarzydan610/JetStay-sub001/offers"
	"github.com/omarzydan610/JetStay-sub001/services"
)

// documentBody optionally carries the ticket count and the offer applied at
// booking time so the confirmation shows the discounted total.
type documentBody struct {
	Type         string        `json:"type"`
	TravelerName string        `json:"travelerName"`
	Quantity     int           `json:"quantity"`
	Offer        *offers.Offer `json:"offer"`
}

type DocumentResponse struct {
	DocumentID string          `json:"documentId"`
	PDFURL     string          `json:"pdfUrl"`
	Message    string          `json:"message"`
	Totals     services.Totals `json:"totals"`
}

// GenerateDocument renders the confirmation PDF for one of the caller's
// bookings. With history enabled the PDF is stored and its download URL
// returned; otherwise the PDF itself is the response.
func (h *Handler) GenerateDocument(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body documentBody
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, documentSchema, &body) {
			return
		}
	}

	bookings, err := h.api(c).BookingHistory(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	booking, found := findBooking(bookings, id, body.Type)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if body.Offer != nil && booking.Ticket == nil {
		badRequest(c, "Offers apply to flight tickets only")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	travelerName := strings.TrimSpace(body.TravelerName)
	if travelerName == "" {
		if s := h.session(middleware.TokenFrom(c)); s.Authenticated {
			travelerName = s.Email
		}
	}

	docID := uuid.New().String()
	doc := services.BookingDocument{
		Reference:    strings.ToUpper(docID[:8]),
		TravelerName: travelerName,
		Booking:      booking,
		Quantity:     body.Quantity,
		Offer:        body.Offer,
		GeneratedAt:  h.now(),
	}
	pdf, err := services.GenerateBookingPDF(doc)
	if err != nil {
		h.logger.Error("❌ PDF generation failed", "booking_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	if h.history == nil {
		writePDF(c, fmt.Sprintf("jetstay-booking-%d.pdf", id), pdf)
		return
	}

	stored := &database.Document{
		ID:           docID,
		BookingID:    booking.ID,
		BookingType:  booking.Type,
		TravelerName: travelerName,
		PDFData:      pdf,
	}
	if err := h.history.SaveDocument(c.Request.Context(), stored); err != nil {
		h.logger.Error("❌ failed to save booking PDF", "booking_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save generated PDF"})
		return
	}
	h.logger.Info("✅ PDF generated", "document_id", docID, "booking_id", id, "bytes", len(pdf))

	c.JSON(http.StatusCreated, DocumentResponse{
		DocumentID: docID,
		PDFURL:     "/api/documents/" + docID,
		Message:    "PDF generated successfully",
		Totals:     doc.Totals(),
	})
}

// findBooking matches on id and, when given, the booking type. Hotel and
// flight ids come from different sequences and can collide.
func findBooking(list []services.Booking, id int, kind string) (services.Booking, bool) {
	for _, b := range list {
		if b.ID == id && (kind == "" || b.Type == kind) {
			return b, true
		}
	}
	return services.Booking{}, false
}
