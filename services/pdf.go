package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/omarzydan610/JetStay-sub001/offers"
)

// BookingDocument is everything printed on a booking confirmation.
type BookingDocument struct {
	Reference    string
	TravelerName string
	Booking      Booking
	Quantity     int
	Offer        *offers.Offer
	GeneratedAt  time.Time
}

// Totals is the price summary printed on a confirmation.
type Totals struct {
	Full         float64 `json:"full"`
	Total        float64 `json:"total"`
	Savings      float64 `json:"savings"`
	OfferApplied bool    `json:"offerApplied"`
}

// Totals applies the offer to Quantity tickets at the booked fare. Hotel
// bookings and bookings without an offer keep their booked price.
func (doc BookingDocument) Totals() Totals {
	b := doc.Booking
	if doc.Offer == nil || b.Ticket == nil || doc.Quantity <= 0 {
		return Totals{Full: b.TotalPrice, Total: b.TotalPrice}
	}
	full := b.Ticket.Price * float64(doc.Quantity)
	total := offers.TicketTotal(b.Ticket.Price, doc.Offer, doc.Quantity)
	return Totals{Full: full, Total: total, Savings: full - total, OfferApplied: true}
}

var ErrEmptyBooking = errors.New("booking has neither a room nor a ticket")

// GenerateBookingPDF renders doc as an A4 confirmation and returns the raw
// bytes. Unpaid bookings carry a PENDING watermark.
func GenerateBookingPDF(doc BookingDocument) ([]byte, error) {
	b := doc.Booking
	if b.Room == nil && b.Ticket == nil {
		return nil, ErrEmptyBooking
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Watermark ────────────────────────────────────────────
	if b.Status != "CONFIRMED" {
		pdf.SetTextColor(230, 230, 230)
		pdf.SetFont("Helvetica", "B", 55)
		pdf.TransformBegin()
		pdf.TransformRotate(42, 60, 200)
		pdf.Text(60, 200, "PENDING")
		pdf.TransformEnd()
		pdf.SetTextColor(0, 0, 0)
	}

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "JetStay", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Booking Confirmation", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Booking ──────────────────────────────────────────────
	sectionHeader("Booking")
	name := doc.TravelerName
	if name == "" {
		name = "Guest Traveler"
	}
	row("Reference", doc.Reference)
	row("Traveler", name)
	row("Status", b.Status)
	row("Booked on", readableDate(b.CreatedAt))
	row("Generated", doc.GeneratedAt.Format("02 Jan 2006, 15:04"))
	pdf.Ln(4)

	// ── Stay or Flight ───────────────────────────────────────
	if r := b.Room; r != nil {
		sectionHeader("Stay")
		row("Hotel", r.Hotel.Name)
		row("Location", r.Hotel.Location)
		row("Room", fmt.Sprintf("%s (up to %d guests)", r.Type, r.Capacity))
		row("Guests", fmt.Sprint(b.NumberOfGuests))
		row("Check-in", readableDate(b.CheckInDate))
		row("Check-out", readableDate(b.CheckOutDate))
		row("Nightly rate", fmt.Sprintf("$%.2f", r.Price))
		pdf.Ln(4)
	}
	if t := b.Ticket; t != nil {
		f := t.Flight
		sectionHeader("Flight")
		row("Airline", f.Airline.Name)
		row("Route", fmt.Sprintf("%s -> %s", f.From, f.To))
		if f.DepartureAirport != "" || f.ArrivalAirport != "" {
			row("Airports", fmt.Sprintf("%s -> %s", f.DepartureAirport, f.ArrivalAirport))
		}
		row("Departure", readableDateTime(f.DepartureDate))
		row("Arrival", readableDateTime(f.ArrivalDate))
		row("Class", t.Class)
		row("Fare", fmt.Sprintf("$%.2f per ticket", t.Price))
		pdf.Ln(4)
	}

	// ── Price Summary ────────────────────────────────────────
	sectionHeader("Price")
	totals := doc.Totals()
	total := totals.Total
	if totals.OfferApplied {
		row("Offer", fmt.Sprintf("%s (%s)", doc.Offer.Name, offers.BadgeText(doc.Offer.DiscountValue)))
		row("Before discount", fmt.Sprintf("$%.2f", totals.Full))
		row("You save", fmt.Sprintf("$%.2f", totals.Savings))
	}
	if doc.Quantity > 1 {
		row("Tickets", fmt.Sprint(doc.Quantity))
	}

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.2f", total), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ───────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "JetStay - present this confirmation at check-in", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func readableDate(iso string) string {
	if len(iso) >= 10 {
		if t, err := time.Parse("2006-01-02", iso[:10]); err == nil {
			return t.Format("02 Jan 2006 (Mon)")
		}
	}
	if iso == "" {
		return "N/A"
	}
	return iso
}

func readableDateTime(iso string) string {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02 Jan 2006, 15:04")
		}
	}
	return readableDate(iso)
}
