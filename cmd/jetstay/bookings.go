package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/omarzydan610/JetStay-sub001/offers"
	"github.com/omarzydan610/JetStay-sub001/services"
)

func (a *app) bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking"},
		Short:   "List, book, cancel and print bookings",
	}

	list := func(use, short string, load func(*cobra.Command) ([]services.Booking, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				bookings, err := load(cmd)
				if err != nil {
					return err
				}
				return a.printBookings(bookings)
			},
		}
	}

	cmd.AddCommand(
		list("list", "Show every booking", func(cmd *cobra.Command) ([]services.Booking, error) {
			return a.client.BookingHistory(cmd.Context())
		}),
		list("upcoming", "Show bookings that have not started yet", func(cmd *cobra.Command) ([]services.Booking, error) {
			return a.client.UpcomingBookings(cmd.Context())
		}),
		a.cancelCmd(),
		a.bookCmd(),
		a.pdfCmd(),
	)
	return cmd
}

func (a *app) printBookings(bookings []services.Booking) error {
	if a.jsonOut {
		return printJSON(a.out, bookings)
	}
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "No bookings yet")
		return nil
	}
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{
			fmt.Sprint(b.ID),
			b.Type,
			bookingTitle(b),
			b.CheckInDate,
			b.Status,
			money(b.TotalPrice),
		})
	}
	return table(a.out, []string{"ID", "TYPE", "WHAT", "DATE", "STATUS", "TOTAL"}, rows)
}

func bookingTitle(b services.Booking) string {
	switch {
	case b.Room != nil:
		return b.Room.Hotel.Name + " (" + b.Room.Type + ")"
	case b.Ticket != nil:
		f := b.Ticket.Flight
		return f.Airline.Name + " " + f.From + " → " + f.To
	}
	return ""
}

func (a *app) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := positiveID(args[0])
			if err != nil {
				return err
			}
			env, err := a.client.CancelBooking(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, message(env, "Booking cancelled"))
			return nil
		},
	}
}

func (a *app) bookCmd() *cobra.Command {
	var req services.TicketBookingRequest
	var price float64
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book flight tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()

			var offer *offers.Offer
			if best, ok := offers.Best(a.client.PublicFlightOffers(ctx, req.FlightID), a.now()); ok {
				offer = &best
			}
			ids, err := a.client.BookTickets(ctx, req)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return printJSON(a.out, map[string]any{
					"ticketIds": ids,
					"offer":     offer,
					"total":     offers.TicketTotal(price, offer, req.Quantity),
				})
			}
			fmt.Fprintf(a.out, "Booked %d ticket(s): %s\n", len(ids), joinInts(ids))
			if offer != nil {
				fmt.Fprintf(a.out, "Offer applied: %s (%s)\n", offer.Name, offers.BadgeText(offer.DiscountValue))
			}
			if price > 0 {
				fmt.Fprintf(a.out, "Total: %s\n", money(offers.TicketTotal(price, offer, req.Quantity)))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&req.AirlineID, "airline", 0, "airline id")
	f.IntVar(&req.FlightID, "flight", 0, "flight id")
	f.IntVar(&req.TripTypeID, "trip-type", 0, "trip type id (class)")
	f.IntVar(&req.Quantity, "quantity", 1, "number of tickets (1-10)")
	f.Float64Var(&price, "price", 0, "ticket price, to show the total")
	return cmd
}

func (a *app) pdfCmd() *cobra.Command {
	var kind, traveler, out, offerName string
	var quantity int
	var discount float64
	cmd := &cobra.Command{
		Use:   "pdf <booking-id>",
		Short: "Save a booking confirmation as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := positiveID(args[0])
			if err != nil {
				return err
			}
			kind = strings.ToUpper(kind)
			if kind != "" && kind != services.HotelBooking && kind != services.FlightBooking {
				return fmt.Errorf("type must be %s or %s", services.HotelBooking, services.FlightBooking)
			}

			bookings, err := a.client.BookingHistory(cmd.Context())
			if err != nil {
				return err
			}
			var booking *services.Booking
			for i := range bookings {
				if bookings[i].ID == id && (kind == "" || bookings[i].Type == kind) {
					booking = &bookings[i]
					break
				}
			}
			if booking == nil {
				return fmt.Errorf("booking %d not found", id)
			}
			if quantity < 1 || quantity > 10 {
				return fmt.Errorf("quantity must be between 1 and 10")
			}
			var offer *offers.Offer
			if discount != 0 {
				if booking.Ticket == nil {
					return fmt.Errorf("offers apply to flight tickets only")
				}
				if discount < 0 || discount > 100 {
					return fmt.Errorf("discount must be between 0 and 100")
				}
				offer = &offers.Offer{Name: offerName, DiscountValue: discount}
			}

			if traveler == "" {
				if claims, err := a.client.Session(); err == nil {
					traveler = claims.Email()
				}
			}
			ref := strings.ToUpper(uuid.New().String()[:8])
			doc := services.BookingDocument{
				Reference:    ref,
				TravelerName: traveler,
				Booking:      *booking,
				Quantity:     quantity,
				Offer:        offer,
				GeneratedAt:  a.now(),
			}
			pdf, err := services.GenerateBookingPDF(doc)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("jetstay-booking-%d.pdf", id)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			fmt.Fprintf(a.out, "Saved %s (reference %s)\n", out, ref)
			if totals := doc.Totals(); totals.OfferApplied {
				fmt.Fprintf(a.out, "Total: %s (you save %s)\n", money(totals.Total), money(totals.Savings))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&kind, "type", "", "HOTEL or FLIGHT, when ids collide")
	f.StringVar(&traveler, "name", "", "traveller name (defaults to the account email)")
	f.StringVarP(&out, "output", "o", "", "output file")
	f.IntVar(&quantity, "quantity", 1, "tickets covered by the booking")
	f.StringVar(&offerName, "offer", "Offer", "name of the offer applied at booking")
	f.Float64Var(&discount, "discount", 0, "discount percentage of the offer applied at booking")
	return cmd
}

func positiveID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
