package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omarzydan610/JetStay-sub001/monitoring"
	"github.com/omarzydan610/JetStay-sub001/search"
	"github.com/omarzydan610/JetStay-sub001/services"
)

func (a *app) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Platform administration",
	}
	cmd.AddCommand(
		a.monitorCmd(),
		a.statusCmd(),
		a.partnersCmd("hotels", "List hotel ids for monitor --hotel", func(c *services.Client, cmd *cobra.Command) ([]services.Partner, error) {
			return c.AdminHotels(cmd.Context())
		}),
		a.partnersCmd("airlines", "List airline ids for monitor --airline", func(c *services.Client, cmd *cobra.Command) ([]services.Partner, error) {
			return c.AdminAirlines(cmd.Context())
		}),
	)
	return cmd
}

// rangeFlags is the --from/--to/--last trio shared by the monitor commands.
type rangeFlags struct {
	from, to string
	last     int
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.last, "last", 0, "cover the last N days instead of --from/--to")
}

// resolve defaults to the last 30 days when no range is given.
func (f *rangeFlags) resolve(a *app) (search.DateRange, error) {
	now := a.now()
	switch {
	case f.last > 0:
		return search.LastDays(now, f.last-1), nil
	case f.from == "" && f.to == "":
		return search.DefaultRange(now), nil
	}
	r := search.DateRange{Start: f.from, End: f.to}
	if r.End == "" {
		r.End = search.FormatDate(now)
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

func (a *app) monitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Booking and ticket activity for a date range",
	}

	var bookingRange rangeFlags
	var hotelID int
	bookings := &cobra.Command{
		Use:   "bookings",
		Short: "Hotel booking activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := bookingRange.resolve(a)
			if err != nil {
				return err
			}
			data, err := a.client.MonitorBookings(cmd.Context(), r, hotelID)
			if err != nil {
				return err
			}
			charts := monitoring.NewBookingCharts(data)
			if a.jsonOut {
				return printJSON(a.out, map[string]any{"range": r, "data": data, "charts": charts})
			}

			fmt.Fprintf(a.out, "Bookings %s\n\n", r.Label())
			if err := table(a.out, []string{"METRIC", "VALUE"}, [][]string{
				{"Bookings", fmt.Sprint(data.TotalBookings)},
				{"Revenue", money(data.TotalRevenue)},
				{"Average revenue", money(charts.AverageRevenue)},
				{"Average guests", fmt.Sprintf("%.2f", charts.AverageGuests)},
				{"Paid", fmt.Sprintf("%.1f%%", charts.PaidRate)},
			}); err != nil {
				return err
			}
			return a.printSeries("By status", charts.Status, "By hotel revenue", charts.HotelRevenue)
		},
	}
	bookingRange.register(bookings)
	bookings.Flags().IntVar(&hotelID, "hotel", 0, "limit to one hotel")

	var flightRange rangeFlags
	var airlineID int
	flights := &cobra.Command{
		Use:   "flights",
		Short: "Flight ticket activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := flightRange.resolve(a)
			if err != nil {
				return err
			}
			data, err := a.client.MonitorFlights(cmd.Context(), r, airlineID)
			if err != nil {
				return err
			}
			charts := monitoring.NewFlightCharts(data)
			if a.jsonOut {
				return printJSON(a.out, map[string]any{"range": r, "data": data, "charts": charts})
			}

			fmt.Fprintf(a.out, "Tickets %s\n\n", r.Label())
			if err := table(a.out, []string{"METRIC", "VALUE"}, [][]string{
				{"Tickets", fmt.Sprint(data.TotalTickets)},
				{"Revenue", money(data.TotalRevenue)},
				{"Average revenue", money(charts.AverageRevenue)},
				{"Paid", fmt.Sprintf("%.1f%%", charts.PaidRate)},
			}); err != nil {
				return err
			}
			return a.printSeries("Flights by status", charts.FlightStatus, "By airline revenue", charts.AirlineRevenue)
		},
	}
	flightRange.register(flights)
	flights.Flags().IntVar(&airlineID, "airline", 0, "limit to one airline")

	cmd.AddCommand(bookings, flights)
	return cmd
}

// printSeries prints two chart series, skipping empty ones.
func (a *app) printSeries(title1 string, s1 []monitoring.ChartPoint, title2 string, s2 []monitoring.ChartPoint) error {
	for _, s := range []struct {
		title  string
		points []monitoring.ChartPoint
	}{{title1, s1}, {title2, s2}} {
		if len(s.points) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "\n%s\n", s.title)
		rows := make([][]string, 0, len(s.points))
		for _, p := range s.points {
			rows = append(rows, []string{p.Name, trimValue(p.Value), fmt.Sprintf("%.1f%%", p.Percent)})
		}
		if err := table(a.out, []string{"NAME", "VALUE", "SHARE"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func trimValue(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func (a *app) statusCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "status <user|airline|hotel> <id> <activate|deactivate>",
		Short: "Activate or deactivate an account",
		Long:  "Users are addressed by email, airlines and hotels by numeric id.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := services.AccountKind(strings.ToLower(args[0]))
			switch kind {
			case services.UserAccount, services.AirlineAccount, services.HotelAccount:
			default:
				return fmt.Errorf("unknown account kind %q", args[0])
			}

			var active bool
			switch strings.ToLower(args[2]) {
			case "activate":
				active = true
			case "deactivate":
			default:
				return fmt.Errorf("action must be activate or deactivate, got %q", args[2])
			}

			env, err := a.client.SetAccountStatus(cmd.Context(), kind, args[1], active, reason)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, message(env, "Status updated"))
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "why the account is deactivated")
	return cmd
}
