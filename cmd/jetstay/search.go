package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omarzydan610/JetStay-sub001/search"
)

func (a *app) flightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Browse flights",
	}

	form := search.NewFlightForm()
	pager := search.NewPager()
	find := &cobra.Command{
		Use:   "search",
		Short: "Search flights by route, date and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := form.Validate(); !errs.OK() {
				return formError(errs)
			}
			filter, err := form.Filter()
			if err != nil {
				return err
			}
			p := pager.Normalize()
			page, err := a.client.SearchFlights(cmd.Context(), filter, p.Page, p.Size)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, page)
			}
			if len(page.Flights) == 0 {
				fmt.Fprintln(a.out, "No flights match your search")
				return nil
			}

			rows := make([][]string, 0, len(page.Flights))
			for _, f := range page.Flights {
				rows = append(rows, []string{
					fmt.Sprint(f.FlightID),
					f.Airline.AirlineName,
					search.AirportCode(f.DepartureAirport.AirportName) + " → " + search.AirportCode(f.ArrivalAirport.AirportName),
					f.DepartureDate,
					search.FlightDuration(f.DepartureDate, f.ArrivalDate),
					f.Status,
					money(f.LowestPrice()),
				})
			}
			if err := table(a.out, []string{"ID", "AIRLINE", "ROUTE", "DEPARTS", "DURATION", "STATUS", "FROM"}, rows); err != nil {
				return err
			}
			if page.TotalPages > 0 {
				fmt.Fprintf(a.out, "\nPage %d of %d\n", p.Page+1, page.TotalPages)
			}
			return nil
		},
	}
	f := find.Flags()
	f.StringVar(&form.AirlineNameContains, "airline", "", "airline name contains")
	f.StringVar(&form.DepartureCityContains, "from", "", "departure city contains")
	f.StringVar(&form.ArrivalCityContains, "to", "", "arrival city contains")
	f.StringVar(&form.DepartureCountryContains, "from-country", "", "departure country contains")
	f.StringVar(&form.ArrivalCountryContains, "to-country", "", "arrival country contains")
	f.StringVar(&form.DepartureDateGte, "date", "", "earliest departure day (YYYY-MM-DD)")
	f.StringVar(&form.TripTypePrice, "price", form.TripTypePrice, "target ticket price")
	f.IntVar(&pager.Page, "page", 0, "page number, from 0")
	f.IntVar(&pager.Size, "size", search.PageSize, "results per page")

	cmd.AddCommand(find)
	cmd.AddCommand(a.referenceCmds()...)
	return cmd
}

func (a *app) hotelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotels",
		Short: "Browse hotels",
	}

	form := search.NewHotelForm()
	pager := search.NewPager()
	find := &cobra.Command{
		Use:   "search",
		Short: "Search hotels by place, rating and room price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := form.Validate(); !errs.OK() {
				return formError(errs)
			}
			filter, err := form.Filter()
			if err != nil {
				return err
			}
			p := pager.Normalize()
			rooms, err := a.client.SearchRooms(cmd.Context(), filter, p.Page, p.Size)
			if err != nil {
				return err
			}
			hotels := search.MergeRooms(rooms)
			if a.jsonOut {
				return printJSON(a.out, hotels)
			}
			if len(hotels) == 0 {
				fmt.Fprintln(a.out, "No hotels match your search")
				return nil
			}

			rows := make([][]string, 0, len(hotels))
			for _, h := range hotels {
				rows = append(rows, []string{
					fmt.Sprint(h.HotelID),
					h.HotelName,
					h.City + ", " + h.Country,
					fmt.Sprintf("%.1f", h.HotelRate),
					fmt.Sprint(len(h.RoomTypes)),
					money(h.LowestPrice()),
				})
			}
			return table(a.out, []string{"ID", "HOTEL", "LOCATION", "RATING", "ROOMS", "FROM"}, rows)
		},
	}
	f := find.Flags()
	f.StringVar(&form.HotelNameContains, "name", "", "hotel name contains")
	f.StringVar(&form.CityContains, "city", "", "city contains")
	f.StringVar(&form.CountryContains, "country", "", "country contains")
	f.StringVar(&form.HotelRating, "rating", "", "minimum rating (0-5)")
	f.StringVar(&form.RoomTypePrice, "price", form.RoomTypePrice, "target room price")
	f.StringVar(&form.RoomTypeContains, "room", "", "room type contains")
	f.IntVar(&pager.Page, "page", 0, "page number, from 0")
	f.IntVar(&pager.Size, "size", search.PageSize, "results per page")

	cmd.AddCommand(find)
	return cmd
}
