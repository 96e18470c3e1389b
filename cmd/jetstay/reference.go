package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omarzydan610/JetStay-sub001/services"
)

// referenceCmds are the flight form pickers: countries, cities, airports and
// ticket types.
func (a *app) referenceCmds() []*cobra.Command {
	countries := &cobra.Command{
		Use:   "countries",
		Short: "List countries with airports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.Countries(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, list)
			}
			rows := make([][]string, 0, len(list))
			for _, c := range list {
				rows = append(rows, []string{c.Name, c.Code})
			}
			return table(a.out, []string{"COUNTRY", "CODE"}, rows)
		},
	}

	var cityCountry string
	cities := &cobra.Command{
		Use:   "cities",
		Short: "List the cities of a country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.Cities(cmd.Context(), cityCountry)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, list)
			}
			for _, c := range list {
				fmt.Fprintln(a.out, c.Name)
			}
			return nil
		},
	}
	cities.Flags().StringVar(&cityCountry, "country", "", "country name")
	_ = cities.MarkFlagRequired("country")

	var airportCountry, airportCity string
	airports := &cobra.Command{
		Use:   "airports",
		Short: "List the airports of a city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.Airports(cmd.Context(), airportCountry, airportCity)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, list)
			}
			rows := make([][]string, 0, len(list))
			for _, ap := range list {
				rows = append(rows, []string{fmt.Sprint(ap.AirportID), ap.AirportCode, ap.AirportName})
			}
			return table(a.out, []string{"ID", "CODE", "AIRPORT"}, rows)
		},
	}
	airports.Flags().StringVar(&airportCountry, "country", "", "country name")
	airports.Flags().StringVar(&airportCity, "city", "", "city name")
	_ = airports.MarkFlagRequired("country")
	_ = airports.MarkFlagRequired("city")

	ticketTypes := &cobra.Command{
		Use:   "ticket-types",
		Short: "List the ticket classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.TicketTypes(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, list)
			}
			for _, t := range list {
				fmt.Fprintln(a.out, t)
			}
			return nil
		},
	}

	return []*cobra.Command{countries, cities, airports, ticketTypes}
}

// partnersCmd lists the ids to pass to monitor --hotel and --airline.
func (a *app) partnersCmd(use, short string, load func(*services.Client, *cobra.Command) ([]services.Partner, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := load(a.client, cmd)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, list)
			}
			rows := make([][]string, 0, len(list))
			for _, p := range list {
				rows = append(rows, []string{fmt.Sprint(p.ID), p.Name})
			}
			return table(a.out, []string{"ID", "NAME"}, rows)
		},
	}
}
