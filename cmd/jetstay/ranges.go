package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarzydan610/JetStay-sub001/search"
)

func (a *app) rangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Date range helpers for the monitor commands",
	}

	presets := &cobra.Command{
		Use:   "presets",
		Short: "Show the quick date range selections",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			now := a.now()
			labels := make([]string, 0, len(search.Presets)+1)
			ranges := make([]search.DateRange, 0, len(search.Presets)+1)
			for _, p := range search.Presets {
				labels = append(labels, p.Label)
				ranges = append(ranges, search.LastDays(now, p.Days))
			}
			labels = append(labels, "Default")
			ranges = append(ranges, search.DefaultRange(now))

			if a.jsonOut {
				out := make(map[string]search.DateRange, len(labels))
				for i, l := range labels {
					out[l] = ranges[i]
				}
				return printJSON(a.out, out)
			}
			rows := make([][]string, 0, len(labels))
			for i, r := range ranges {
				rows = append(rows, []string{labels[i], r.Start, r.End, r.Label()})
			}
			return table(a.out, []string{"PRESET", "FROM", "TO", "LABEL"}, rows)
		},
	}

	var month string
	var sel rangeFlags
	calendar := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month with the selected range marked",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			m := a.now()
			if month != "" {
				t, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("month must be YYYY-MM, got %q", month)
				}
				m = t
			}

			picker := search.NewRangePicker(search.DateRange{})
			if sel.from != "" {
				picker.Click(sel.from)
				if sel.to != "" {
					picker.Click(sel.to)
				}
			}

			fmt.Fprintf(a.out, "%s\n", m.Format("January 2006"))
			fmt.Fprintln(a.out, " Su  Mo  Tu  We  Th  Fr  Sa")
			var line strings.Builder
			for i, d := range search.CalendarMonth(m) {
				cell := "    "
				switch {
				case d.InMonth && picker.InRange(d.Date):
					cell = fmt.Sprintf("[%2d]", d.Day)
				case d.InMonth:
					cell = fmt.Sprintf(" %2d ", d.Day)
				}
				line.WriteString(cell)
				if i%7 == 6 {
					fmt.Fprintln(a.out, strings.TrimRight(line.String(), " "))
					line.Reset()
				}
			}
			return nil
		},
	}
	calendar.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM, default current)")
	calendar.Flags().StringVar(&sel.from, "from", "", "first selected day")
	calendar.Flags().StringVar(&sel.to, "to", "", "second selected day")

	cmd.AddCommand(presets, calendar)
	return cmd
}
