package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var parenCode = regexp.MustCompile(`\(([^)]+)\)`)

// AirportCode extracts "CAI" from "Cairo International (CAI)". Names without a
// code fall back to their first three letters.
func AirportCode(name string) string {
	if name == "" {
		return "---"
	}
	if m := parenCode.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if len(name) > 3 {
		name = name[:3]
	}
	return strings.ToUpper(name)
}

// API timestamps come without a zone.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// FlightDuration formats the time between departure and arrival as "5h 07m".
func FlightDuration(departure, arrival string) string {
	dep, err1 := parseTimestamp(departure)
	arr, err2 := parseTimestamp(arrival)
	if err1 != nil || err2 != nil {
		return "N/A"
	}
	d := arr.Sub(dep)
	return fmt.Sprintf("%dh %02dm", int(d.Hours()), int(d.Minutes())%60)
}

// FlightTime renders a timestamp as "Jan 2, 2006 at 15:04", or returns it
// unchanged when it cannot be parsed.
func FlightTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		return ts
	}
	return t.Format("Jan 2, 2006 at 15:04")
}
