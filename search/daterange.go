package search

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/omarzydan610/JetStay-sub001/validate"
)

var ErrInvalidRange = errors.New("start date must be before end date")

// DateRange is an inclusive pair of YYYY-MM-DD calendar days.
type DateRange struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// FormatDate renders t as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(validate.DateLayout)
}

// ParseDate reads a YYYY-MM-DD day in the local time zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(validate.DateLayout, s, time.Local)
}

// DefaultRange covers the last 30 days up to and including today.
func DefaultRange(now time.Time) DateRange {
	return DateRange{Start: FormatDate(now.AddDate(0, 0, -30)), End: FormatDate(now)}
}

// Yesterday is the single day before today.
func Yesterday(now time.Time) DateRange {
	d := FormatDate(now.AddDate(0, 0, -1))
	return DateRange{Start: d, End: d}
}

type Preset struct {
	Label string `json:"label"`
	Days  int    `json:"days"`
}

// Presets are the quick selections offered next to the calendar.
var Presets = []Preset{
	{Label: "Last day", Days: 0},
	{Label: "Last 7 days", Days: 6},
	{Label: "Last 30 days", Days: 29},
	{Label: "Last 90 days", Days: 89},
}

// LastDays returns [today-days, today].
func LastDays(now time.Time, days int) DateRange {
	return DateRange{Start: FormatDate(now.AddDate(0, 0, -days)), End: FormatDate(now)}
}

func (r DateRange) Validate() error {
	if !validate.Date(r.Start) || !validate.Date(r.End) {
		return fmt.Errorf("dates must be YYYY-MM-DD: %q, %q", r.Start, r.End)
	}
	// the layout sorts lexically
	if r.Start > r.End {
		return ErrInvalidRange
	}
	return nil
}

// Label renders the range as "Jan 2 - Feb 3".
func (r DateRange) Label() string {
	s, err1 := ParseDate(r.Start)
	e, err2 := ParseDate(r.End)
	if err1 != nil || err2 != nil {
		return r.Start + " - " + r.End
	}
	return s.Format("Jan 2") + " - " + e.Format("Jan 2")
}

// Contains reports whether day (YYYY-MM-DD) lies inside the range.
func (r DateRange) Contains(day string) bool {
	return day >= r.Start && day <= r.End
}

func (r DateRange) Query() url.Values {
	q := url.Values{}
	q.Set("startDate", r.Start)
	q.Set("endDate", r.End)
	return q
}

// RangePicker is the two click calendar selection. Temp holds the selection
// in progress and Committed the last applied range.
type RangePicker struct {
	Committed DateRange
	Temp      DateRange
}

func NewRangePicker(initial DateRange) *RangePicker {
	return &RangePicker{Committed: initial, Temp: initial}
}

// Click selects day. The first click starts a selection, the second ends it
// and swaps the two when day precedes the start.
func (p *RangePicker) Click(day string) {
	switch {
	case p.Temp.Start == "" || p.Temp.End != "":
		p.Temp = DateRange{Start: day}
	case day < p.Temp.Start:
		p.Temp = DateRange{Start: day, End: p.Temp.Start}
	default:
		p.Temp.End = day
	}
}

// Preset commits the preset range immediately.
func (p *RangePicker) Preset(now time.Time, days int) DateRange {
	p.Committed = LastDays(now, days)
	p.Temp = p.Committed
	return p.Committed
}

// Apply commits the selection in progress.
func (p *RangePicker) Apply() (DateRange, error) {
	if p.Temp.End == "" {
		p.Temp.End = p.Temp.Start
	}
	if err := p.Temp.Validate(); err != nil {
		return p.Committed, err
	}
	p.Committed = p.Temp
	return p.Committed, nil
}

// Cancel drops the selection in progress.
func (p *RangePicker) Cancel() {
	p.Temp = p.Committed
}

// InRange is used to highlight calendar cells.
func (p *RangePicker) InRange(day string) bool {
	if p.Temp.Start == "" {
		return false
	}
	if p.Temp.End == "" {
		return day == p.Temp.Start
	}
	return p.Temp.Contains(day)
}

type CalendarDay struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"inMonth"`
}

// CalendarCells is the fixed size of a month grid (six weeks).
const CalendarCells = 42

// CalendarMonth lays out the month containing m as a Sunday first grid padded
// with days from the neighbouring months.
func CalendarMonth(m time.Time) []CalendarDay {
	first := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, m.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]CalendarDay, 0, CalendarCells)
	for i := 0; i < CalendarCells; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, CalendarDay{
			Date:    FormatDate(d),
			Day:     d.Day(),
			InMonth: d.Month() == first.Month(),
		})
	}
	return days
}
