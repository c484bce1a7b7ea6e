// Package calendar computes month grids and per-day details for the
// lunar-labelled calendar views. Every function here is pure and safe for
// concurrent use; callers own any caching.
package calendar

import (
	"fmt"
	"time"

	"lunarcal/internal/model"
)

// Policy controls how many trailing cells pad the month.
type Policy string

const (
	// PolicyFixed always yields 42 cells (6 rows).
	PolicyFixed Policy = "fixed"
	// PolicyCompact yields the fewest full weeks covering the month (4-6 rows).
	PolicyCompact Policy = "compact"
)

// FixedCells is the grid length under PolicyFixed.
const FixedCells = 42

type options struct {
	weekStart time.Weekday
	policy    Policy
}

// Option customizes BuildMonthGrid.
type Option func(*options)

// WithWeekStart sets the weekday shown in the first column. Default Sunday.
func WithWeekStart(wd time.Weekday) Option {
	return func(o *options) {
		if wd >= time.Sunday && wd <= time.Saturday {
			o.weekStart = wd
		}
	}
}

// WithPolicy sets the trailing fill policy. Default PolicyFixed.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		if p == PolicyFixed || p == PolicyCompact {
			o.policy = p
		}
	}
}

// Grid is an ordered, row-major month grid.
type Grid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Policy    Policy
	Days      []model.CalendarDay
}

// BuildMonthGrid returns the grid for the month containing targetMonth.
//
// Only the year and month of targetMonth are used. today and selected are
// compared by calendar date, each read in its own location; a zero today
// means time.Now() and a zero selected marks nothing.
func BuildMonthGrid(targetMonth, today, selected time.Time, opts ...Option) Grid {
	o := options{weekStart: time.Sunday, policy: PolicyFixed}
	for _, fn := range opts {
		fn(&o)
	}
	if today.IsZero() {
		today = time.Now()
	}

	year, month, _ := targetMonth.Date()
	first := civil(year, month, 1)
	lead := mod(int(first.Weekday())-int(o.weekStart), 7)
	n := DaysInMonth(year, month)
	total := cellCount(lead+n, o.policy)

	if total%7 != 0 || total < lead+n {
		panic(fmt.Sprintf("calendar: inconsistent grid for %04d-%02d: lead=%d days=%d total=%d",
			year, month, lead, n, total))
	}

	start := first.AddDate(0, 0, -lead)
	days := make([]model.CalendarDay, 0, total)
	for i := 0; i < total; i++ {
		days = append(days, newDay(start.AddDate(0, 0, i), month, today, selected))
	}

	return Grid{
		Year:      year,
		Month:     month,
		WeekStart: o.weekStart,
		Policy:    o.policy,
		Days:      days,
	}
}

func cellCount(used int, p Policy) int {
	if p == PolicyCompact {
		return (used + 6) / 7 * 7
	}
	return FixedCells
}

func newDay(d time.Time, displayed time.Month, today, selected time.Time) model.CalendarDay {
	_, m, dd := d.Date()
	wd := d.Weekday()

	cell := model.CalendarDay{
		Date:            d,
		DayOfMonth:      dd,
		Weekday:         wd,
		IsCurrentMonth:  m == displayed,
		IsWeekend:       wd == time.Saturday || wd == time.Sunday,
		LunarDayLabel:   LunarDayLabel(dd),
		LunarMonthLabel: LunarMonthLabel(m),
	}
	cell.IsToday = cell.SameDate(today)
	cell.IsSelected = !selected.IsZero() && cell.SameDate(selected)
	cell.Festival, _ = Festival(m, dd)
	cell.SolarTerm, _ = SolarTerm(m, dd)
	return cell
}

// Rows splits the grid into weeks of seven cells.
func (g Grid) Rows() [][]model.CalendarDay {
	rows := make([][]model.CalendarDay, 0, len(g.Days)/7)
	for i := 0; i+7 <= len(g.Days); i += 7 {
		rows = append(rows, g.Days[i:i+7])
	}
	return rows
}

// Today returns the cell flagged as today, if the grid shows it.
func (g Grid) Today() (model.CalendarDay, bool) {
	for _, d := range g.Days {
		if d.IsToday {
			return d, true
		}
	}
	return model.CalendarDay{}, false
}

// WithSelected returns a copy of the grid with the selection overlay moved
// to selected. The receiver is left untouched.
func (g Grid) WithSelected(selected time.Time) Grid {
	days := make([]model.CalendarDay, len(g.Days))
	for i, d := range g.Days {
		d.IsSelected = !selected.IsZero() && d.SameDate(selected)
		days[i] = d
	}
	g.Days = days
	return g
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ShiftMonth returns the first day of the month n months away from t.
// Day overflow (Jan 31 + 1 month) cannot occur because the day is pinned
// to 1 before shifting.
func ShiftMonth(t time.Time, n int) time.Time {
	y, m, _ := t.Date()
	return civil(y, m+time.Month(n), 1)
}

// DateOf returns midnight UTC of t's calendar date in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return civil(y, m, d)
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
