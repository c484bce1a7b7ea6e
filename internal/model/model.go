package model

import "time"

// CalendarDay is a single cell of a month grid. Date carries no time-of-day
// meaning; it is always midnight UTC of the calendar date it names.
type CalendarDay struct {
	Date       time.Time    `json:"date"`
	DayOfMonth int          `json:"day"`
	Weekday    time.Weekday `json:"weekday"`

	IsCurrentMonth bool `json:"is_current_month"`
	IsToday        bool `json:"is_today"`
	IsSelected     bool `json:"is_selected"`
	IsWeekend      bool `json:"is_weekend"`

	// Cyclic decorative labels, not an astronomical lunar date.
	LunarDayLabel   string `json:"lunar_day"`
	LunarMonthLabel string `json:"lunar_month"`

	// Empty when the date has no entry in the respective table.
	Festival  string `json:"festival,omitempty"`
	SolarTerm string `json:"solar_term,omitempty"`
}

// SameDate reports whether the cell falls on the calendar date of t,
// read in t's own location.
func (d CalendarDay) SameDate(t time.Time) bool {
	y, m, dd := t.Date()
	cy, cm, cd := d.Date.Date()
	return y == cy && m == cm && dd == cd
}

// DayDetail is the derived information shown for a selected date.
type DayDetail struct {
	Date       time.Time `json:"date"`
	LunarDate  string    `json:"lunar_date"`
	Zodiac     string    `json:"zodiac"`
	GanZhi     string    `json:"ganzhi"`
	Suitable   []string  `json:"suitable"`
	Avoid      []string  `json:"avoid"`
	Motivation string    `json:"motivation"`

	Festival  string `json:"festival,omitempty"`
	SolarTerm string `json:"solar_term,omitempty"`
}

// ObservanceKind distinguishes the two fixed-date tables.
type ObservanceKind string

const (
	KindFestival  ObservanceKind = "festival"
	KindSolarTerm ObservanceKind = "solar_term"
)

// Observance is one concrete occurrence of a festival or solar term
// anchor on a specific date.
type Observance struct {
	Date time.Time      `json:"date"`
	Name string         `json:"name"`
	Kind ObservanceKind `json:"kind"`
}
