package ics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"lunarcal/internal/calendar"
	appLog "lunarcal/internal/log"
	"lunarcal/internal/model"
)

// entry is one row of the fixed-date tables tagged with its kind.
type entry struct {
	calendar.FixedDate
	Kind model.ObservanceKind
}

// entries returns festivals followed by solar terms.
func entries() []entry {
	out := make([]entry, 0, 40)
	for _, f := range calendar.Festivals() {
		out = append(out, entry{FixedDate: f, Kind: model.KindFestival})
	}
	for _, st := range calendar.SolarTerms() {
		out = append(out, entry{FixedDate: st, Kind: model.KindSolarTerm})
	}
	return out
}

// yearlyRule is the RRULE value shared by expansion and the published feed.
func yearlyRule(fd calendar.FixedDate) string {
	return fmt.Sprintf("FREQ=YEARLY;BYMONTH=%d;BYMONTHDAY=%d", int(fd.Month), fd.Day)
}

// Observances returns every festival and solar-term anchor date within
// [from, to] (calendar dates, inclusive), sorted by date, then kind, then
// name. Each table entry is expanded as a yearly recurrence.
func Observances(from, to time.Time) ([]model.Observance, error) {
	start := calendar.DateOf(from)
	end := calendar.DateOf(to)
	if end.Before(start) {
		return nil, errors.New("observances: range end is before range start")
	}

	out := make([]model.Observance, 0)
	for _, e := range entries() {
		r, err := rrule.StrToRRule(yearlyRule(e.FixedDate))
		if err != nil {
			return nil, fmt.Errorf("observances: rule for %s: %w", e.Name, err)
		}
		r.DTStart(time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))

		for _, t := range r.Between(start, end, true) {
			out = append(out, model.Observance{
				Date: calendar.DateOf(t),
				Name: e.Name,
				Kind: e.Kind,
			})
		}
	}

	sortObservances(out)
	appLog.Debug("observances expanded",
		"from", start.Format(time.DateOnly),
		"to", end.Format(time.DateOnly),
		"count", len(out),
	)
	return out, nil
}

func sortObservances(obs []model.Observance) {
	sort.Slice(obs, func(i, j int) bool {
		a, b := obs[i], obs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Kind != b.Kind {
			return a.Kind == model.KindFestival
		}
		return a.Name < b.Name
	})
}
