package ics

import (
	"bytes"
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"lunarcal/internal/calendar"
	appLog "lunarcal/internal/log"
	"lunarcal/internal/model"
)

// ParseFeed reads an iCalendar payload of all-day observance events and
// returns their occurrences within [from, to]. Events carrying an RRULE are
// expanded; events without one contribute their DTSTART if in range.
// Malformed events are logged and skipped.
func ParseFeed(body []byte, from, to time.Time) ([]model.Observance, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	start := calendar.DateOf(from)
	end := calendar.DateOf(to)
	if end.Before(start) {
		return nil, errors.New("parse: range end is before range start")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	out := make([]model.Observance, 0)
	for _, ev := range cal.Events() {
		obs, perr := expandVEvent(ev, start, end)
		if perr != nil {
			appLog.Error("ics vevent skipped", perr, "uid", propValue(ev, ical.ComponentPropertyUniqueId))
			continue
		}
		out = append(out, obs...)
	}

	sortObservances(out)
	return out, nil
}

func expandVEvent(ev *ical.VEvent, start, end time.Time) ([]model.Observance, error) {
	name := propValue(ev, ical.ComponentPropertySummary)
	if name == "" {
		return nil, errors.New("missing SUMMARY")
	}

	kind := model.KindFestival
	if propValue(ev, ical.ComponentPropertyCategories) == string(model.KindSolarTerm) {
		kind = model.KindSolarTerm
	}

	dtstart, err := ev.GetAllDayStartAt()
	if err != nil {
		return nil, err
	}
	// Date-only values carry no zone; pin them to the calendar date.
	dtstart = calendar.DateOf(dtstart)

	var dates []time.Time
	if raw := propValue(ev, ical.ComponentPropertyRrule); raw != "" {
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, err
		}
		r.DTStart(dtstart)
		dates = r.Between(start, end, true)
	} else if !dtstart.Before(start) && !dtstart.After(end) {
		dates = []time.Time{dtstart}
	}

	out := make([]model.Observance, 0, len(dates))
	for _, t := range dates {
		out = append(out, model.Observance{Date: calendar.DateOf(t), Name: name, Kind: kind})
	}
	return out, nil
}

func propValue(ev *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ev.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}
