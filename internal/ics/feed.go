package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "lunarcal/internal/log"
)

const productID = "-//lunarcal//observances//ZH"

// FeedOptions controls BuildFeed.
type FeedOptions struct {
	// Name is written as X-WR-CALNAME.
	Name string
	// AnchorYear is the year of each event's first DTSTART. Zero uses the
	// year of Now.
	AnchorYear int
	// Now stamps DTSTAMP. Zero uses time.Now().
	Now time.Time
}

// BuildFeed returns an iCalendar document with one all-day yearly event
// per festival and solar-term anchor. UIDs are stable across builds so
// subscribers update in place.
func BuildFeed(opts FeedOptions) ([]byte, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	year := opts.AnchorYear
	if year == 0 {
		year = now.Year()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	all := entries()
	for _, e := range all {
		start := time.Date(year, e.Month, e.Day, 0, 0, 0, 0, time.UTC)
		ev := cal.AddEvent(eventUID(e))
		ev.SetDtStampTime(now.UTC())
		ev.SetSummary(e.Name)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		ev.SetProperty(ical.ComponentPropertyRrule, yearlyRule(e.FixedDate))
		ev.SetProperty(ical.ComponentPropertyCategories, string(e.Kind))
	}

	appLog.Debug("ics feed built", "events", len(all), "anchor_year", year)
	return []byte(cal.Serialize()), nil
}

func eventUID(e entry) string {
	return fmt.Sprintf("%s-%02d%02d@lunarcal", e.Kind, int(e.Month), e.Day)
}
