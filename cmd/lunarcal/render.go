package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"lunarcal/internal/calendar"
	"lunarcal/internal/config"
	"lunarcal/internal/ics"
)

// parseDateArg accepts "now" or layout.
func parseDateArg(v, layout string, now time.Time) (time.Time, error) {
	if v == "now" {
		return now, nil
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s: %w", v, layout, err)
	}
	return t, nil
}

// printMonth writes a plain-text grid: a header, one line per week with
// day numbers (today in brackets, adjacent-month days dimmed with a dot),
// then the festivals and solar terms of the month.
func printMonth(w io.Writer, conf *config.Config, arg string, now time.Time) error {
	target, err := parseDateArg(arg, "2006-01", now)
	if err != nil {
		return err
	}

	g := calendar.BuildMonthGrid(target, now, time.Time{},
		calendar.WithWeekStart(conf.WeekStartDay()),
		calendar.WithPolicy(conf.Policy()),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "%d年%d月\n", g.Year, int(g.Month))
	for _, l := range calendar.WeekdayLabels(g.WeekStart) {
		fmt.Fprintf(&b, "  %s ", l)
	}
	b.WriteString("\n")

	var notes []string
	for _, row := range g.Rows() {
		for _, c := range row {
			switch {
			case c.IsToday:
				fmt.Fprintf(&b, "[%2d]", c.DayOfMonth)
			case !c.IsCurrentMonth:
				fmt.Fprintf(&b, " %2d.", c.DayOfMonth)
			default:
				fmt.Fprintf(&b, " %2d ", c.DayOfMonth)
			}
			if !c.IsCurrentMonth {
				continue
			}
			for _, label := range []string{c.Festival, c.SolarTerm} {
				if label != "" {
					notes = append(notes, fmt.Sprintf("%02d %s", c.DayOfMonth, label))
				}
			}
		}
		b.WriteString("\n")
	}
	for _, n := range notes {
		b.WriteString(n)
		b.WriteString("\n")
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func printDay(w io.Writer, arg string, now time.Time) error {
	date, err := parseDateArg(arg, time.DateOnly, now)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(calendar.BuildDayDetail(date))
}

func writeFeed(path string, conf *config.Config, now time.Time) error {
	body, err := ics.BuildFeed(ics.FeedOptions{
		Name:       conf.ICS.Name,
		AnchorYear: conf.ICS.AnchorYear,
		Now:        now,
	})
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(body)
		return err
	}
	return os.WriteFile(path, body, 0o644)
}
