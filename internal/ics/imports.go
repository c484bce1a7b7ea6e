package ics

import (
	"fmt"
	"os"
	"time"

	appLog "lunarcal/internal/log"
	"lunarcal/internal/model"
)

// LoadImports reads each local iCalendar file and returns its observances
// within [from, to], merged and sorted. A file that cannot be read or
// parsed is logged and reported in the error slice; the rest still load.
func LoadImports(paths []string, from, to time.Time) ([]model.Observance, []error) {
	lists := make([][]model.Observance, 0, len(paths))
	var errs []error
	for _, p := range paths {
		body, err := os.ReadFile(p)
		if err != nil {
			appLog.Error("ics import read failed", err, "path", p)
			errs = append(errs, fmt.Errorf("import %s: %w", p, err))
			continue
		}
		obs, err := ParseFeed(body, from, to)
		if err != nil {
			appLog.Error("ics import parse failed", err, "path", p)
			errs = append(errs, fmt.Errorf("import %s: %w", p, err))
			continue
		}
		appLog.Debug("ics import loaded", "path", p, "count", len(obs))
		lists = append(lists, obs)
	}
	return Merge(lists...), errs
}

// Merge concatenates observance lists, sorts them by date, kind and name,
// and drops exact duplicates.
func Merge(lists ...[]model.Observance) []model.Observance {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	all := make([]model.Observance, 0, n)
	for _, l := range lists {
		all = append(all, l...)
	}
	sortObservances(all)

	out := all[:0]
	for i, o := range all {
		if i > 0 {
			prev := out[len(out)-1]
			if prev.Date.Equal(o.Date) && prev.Name == o.Name && prev.Kind == o.Kind {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}
