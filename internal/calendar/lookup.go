package calendar

import "time"

// LunarDayLabel maps a Gregorian day of month onto the 30-entry lunar day
// cycle. The mapping is positional only.
func LunarDayLabel(day int) string {
	return lunarDays[mod(day-1, len(lunarDays))]
}

// LunarMonthLabel maps a Gregorian month onto the 12 lunar month names.
func LunarMonthLabel(month time.Month) string {
	return lunarMonths[mod(int(month)-1, len(lunarMonths))]
}

// Festival returns the fixed festival that falls exactly on month/day.
func Festival(month time.Month, day int) (string, bool) {
	for _, f := range festivals {
		if f.Month == month && f.Day == day {
			return f.Name, true
		}
	}
	return "", false
}

// SolarTerm returns the solar term whose anchor lies within one day of
// month/day. Anchors never cross a month boundary, so only the same month
// is considered.
func SolarTerm(month time.Month, day int) (string, bool) {
	for _, st := range solarTerms {
		if st.Month != month {
			continue
		}
		if diff := day - st.Day; diff >= -1 && diff <= 1 {
			return st.Name, true
		}
	}
	return "", false
}

// Zodiac returns the animal for year, with 1900 as the year of the rat.
func Zodiac(year int) string {
	return zodiacs[mod(year-1900, len(zodiacs))]
}

// GanZhi returns the stem-branch name of year, e.g. 2024 -> "甲辰".
func GanZhi(year int) string {
	return heavenlyStems[mod(year-4, len(heavenlyStems))] +
		earthlyBranches[mod(year-4, len(earthlyBranches))]
}

// Suitable returns the six "suitable" activities shown for a day of month.
func Suitable(day int) []string {
	return window(suitableActivities, day)
}

// Avoid returns the six activities to avoid for a day of month.
func Avoid(day int) []string {
	return window(avoidActivities, day)
}

// Motivation returns the motivational line for a day of month.
func Motivation(day int) string {
	return motivations[mod(day, len(motivations))]
}

// WeekdayLabels returns the seven column headers starting at weekStart.
func WeekdayLabels(weekStart time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = weekdayLabels[(int(weekStart)+i)%7]
	}
	return out
}

func window(list []string, day int) []string {
	start := mod(day, len(list)-activityWindow)
	out := make([]string, activityWindow)
	copy(out, list[start:start+activityWindow])
	return out
}

// mod is the Euclidean remainder, always in [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
