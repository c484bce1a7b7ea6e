package calendar

import (
	"time"

	"lunarcal/internal/model"
)

// BuildDayDetail derives the detail panel contents for date.
func BuildDayDetail(date time.Time) model.DayDetail {
	year, month, day := date.Date()

	detail := model.DayDetail{
		Date:       civil(year, month, day),
		LunarDate:  LunarMonthLabel(month) + LunarDayLabel(day),
		Zodiac:     Zodiac(year),
		GanZhi:     GanZhi(year),
		Suitable:   Suitable(day),
		Avoid:      Avoid(day),
		Motivation: Motivation(day),
	}
	detail.Festival, _ = Festival(month, day)
	detail.SolarTerm, _ = SolarTerm(month, day)
	return detail
}
