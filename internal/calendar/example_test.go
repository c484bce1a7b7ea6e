package calendar_test

import (
	"fmt"
	"time"

	"lunarcal/internal/calendar"
)

func ExampleBuildMonthGrid() {
	month := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.October, 17, 0, 0, 0, 0, time.UTC)

	g := calendar.BuildMonthGrid(month, today, time.Time{})
	cell, _ := g.Today()
	fmt.Println(len(g.Days), len(g.Rows()))
	fmt.Println(g.Days[0].Date.Format("2006-01-02"))
	fmt.Println(cell.DayOfMonth, cell.LunarMonthLabel+cell.LunarDayLabel)
	// Output:
	// 42 6
	// 2024-09-29
	// 17 十月十七
}

func ExampleBuildDayDetail() {
	detail := calendar.BuildDayDetail(time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC))
	fmt.Println(detail.LunarDate, detail.GanZhi, detail.Zodiac, detail.Festival)
	// Output: 十月初一 甲辰 龙 国庆节
}
