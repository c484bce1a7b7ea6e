package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFestival(t *testing.T) {
	t.Parallel()

	tests := []struct {
		month time.Month
		day   int
		want  string
		ok    bool
	}{
		{time.October, 1, "国庆节", true},
		{time.January, 1, "元旦", true},
		{time.December, 25, "圣诞节", true},
		{time.September, 10, "教师节", true},
		{time.June, 15, "", false},
		{time.October, 2, "", false},
	}
	for _, tt := range tests {
		got, ok := Festival(tt.month, tt.day)
		assert.Equal(t, tt.ok, ok, "%s %d", tt.month, tt.day)
		assert.Equal(t, tt.want, got, "%s %d", tt.month, tt.day)
	}
}

func TestSolarTerm_Tolerance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		month time.Month
		day   int
		want  string
	}{
		{"anchor", time.January, 6, "小寒"},
		{"one before", time.January, 5, "小寒"},
		{"one after", time.January, 7, "小寒"},
		{"two after", time.January, 8, ""},
		{"two before", time.January, 4, ""},
		{"spring equinox eve", time.March, 20, "春分"},
		{"winter solstice", time.December, 22, "冬至"},
		{"same day in another month", time.February, 6, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SolarTerm(tt.month, tt.day)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTablesSize(t *testing.T) {
	t.Parallel()

	assert.Len(t, lunarDays, 30)
	assert.Len(t, lunarMonths, 12)
	assert.Len(t, Festivals(), 13)
	assert.Len(t, SolarTerms(), 24)
	assert.Len(t, suitableActivities, 23)
	assert.Len(t, avoidActivities, 22)
	assert.Len(t, motivations, 10)
}

func TestTablesAreCopies(t *testing.T) {
	t.Parallel()

	f := Festivals()
	f[0].Name = "changed"
	name, _ := Festival(time.January, 1)
	assert.Equal(t, "元旦", name)
}

func TestLunarLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "初一", LunarDayLabel(1))
	assert.Equal(t, "初十", LunarDayLabel(10))
	assert.Equal(t, "廿一", LunarDayLabel(21))
	assert.Equal(t, "三十", LunarDayLabel(30))
	assert.Equal(t, "初一", LunarDayLabel(31))

	assert.Equal(t, "正月", LunarMonthLabel(time.January))
	assert.Equal(t, "冬月", LunarMonthLabel(time.November))
	assert.Equal(t, "腊月", LunarMonthLabel(time.December))
}

func TestZodiac(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "龙", Zodiac(2024))
	assert.Equal(t, "蛇", Zodiac(2025))
	assert.Equal(t, "鼠", Zodiac(1900))
	assert.Equal(t, "猪", Zodiac(1899))
	assert.Equal(t, "鼠", Zodiac(2020))
}

func TestGanZhi(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "甲辰", GanZhi(2024))
	assert.Equal(t, "乙巳", GanZhi(2025))
	assert.Equal(t, "甲子", GanZhi(1984))
	assert.Equal(t, "癸亥", GanZhi(3))
}

func TestActivityWindows(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"祈福", "求嗣", "开光", "出行", "解除", "纳采"}, Suitable(1))
	assert.Equal(t, Suitable(0), Suitable(17))
	assert.Equal(t, []string{"安葬", "破土", "行丧", "伐木", "作梁", "开仓"}, Avoid(16))
	for day := 1; day <= 31; day++ {
		assert.Len(t, Suitable(day), activityWindow)
		assert.Len(t, Avoid(day), activityWindow)
	}

	s := Suitable(3)
	s[0] = "changed"
	assert.NotEqual(t, "changed", Suitable(3)[0])
}

func TestMotivation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Motivation(10), Motivation(20))
	assert.Equal(t, motivations[7], Motivation(17))
}

func TestWeekdayLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"日", "一", "二", "三", "四", "五", "六"}, WeekdayLabels(time.Sunday))
	assert.Equal(t, []string{"一", "二", "三", "四", "五", "六", "日"}, WeekdayLabels(time.Monday))
}

func TestBuildDayDetail(t *testing.T) {
	t.Parallel()

	got := BuildDayDetail(time.Date(2024, time.October, 1, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, d(2024, time.October, 1), got.Date)
	assert.Equal(t, "十月初一", got.LunarDate)
	assert.Equal(t, "龙", got.Zodiac)
	assert.Equal(t, "甲辰", got.GanZhi)
	assert.Equal(t, "国庆节", got.Festival)
	assert.Empty(t, got.SolarTerm)
	assert.Equal(t, Suitable(1), got.Suitable)
	assert.Equal(t, Avoid(1), got.Avoid)
	assert.Equal(t, Motivation(1), got.Motivation)

	assert.Equal(t, got, BuildDayDetail(d(2024, time.October, 1)))
}
