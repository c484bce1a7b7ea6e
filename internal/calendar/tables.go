package calendar

import "time"

var lunarDays = [30]string{
	"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
}

var lunarMonths = [12]string{
	"正月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "冬月", "腊月",
}

// FixedDate is a (month, day) anchor with a display name.
type FixedDate struct {
	Month time.Month
	Day   int
	Name  string
}

var festivals = []FixedDate{
	{time.January, 1, "元旦"},
	{time.February, 14, "情人节"},
	{time.March, 8, "妇女节"},
	{time.March, 12, "植树节"},
	{time.April, 1, "愚人节"},
	{time.May, 1, "劳动节"},
	{time.May, 4, "青年节"},
	{time.June, 1, "儿童节"},
	{time.July, 1, "建党节"},
	{time.August, 1, "建军节"},
	{time.September, 10, "教师节"},
	{time.October, 1, "国庆节"},
	{time.December, 25, "圣诞节"},
}

var solarTerms = []FixedDate{
	{time.January, 6, "小寒"},
	{time.January, 20, "大寒"},
	{time.February, 4, "立春"},
	{time.February, 19, "雨水"},
	{time.March, 6, "惊蛰"},
	{time.March, 21, "春分"},
	{time.April, 5, "清明"},
	{time.April, 20, "谷雨"},
	{time.May, 6, "立夏"},
	{time.May, 21, "小满"},
	{time.June, 6, "芒种"},
	{time.June, 21, "夏至"},
	{time.July, 7, "小暑"},
	{time.July, 23, "大暑"},
	{time.August, 8, "立秋"},
	{time.August, 23, "处暑"},
	{time.September, 8, "白露"},
	{time.September, 23, "秋分"},
	{time.October, 8, "寒露"},
	{time.October, 23, "霜降"},
	{time.November, 7, "立冬"},
	{time.November, 22, "小雪"},
	{time.December, 7, "大雪"},
	{time.December, 22, "冬至"},
}

var zodiacs = [12]string{
	"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪",
}

var heavenlyStems = [10]string{
	"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸",
}

var earthlyBranches = [12]string{
	"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥",
}

var suitableActivities = []string{
	"祭祀", "祈福", "求嗣", "开光", "出行", "解除", "纳采", "嫁娶",
	"冠笄", "会亲友", "安床", "动土", "修造", "上梁", "开市", "交易",
	"立券", "纳财", "栽种", "入宅", "移徙", "沐浴", "扫舍",
}

var avoidActivities = []string{
	"安葬", "破土", "行丧", "伐木", "作梁", "开仓", "出货财", "词讼",
	"掘井", "造船", "探病", "针灸", "置产", "开渠", "纳畜", "合寿木",
	"造庙", "嫁娶", "动土", "出行", "入宅", "修坟",
}

var motivations = [10]string{
	"今天也要元气满满！",
	"每一天都是新的开始。",
	"坚持下去，美好总会到来。",
	"把平凡的日子过得热气腾腾。",
	"心中有光，步履不停。",
	"慢一点也没关系，别停下就好。",
	"愿你被这个世界温柔以待。",
	"努力的人，运气都不会太差。",
	"保持热爱，奔赴山海。",
	"生活明朗，万物可爱。",
}

// activityWindow is the number of entries shown from each activity list.
const activityWindow = 6

var weekdayLabels = [7]string{"日", "一", "二", "三", "四", "五", "六"}

// Festivals returns a copy of the fixed festival table.
func Festivals() []FixedDate {
	return append([]FixedDate(nil), festivals...)
}

// SolarTerms returns a copy of the solar term anchor table.
func SolarTerms() []FixedDate {
	return append([]FixedDate(nil), solarTerms...)
}
