package service

import "time"

// DateFormat 是全站统一的日历日格式，所有日期比较都基于该字符串。
const DateFormat = "2006-01-02"

// Today 返回本地时区的今日日历日字符串。
func Today() string {
	return time.Now().In(time.Local).Format(DateFormat)
}

// normalizeToDate 去掉时分秒，保留本地日历日。
func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStartOf 按 ISO 约定计算所在周的周一。
// 周日属于前一个周一开启的那一周，因此回退 6 天而非前进 1 天。
func WeekStartOf(t time.Time) time.Time {
	day := normalizeToDate(t)
	offset := int(day.Weekday())
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, 1-offset)
}

// AddDays 对日历日字符串做天数偏移，自动处理跨月跨年。
func AddDays(date string, days int) (string, error) {
	t, err := time.ParseInLocation(DateFormat, date, time.Local)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateFormat), nil
}

// DaysInMonth 返回某年某月的实际天数，2 月按闰年规则。
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// NextMonth 返回下一个月，12 月翻转到次年 1 月。
func NextMonth(year, month int) (int, int) {
	if month >= 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// PrevMonth 返回上一个月，1 月翻转到前一年 12 月。
func PrevMonth(year, month int) (int, int) {
	if month <= 1 {
		return year - 1, 12
	}
	return year, month - 1
}
