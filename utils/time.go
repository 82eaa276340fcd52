package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseClock 解析 "HH:MM"，返回小时和分钟
func ParseClock(clock string) (hour, minute int, err error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ValidClock 是否为合法 HH:MM
func ValidClock(clock string) bool {
	_, _, err := ParseClock(clock)
	return err == nil && len(clock) == len(ClockLayout)
}

// DateKey 返回 t 在 loc 时区的日历日期 YYYY-MM-DD
func DateKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ClockOf 返回 t 在 loc 时区的 HH:MM
func ClockOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(ClockLayout)
}
