package flow

import (
	"fmt"
	"strings"
)

// TimeUnit 人类输入流速时使用的时间单位
type TimeUnit string

const (
	Hour  TimeUnit = "hour"
	Day   TimeUnit = "day"
	Week  TimeUnit = "week"
	Month TimeUnit = "month"
)

// 各单位对应的秒数
//
// month 固定为 30 天，不随日历变化；已部署系统的展示总额依赖这一取值。
const (
	SecondsPerHour  int64 = 3600
	SecondsPerDay   int64 = 86400
	SecondsPerWeek  int64 = 604800
	SecondsPerMonth int64 = 2592000
)

// Seconds 返回单位对应的秒数，未知单位返回 0
func (u TimeUnit) Seconds() int64 {
	switch u {
	case Hour:
		return SecondsPerHour
	case Day:
		return SecondsPerDay
	case Week:
		return SecondsPerWeek
	case Month:
		return SecondsPerMonth
	default:
		return 0
	}
}

// Valid 是否为已知单位
func (u TimeUnit) Valid() bool {
	return u.Seconds() > 0
}

func (u TimeUnit) String() string {
	return string(u)
}

// ParseTimeUnit 解析时间单位（不区分大小写）
func ParseTimeUnit(s string) (TimeUnit, error) {
	u := TimeUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q (expected hour|day|week|month)", ErrInvalidTimeUnit, s)
	}
	return u, nil
}

// TimeUnits 返回全部时间单位，按时长升序
func TimeUnits() []TimeUnit {
	return []TimeUnit{Hour, Day, Week, Month}
}
