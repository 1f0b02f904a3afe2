package display

import "time"

const (
	// defaultTick 实时余额刷新间隔，约每秒 25 帧
	defaultTick = 40 * time.Millisecond

	// minTick 刷新间隔下限
	minTick = 10 * time.Millisecond

	// defaultRatePrecision 流速展示小数位
	defaultRatePrecision = 6

	// defaultTotalPrecision 累计金额展示小数位
	defaultTotalPrecision = 2
)
