package flow

import "errors"

var (
	// ErrInvalidAmount 金额字符串无法解析为非负十进制数，或在要求正数的场景下为零
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidInterval 时间区间不满足 start < end（或不足一整秒）
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidFlowRate 流速不是十进制整数，或超出 int96 范围
	ErrInvalidFlowRate = errors.New("invalid flow rate")

	// ErrInvalidTimeUnit 未知的时间单位
	ErrInvalidTimeUnit = errors.New("invalid time unit")
)
