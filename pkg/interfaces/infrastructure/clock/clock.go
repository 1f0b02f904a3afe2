// Package clock provides time source interfaces.
package clock

import "time"

// Clock 统一的时间源接口
//
// 流的累计额与实时余额都依赖"当前时间"，通过该接口注入以便测试中固定时间。
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration
}
