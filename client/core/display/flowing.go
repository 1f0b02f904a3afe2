// Package display 提供终端中的实时流余额展示
package display

import (
	"context"
	"math/big"
	"time"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// DefaultTick 默认刷新间隔，约每秒 25 次
const DefaultTick = 40 * time.Millisecond

// FlowingBalance 按固定间隔重新计算并渲染流余额
//
// 每次刷新都从快照时间点重新计算，不做增量累加，因此长时间运行也不会漂移。
type FlowingBalance struct {
	StartingBalance     *big.Int
	StartingBalanceTime time.Time
	FlowRate            flow.FlowRate
	Decimals            uint8
	Tick                time.Duration

	// Now 为空时使用 time.Now
	Now func() time.Time
}

func (b *FlowingBalance) tick() time.Duration {
	if b.Tick <= 0 {
		return DefaultTick
	}
	return b.Tick
}

func (b *FlowingBalance) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// Balance 返回 at 时刻的余额（最小单位）
func (b *FlowingBalance) Balance(at time.Time) *big.Int {
	return flow.CurrentBalance(b.StartingBalance, b.StartingBalanceTime, b.FlowRate, at)
}

// Format 返回 at 时刻按有效小数位截断的展示字符串
func (b *FlowingBalance) Format(at time.Time) string {
	return flow.FormatFlowingBalance(b.Balance(at), b.FlowRate, b.tick(), b.Decimals)
}

// DisplayDecimals 展示使用的小数位数
func (b *FlowingBalance) DisplayDecimals() int {
	places, _ := flow.SignificantDisplayDecimalPlaces(b.FlowRate, b.tick(), b.Decimals)
	return places
}

// Run 立即渲染一次，之后每个 tick 渲染一次，直到 ctx 取消
//
// 零流速时余额不变，只渲染一次后等待取消。
func (b *FlowingBalance) Run(ctx context.Context, render func(string)) {
	render(b.Format(b.now()))
	if b.FlowRate.IsZero() {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(b.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			render(b.Format(b.now()))
		}
	}
}
