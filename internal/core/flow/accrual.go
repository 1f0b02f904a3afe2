package flow

import (
	"math/big"
	"time"
)

const (
	// TotalDisplayPrecision "累计已发送"展示保留的小数位
	TotalDisplayPrecision = 2

	// MaxDisplayDecimals 实时余额动画最多展示的小数位
	MaxDisplayDecimals = 18
)

// 以下函数在 UI 渲染循环中被反复调用，输入异常时退化为零而不是返回错误。

// TotalAccruedUnits 计算流在 [start, end] 内转移的最小单位总量
//
// 只计整秒（不足一秒的部分舍弃）。end <= start（尚未开始的流）或负流速时结果为 0。
func TotalAccruedUnits(rate FlowRate, start, end time.Time) *big.Int {
	secs := wholeSeconds(start, end)
	if secs == 0 || rate.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Mul(rate.bigInt(), big.NewInt(secs))
}

// TotalAccrued 计算累计已发送金额并格式化为 2 位小数（四舍五入）
//
// 进行中的流由调用方传入当前时间作为 end。
func TotalAccrued(rate FlowRate, start, end time.Time, decimals uint8) string {
	return FromSmallestUnitRounded(TotalAccruedUnits(rate, start, end), decimals, TotalDisplayPrecision)
}

// CurrentBalance 计算实时余额
//
//	balance = startingBalance + rate × floor(ms(now - startingBalanceTime) / 1000)
//
// 每次都从绝对时间差重新计算，不累加每帧增量，调用频率与丢帧不影响结果。
// rate 可以为负（净流出）；now 早于 startingBalanceTime 时返回 startingBalance。
func CurrentBalance(startingBalance *big.Int, startingBalanceTime time.Time, rate FlowRate, now time.Time) *big.Int {
	balance := new(big.Int)
	if startingBalance != nil {
		balance.Set(startingBalance)
	}

	elapsedMs := now.Sub(startingBalanceTime).Milliseconds()
	if elapsedMs <= 0 || rate.IsZero() {
		return balance
	}

	delta := new(big.Int).Mul(rate.bigInt(), big.NewInt(elapsedMs/1000))
	return balance.Add(balance, delta)
}

// SignificantDisplayDecimalPlaces 计算实时余额每帧都能看到变化所需的小数位数
//
// 每帧流过的代币数量为 |rate| × tick / 1s / 10^decimals：
//   - 不少于 1 个完整代币、零流速或 tick 非正时返回 (0, false)，即只显示整数
//   - 否则返回第一个有效小数位的位置，最多 MaxDisplayDecimals
func SignificantDisplayDecimalPlaces(rate FlowRate, tick time.Duration, decimals uint8) (int, bool) {
	if rate.IsZero() || tick <= 0 {
		return 0, false
	}

	// 以 纳秒×最小单位 为刻度比较，避免除法
	perTick := new(big.Int).Abs(rate.bigInt())
	perTick.Mul(perTick, big.NewInt(int64(tick)))
	oneToken := new(big.Int).Mul(big.NewInt(int64(time.Second)), pow10(int(decimals)))

	if perTick.Cmp(oneToken) >= 0 {
		return 0, false
	}

	for places := 1; places < MaxDisplayDecimals; places++ {
		perTick.Mul(perTick, bigTen)
		if perTick.Cmp(oneToken) >= 0 {
			return places, true
		}
	}
	return MaxDisplayDecimals, true
}

// FormatFlowingBalance 按 SignificantDisplayDecimalPlaces 的位数格式化实时余额（截断）
func FormatFlowingBalance(balance *big.Int, rate FlowRate, tick time.Duration, decimals uint8) string {
	places, _ := SignificantDisplayDecimalPlaces(rate, tick, decimals)
	return FromSmallestUnit(balance, decimals, places)
}
