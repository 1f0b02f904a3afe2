// Package flow provides fixed-point token amounts, flow-rate conversion and stream accrual.
//
// 流支付计算核心：
//   - 金额在链上以最小单位（TokenAmount × 10^decimals）表示，全部使用 *big.Int
//   - decimals 由调用方按链/代币传入（6 与 18 同时在用，不得假定为 18）
//   - 本包是纯函数集合：无 I/O、无全局可变状态、不读取时钟
package flow

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern 金额语法：仅数字，可选一个小数点，不允许符号与指数
var amountPattern = regexp.MustCompile(`^([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)

var (
	bigTen  = big.NewInt(10)
	bigZero = big.NewInt(0)
)

// pow10 返回 10^n
func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// ToSmallestUnit 将人类输入的金额字符串转换为最小单位整数
//
// 超出 decimals 的小数位直接截断（不进位），与链上整数除法语义一致。
//
// 示例（decimals=6）：
//
//	"12.5"      → 12500000
//	"0.0000019" → 1
//	"3."        → 3000000
func ToSmallestUnit(amount string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if !amountPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	d := int(decimals)
	if len(fracPart) > d {
		fracPart = fracPart[:d]
	} else {
		fracPart += strings.Repeat("0", d-len(fracPart))
	}

	digits := intPart + fracPart
	if digits == "" {
		return new(big.Int), nil
	}

	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return value, nil
}

// toDecimal 将最小单位整数视为 decimals 位定点数
func toDecimal(value *big.Int, decimals uint8) decimal.Decimal {
	if value == nil {
		value = bigZero
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}

// FromSmallestUnit 将最小单位整数格式化为固定 precision 位小数的字符串
//
// 多余的位数被丢弃而不是四舍五入，不足的位数以 0 补齐（toFixed 风格）。
// 实时余额等需要稳定显示的场景使用此函数。
func FromSmallestUnit(value *big.Int, decimals uint8, precision int) string {
	p := clampPrecision(precision)
	return toDecimal(value, decimals).Truncate(p).StringFixed(p)
}

// FromSmallestUnitRounded 与 FromSmallestUnit 相同，但按四舍五入（远离零）保留 precision 位
//
// 用于"累计已发送金额"等货币展示。
func FromSmallestUnitRounded(value *big.Int, decimals uint8, precision int) string {
	return toDecimal(value, decimals).StringFixed(clampPrecision(precision))
}

func clampPrecision(precision int) int32 {
	if precision < 0 {
		return 0
	}
	return int32(precision)
}

// ScaleDecimals 在两种精度之间换算最小单位金额
//
// 用于底层代币与 Super Token 之间的包装/解包（例如 USDC 6 位 → USDCx 18 位）。
// 精度降低时截断余数。
func ScaleDecimals(value *big.Int, from, to uint8) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	switch {
	case to > from:
		return new(big.Int).Mul(value, pow10(int(to-from)))
	case to < from:
		return new(big.Int).Quo(value, pow10(int(from-to)))
	default:
		return new(big.Int).Set(value)
	}
}
