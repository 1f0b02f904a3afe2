package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// int96 取值范围：链上流速为有符号 96 位整数
var (
	MaxFlowRate = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 95), big.NewInt(1))
	MinFlowRate = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 95))
)

// FlowRate 每秒转移的最小单位数量（有符号 int96）
//
// 零值表示流速为 0。序列化为十进制字符串，避免 JSON 数字丢失精度。
type FlowRate struct {
	v *big.Int
}

// NewFlowRate 从 big.Int 创建流速，超出 int96 范围返回 ErrInvalidFlowRate
func NewFlowRate(v *big.Int) (FlowRate, error) {
	if v == nil {
		return FlowRate{}, nil
	}
	if v.Cmp(MaxFlowRate) > 0 || v.Cmp(MinFlowRate) < 0 {
		return FlowRate{}, fmt.Errorf("%w: %s exceeds int96 range", ErrInvalidFlowRate, v.String())
	}
	return FlowRate{v: new(big.Int).Set(v)}, nil
}

// FlowRateFromInt64 从 int64 创建流速（int64 总在 int96 范围内）
func FlowRateFromInt64(n int64) FlowRate {
	return FlowRate{v: big.NewInt(n)}
}

// ParseFlowRate 解析十进制整数字符串形式的流速
func ParseFlowRate(s string) (FlowRate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlowRate{}, fmt.Errorf("%w: empty string", ErrInvalidFlowRate)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return FlowRate{}, fmt.Errorf("%w: %q", ErrInvalidFlowRate, s)
	}
	return NewFlowRate(v)
}

func (r FlowRate) bigInt() *big.Int {
	if r.v == nil {
		return bigZero
	}
	return r.v
}

// BigInt 返回 big.Int 副本
func (r FlowRate) BigInt() *big.Int {
	return new(big.Int).Set(r.bigInt())
}

// Sign 返回 -1、0、1
func (r FlowRate) Sign() int {
	return r.bigInt().Sign()
}

// IsZero 是否为零流速
func (r FlowRate) IsZero() bool {
	return r.Sign() == 0
}

// Cmp 比较两个流速
func (r FlowRate) Cmp(o FlowRate) int {
	return r.bigInt().Cmp(o.bigInt())
}

func (r FlowRate) String() string {
	return r.bigInt().String()
}

// MarshalJSON 输出为十进制字符串
func (r FlowRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON 同时接受字符串与整数字面量
func (r *FlowRate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = FlowRate{}
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFlowRate, err)
		}
	}
	parsed, err := ParseFlowRate(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// FromAmountPerUnit 将"每个时间单位支付 amount"换算为每秒流速
//
// flowRate = floor(toSmallestUnit(amount) / unit.Seconds())
//
// 例如 "每月支付 100 USDC"。金额必须为正。
func FromAmountPerUnit(amount string, unit TimeUnit, decimals uint8) (FlowRate, error) {
	secs := unit.Seconds()
	if secs == 0 {
		return FlowRate{}, fmt.Errorf("%w: %q", ErrInvalidTimeUnit, unit)
	}
	units, err := positiveSmallestUnit(amount, decimals)
	if err != nil {
		return FlowRate{}, err
	}
	return NewFlowRate(units.Quo(units, big.NewInt(secs)))
}

// FromTotalOverPeriod 将"从 start 到 end 共支付 total"换算为每秒流速
//
// flowRate = floor(toSmallestUnit(total) / wholeSeconds(end - start))
//
// 要求 start < end 且区间至少一整秒，否则返回 ErrInvalidInterval。
func FromTotalOverPeriod(total string, start, end time.Time, decimals uint8) (FlowRate, error) {
	units, err := positiveSmallestUnit(total, decimals)
	if err != nil {
		return FlowRate{}, err
	}
	if !end.After(start) {
		return FlowRate{}, fmt.Errorf("%w: end %s is not after start %s",
			ErrInvalidInterval, end.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339))
	}
	secs := wholeSeconds(start, end)
	if secs == 0 {
		return FlowRate{}, fmt.Errorf("%w: period shorter than one second", ErrInvalidInterval)
	}
	return NewFlowRate(units.Quo(units, big.NewInt(secs)))
}

// ToAmountPerUnit 将流速换算为每个时间单位的金额，用于展示（例如"折合每天"）
//
// 结果按 precision 位四舍五入，使 FromAmountPerUnit 的整数截断误差不会显示出来。
func ToAmountPerUnit(rate FlowRate, unit TimeUnit, decimals uint8, precision int) string {
	perUnit := new(big.Int).Mul(rate.bigInt(), big.NewInt(unit.Seconds()))
	return FromSmallestUnitRounded(perUnit, decimals, precision)
}

// positiveSmallestUnit 解析金额并要求严格为正
func positiveSmallestUnit(amount string, decimals uint8) (*big.Int, error) {
	units, err := ToSmallestUnit(amount, decimals)
	if err != nil {
		return nil, err
	}
	if units.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, amount)
	}
	return units, nil
}

// wholeSeconds 返回 end-start 的整秒数（舍弃不足一秒的部分），end<=start 时为 0
func wholeSeconds(start, end time.Time) int64 {
	if !end.After(start) {
		return 0
	}
	return int64(end.Sub(start) / time.Second)
}
