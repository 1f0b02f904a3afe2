package flow

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(1_700_000_000, 0)

func TestTimeUnitSeconds(t *testing.T) {
	assert.Equal(t, int64(3600), Hour.Seconds())
	assert.Equal(t, int64(86400), Day.Seconds())
	assert.Equal(t, int64(604800), Week.Seconds())
	assert.Equal(t, int64(2592000), Month.Seconds())
	assert.Equal(t, int64(0), TimeUnit("year").Seconds())

	u, err := ParseTimeUnit(" Month ")
	require.NoError(t, err)
	assert.Equal(t, Month, u)

	_, err = ParseTimeUnit("year")
	assert.ErrorIs(t, err, ErrInvalidTimeUnit)
}

func TestFromAmountPerUnit(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		unit     TimeUnit
		decimals uint8
		want     string
	}{
		{"50 USDC 每小时", "50", Hour, 6, "13888"},
		{"100 每月 18 位", "100", Month, 18, "38580246913580"},
		{"1000 每天", "1000", Day, 18, "11574074074074074"},
		{"每周", "604800", Week, 0, "1"},
		{"截断为零", "0.000001", Month, 6, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := FromAmountPerUnit(tt.amount, tt.unit, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rate.String())
		})
	}
}

func TestFromAmountPerUnit_Errors(t *testing.T) {
	_, err := FromAmountPerUnit("0", Day, 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = FromAmountPerUnit("0.000", Day, 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = FromAmountPerUnit("-5", Day, 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = FromAmountPerUnit("abc", Day, 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = FromAmountPerUnit("10", TimeUnit("year"), 18)
	assert.ErrorIs(t, err, ErrInvalidTimeUnit)

	// 1e20 个代币每小时，远超 int96
	_, err = FromAmountPerUnit("100000000000000000000", Hour, 18)
	assert.ErrorIs(t, err, ErrInvalidFlowRate)
}

func TestFromTotalOverPeriod(t *testing.T) {
	t.Run("一天区间与按天换算一致", func(t *testing.T) {
		byPeriod, err := FromTotalOverPeriod("1000", t0, t0.Add(24*time.Hour), 18)
		require.NoError(t, err)
		byUnit, err := FromAmountPerUnit("1000", Day, 18)
		require.NoError(t, err)
		assert.Equal(t, 0, byPeriod.Cmp(byUnit))
	})

	t.Run("舍弃不足一秒的部分", func(t *testing.T) {
		rate, err := FromTotalOverPeriod("10", t0, t0.Add(10*time.Second+900*time.Millisecond), 0)
		require.NoError(t, err)
		assert.Equal(t, "1", rate.String())
	})

	t.Run("零总额被拒绝", func(t *testing.T) {
		_, err := FromTotalOverPeriod("0", t0, t0.Add(1000*time.Second), 18)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("相同时间戳无效", func(t *testing.T) {
		_, err := FromTotalOverPeriod("1", t0, t0, 18)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("结束早于开始", func(t *testing.T) {
		_, err := FromTotalOverPeriod("1", t0, t0.Add(-time.Hour), 18)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("不足一秒", func(t *testing.T) {
		_, err := FromTotalOverPeriod("1", t0, t0.Add(500*time.Millisecond), 18)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestToAmountPerUnit(t *testing.T) {
	rate, err := FromAmountPerUnit("100", Month, 18)
	require.NoError(t, err)

	// 截断误差小于每秒一个最小单位，四舍五入后恢复原值
	assert.Equal(t, "100.000000", ToAmountPerUnit(rate, Month, 18, 6))

	exact := new(big.Int).Mul(rate.BigInt(), big.NewInt(SecondsPerMonth))
	assert.Equal(t, "99.999999", FromSmallestUnit(exact, 18, 6))

	hourly := FlowRateFromInt64(13888)
	assert.Equal(t, "50.00", ToAmountPerUnit(hourly, Hour, 6, 2))
	assert.Equal(t, "1199.92", ToAmountPerUnit(hourly, Day, 6, 2))
	assert.Equal(t, "0.00", ToAmountPerUnit(FlowRate{}, Day, 6, 2))
}

func TestParseFlowRate(t *testing.T) {
	rate, err := ParseFlowRate("13888")
	require.NoError(t, err)
	assert.Equal(t, int64(13888), rate.BigInt().Int64())

	neg, err := ParseFlowRate("-5")
	require.NoError(t, err)
	assert.Equal(t, -1, neg.Sign())

	maxRate, err := ParseFlowRate(MaxFlowRate.String())
	require.NoError(t, err)
	assert.Equal(t, 0, maxRate.BigInt().Cmp(MaxFlowRate))

	_, err = ParseFlowRate(MinFlowRate.String())
	require.NoError(t, err)

	tooBig := new(big.Int).Add(MaxFlowRate, big.NewInt(1))
	_, err = ParseFlowRate(tooBig.String())
	assert.ErrorIs(t, err, ErrInvalidFlowRate)

	tooSmall := new(big.Int).Sub(MinFlowRate, big.NewInt(1))
	_, err = ParseFlowRate(tooSmall.String())
	assert.ErrorIs(t, err, ErrInvalidFlowRate)

	for _, s := range []string{"", "1.5", "abc", "1e3"} {
		_, err := ParseFlowRate(s)
		assert.ErrorIs(t, err, ErrInvalidFlowRate, s)
	}
}

func TestFlowRateJSON(t *testing.T) {
	data, err := json.Marshal(FlowRateFromInt64(13888))
	require.NoError(t, err)
	assert.Equal(t, `"13888"`, string(data))

	var payload struct {
		A FlowRate `json:"a"`
		B FlowRate `json:"b"`
		C FlowRate `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"38580246913580","b":42,"c":null}`), &payload))
	assert.Equal(t, "38580246913580", payload.A.String())
	assert.Equal(t, "42", payload.B.String())
	assert.True(t, payload.C.IsZero())

	err = json.Unmarshal([]byte(`{"a":"1.5"}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidFlowRate)
}

func TestFlowRateZeroValue(t *testing.T) {
	var r FlowRate
	assert.True(t, r.IsZero())
	assert.Equal(t, "0", r.String())
	assert.Equal(t, 0, r.Cmp(FlowRateFromInt64(0)))

	// BigInt 返回副本
	r = FlowRateFromInt64(7)
	r.BigInt().SetInt64(99)
	assert.Equal(t, "7", r.String())
}
