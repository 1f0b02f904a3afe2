package flow

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad test literal %q", s)
	return v
}

func TestToSmallestUnit(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		want     string
	}{
		{"整数 6 位", "12", 6, "12000000"},
		{"小数 6 位", "12.5", 6, "12500000"},
		{"多余位截断", "0.0000019", 6, "1"},
		{"尾随小数点", "3.", 6, "3000000"},
		{"前导小数点", ".5", 6, "500000"},
		{"18 位", "100", 18, "100000000000000000000"},
		{"零", "0", 18, "0"},
		{"decimals 为 0", "7.9", 0, "7"},
		{"首尾空白", " 1.25 ", 2, "125"},
		{"超过 uint64", "123456789012345678901234567890.123456789012345678", 18,
			"123456789012345678901234567890123456789012345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToSmallestUnit(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToSmallestUnit_Invalid(t *testing.T) {
	for _, s := range []string{"", " ", ".", "-1", "+1", "1e5", "1.2.3", "abc", "1 2", "0x10", "1,5", "١"} {
		t.Run(s, func(t *testing.T) {
			_, err := ToSmallestUnit(s, 18)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestFromSmallestUnit(t *testing.T) {
	tests := []struct {
		name      string
		value     *big.Int
		decimals  uint8
		precision int
		truncated string
		rounded   string
	}{
		{"补零", big.NewInt(12_500_000), 6, 2, "12.50", "12.50"},
		{"完整精度", big.NewInt(12_345_678), 6, 6, "12.345678", "12.345678"},
		{"截断与舍入不同", big.NewInt(12_345_678), 6, 2, "12.34", "12.35"},
		{"半数进位", big.NewInt(5_000), 6, 2, "0.00", "0.01"},
		{"小于展示精度", big.NewInt(999), 6, 2, "0.00", "0.00"},
		{"precision 为 0", big.NewInt(1_999_999), 6, 0, "1", "2"},
		{"decimals 为 0", big.NewInt(42), 0, 2, "42.00", "42.00"},
		{"nil", nil, 18, 2, "0.00", "0.00"},
		{"负精度按 0 处理", big.NewInt(1_500_000), 6, -3, "1", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.truncated, FromSmallestUnit(tt.value, tt.decimals, tt.precision))
			assert.Equal(t, tt.rounded, FromSmallestUnitRounded(tt.value, tt.decimals, tt.precision))
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	tests := []struct {
		amount   string
		decimals uint8
	}{
		{"12.345678", 6},
		{"0.000001", 6},
		{"1000000.000000", 6},
		{"0.000000000000000001", 18},
		{"98765.432100000000000000", 18},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			units, err := ToSmallestUnit(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.amount, FromSmallestUnit(units, tt.decimals, int(tt.decimals)))
		})
	}
}

func TestScaleDecimals(t *testing.T) {
	usdc := big.NewInt(1_500_000)

	wrapped := ScaleDecimals(usdc, 6, 18)
	assert.Equal(t, "1500000000000000000", wrapped.String())
	assert.Equal(t, "1500000", ScaleDecimals(wrapped, 18, 6).String())

	// 降低精度时截断
	dust := bigFromString(t, "1500000999999999999")
	assert.Equal(t, "1500000", ScaleDecimals(dust, 18, 6).String())

	// 相同精度返回副本
	same := ScaleDecimals(usdc, 6, 6)
	same.SetInt64(0)
	assert.Equal(t, int64(1_500_000), usdc.Int64())

	assert.Equal(t, "0", ScaleDecimals(nil, 6, 18).String())
}
