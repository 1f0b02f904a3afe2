package schedule

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

const (
	testToken    = "0x1650581F573eAd727B92073B5Ef8B4f5B94D1648"
	testReceiver = "0x9C2b12b5a07452bD8a1CB6c4cB4F1B2f3e7Da6b1"
	testSender   = "0x4e6d2A1F1C2bB5cE2e8C0A5e4D8b3F7A9c1E2d30"
)

var now = time.Unix(1_700_000_000, 0).UTC()

func ptrTime(t time.Time) *time.Time { return &t }

func ptrRate(n int64) *flow.FlowRate {
	r := flow.FlowRateFromInt64(n)
	return &r
}

func validParams() Params {
	delay := uint32(900)
	return Params{
		SuperToken:    testToken,
		Receiver:      testReceiver,
		StartDate:     ptrTime(now.Add(time.Hour)),
		StartMaxDelay: &delay,
		FlowRate:      ptrRate(13888),
		StartAmount:   big.NewInt(1_000_000),
		EndDate:       ptrTime(now.Add(30 * 24 * time.Hour)),
	}
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(validParams(), now)
	assert.True(t, res.IsValid)
	assert.NotNil(t, res.Errors)
	assert.Empty(t, res.Errors)
	assert.NoError(t, res.Err())

	// 只有地址的最小请求
	res = Validate(Params{SuperToken: testToken, Receiver: testReceiver}, now)
	assert.True(t, res.IsValid)
}

func TestValidate_ReportsEveryIssue(t *testing.T) {
	p := validParams()
	p.Receiver = "0x123"
	p.StartDate = ptrTime(now.Add(-time.Minute))

	res := Validate(p, now)
	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "receiver")
	assert.Contains(t, res.Errors[1], "start date")

	err := res.Err()
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Contains(t, err.Error(), "receiver")
}

func TestValidate_Checks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		want   []string
	}{
		{"代币地址缺少 0x", func(p *Params) { p.SuperToken = testToken[2:] }, []string{"super token"}},
		{"代币地址为空", func(p *Params) { p.SuperToken = "" }, []string{"super token"}},
		{"接收方含非法字符", func(p *Params) { p.Receiver = "0xZZ2b12b5a07452bD8a1CB6c4cB4F1B2f3e7Da6b1" }, []string{"receiver"}},
		{"开始时间等于当前时间", func(p *Params) { p.StartDate = ptrTime(now) }, []string{"start date"}},
		{"结束时间已过", func(p *Params) {
			p.StartDate = nil
			p.EndDate = ptrTime(now.Add(-time.Second))
		}, []string{"end date"}},
		{"开始晚于结束", func(p *Params) { p.EndDate = ptrTime(now.Add(30 * time.Minute)) }, []string{"before end date"}},
		{"开始等于结束", func(p *Params) { p.EndDate = ptrTime(now.Add(time.Hour)) }, []string{"before end date"}},
		{"有开始时间但无流速", func(p *Params) { p.FlowRate = nil }, []string{"flow rate is required"}},
		{"有开始时间但流速为零", func(p *Params) { p.FlowRate = ptrRate(0) }, []string{"flow rate is required"}},
		{"负流速", func(p *Params) { p.FlowRate = ptrRate(-1) }, []string{"greater than zero"}},
		{"无开始时间的零流速", func(p *Params) {
			p.StartDate = nil
			p.FlowRate = ptrRate(0)
		}, []string{"greater than zero"}},
		{"负的开始金额", func(p *Params) { p.StartAmount = big.NewInt(-1) }, []string{"start amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			res := Validate(p, now)
			assert.False(t, res.IsValid)
			require.Len(t, res.Errors, len(tt.want), "errors: %v", res.Errors)
			for i, fragment := range tt.want {
				assert.Contains(t, res.Errors[i], fragment)
			}
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	p := validParams()
	p.StartAmount = big.NewInt(-5)
	Validate(p, now)
	assert.Equal(t, "-5", p.StartAmount.String())
	assert.Equal(t, "13888", p.FlowRate.String())
}

func TestIsAddress(t *testing.T) {
	assert.True(t, IsAddress(testToken))
	assert.True(t, IsAddress("0X1650581F573EAD727B92073B5EF8B4F5B94D1648"))
	assert.False(t, IsAddress(testToken[2:]))
	assert.False(t, IsAddress(testToken+"00"))
	assert.False(t, IsAddress("0x"))
}
