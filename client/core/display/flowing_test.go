package display

import (
	"context"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

var t0 = time.Unix(1_700_000_000, 0)

func TestFlowingBalance_Format(t *testing.T) {
	b := &FlowingBalance{
		StartingBalance:     big.NewInt(1_234_000_000),
		StartingBalanceTime: t0,
		FlowRate:            flow.FlowRateFromInt64(13888),
		Decimals:            6,
	}

	assert.Equal(t, 4, b.DisplayDecimals())
	assert.Equal(t, "1234.0000", b.Format(t0))
	assert.Equal(t, "1234.0000", b.Format(t0.Add(999*time.Millisecond)))
	assert.Equal(t, "1234.0138", b.Format(t0.Add(time.Second)))
	assert.Equal(t, "1234.0277", b.Format(t0.Add(2*time.Second)))

	// 快照之前的时刻不回退
	assert.Equal(t, "1234.0000", b.Format(t0.Add(-time.Hour)))
}

func TestFlowingBalance_NoDriftOverLongRuns(t *testing.T) {
	b := &FlowingBalance{
		StartingBalance:     big.NewInt(0),
		StartingBalanceTime: t0,
		FlowRate:            flow.FlowRateFromInt64(13888),
		Decimals:            6,
	}
	// 30 天后的余额与一次性计算完全一致
	at := t0.Add(30 * 24 * time.Hour)
	assert.Equal(t, flow.TotalAccruedUnits(b.FlowRate, t0, at).String(), b.Balance(at).String())
}

func TestFlowingBalance_Run(t *testing.T) {
	var calls atomic.Int64
	clock := t0
	b := &FlowingBalance{
		StartingBalance:     big.NewInt(0),
		StartingBalanceTime: t0,
		FlowRate:            flow.FlowRateFromInt64(1_000_000),
		Decimals:            6,
		Tick:                5 * time.Millisecond,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	var frames []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run(ctx, func(s string) {
			frames = append(frames, s)
			if calls.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run 未在取消后返回")
	}

	require.GreaterOrEqual(t, len(frames), 3)
	// 每帧 0.005 个代币，保留 3 位小数
	assert.Equal(t, []string{"1.000", "2.000", "3.000"}, frames[:3])
}

func TestFlowingBalance_RunZeroRate(t *testing.T) {
	b := &FlowingBalance{
		StartingBalance:     big.NewInt(5_000_000),
		StartingBalanceTime: t0,
		Decimals:            6,
		Now:                 func() time.Time { return t0 },
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var frames []string
	b.Run(ctx, func(s string) { frames = append(frames, s) })
	assert.Equal(t, []string{"5"}, frames)
}
