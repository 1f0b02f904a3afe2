// Package clock 提供系统时钟与测试时钟实现
package clock

import (
	"time"

	infraClock "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/clock"
)

// SystemClock 使用系统真实时间
type SystemClock struct{}

func NewSystemClock() infraClock.Clock { return SystemClock{} }

func (SystemClock) Now() time.Time                  { return time.Now() }
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }
