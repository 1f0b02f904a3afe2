package clock

import (
	"sync"
	"time"

	infraClock "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/clock"
)

// MockClock 测试用时钟，时间只在显式推进时变化，可并发访问
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockClock(initial time.Time) *MockClock { return &MockClock{currentTime: initial} }

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

func (c *MockClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

// Advance 推进时间
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	c.mu.Unlock()
}

// Set 设置当前时间
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.currentTime = t
	c.mu.Unlock()
}

var _ infraClock.Clock = (*MockClock)(nil)
