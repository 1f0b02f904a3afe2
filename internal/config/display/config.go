// Package display 实时余额与金额展示配置
package display

import (
	"time"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

// DisplayOptions 展示配置选项
type DisplayOptions struct {
	Tick           time.Duration `json:"tick"`
	RatePrecision  int           `json:"rate_precision"`
	TotalPrecision int           `json:"total_precision"`
}

// Config 展示配置实现
type Config struct {
	options *DisplayOptions
}

// New 创建展示配置
func New(userConfig *types.UserDisplayConfig) *Config {
	options := &DisplayOptions{
		Tick:           defaultTick,
		RatePrecision:  defaultRatePrecision,
		TotalPrecision: defaultTotalPrecision,
	}
	if userConfig != nil {
		if userConfig.TickMs != nil {
			if tick := time.Duration(*userConfig.TickMs) * time.Millisecond; tick >= minTick {
				options.Tick = tick
			} else {
				options.Tick = minTick
			}
		}
		if userConfig.RatePrecision != nil && *userConfig.RatePrecision >= 0 {
			options.RatePrecision = *userConfig.RatePrecision
		}
		if userConfig.TotalPrecision != nil && *userConfig.TotalPrecision >= 0 {
			options.TotalPrecision = *userConfig.TotalPrecision
		}
	}
	return &Config{options: options}
}

// GetOptions 获取展示配置选项
func (c *Config) GetOptions() *DisplayOptions {
	return c.options
}
