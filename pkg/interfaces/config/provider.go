// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/api"
	chainconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	displayconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/display"
	logconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/log"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetDisplay 获取展示配置
	GetDisplay() *displayconfig.DisplayOptions

	// GetChains 获取代币注册表
	// 配置非法时回退为内置默认注册表，启动阶段应先调用 Validate
	GetChains() *chainconfig.Registry

	// GetEnvironment 获取运行环境
	// 返回运行环境字符串：dev | test | prod，未配置或非法时为 "prod"
	GetEnvironment() string

	// GetAppName 获取应用名称
	GetAppName() string

	// Validate 校验用户配置
	Validate() error

	// GetAppConfig 获取原始应用配置
	GetAppConfig() *types.AppConfig
}
