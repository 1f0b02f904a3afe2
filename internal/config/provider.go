// Package config 提供应用配置管理功能
package config

import (
	"strings"
	"sync"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/api"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/display"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/log"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/config"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

const (
	defaultAppName     = "drippay"
	defaultEnvironment = "prod"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig

	chainsOnce sync.Once
	chains     *chain.Registry
	chainsErr  error
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{appConfig: appConfig}
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetLog 获取日志配置，dev 环境默认 debug 级别
func (p *Provider) GetLog() *log.LogOptions {
	return log.NewForEnvironment(p.GetEnvironment(), p.appConfig.Log).GetOptions()
}

// GetDisplay 获取展示配置
func (p *Provider) GetDisplay() *display.DisplayOptions {
	return display.New(p.appConfig.Display).GetOptions()
}

// GetChains 获取代币注册表
func (p *Provider) GetChains() *chain.Registry {
	p.buildChains()
	if p.chainsErr != nil {
		fallback, _ := chain.New(nil)
		return fallback
	}
	return p.chains
}

func (p *Provider) buildChains() {
	p.chainsOnce.Do(func() {
		p.chains, p.chainsErr = chain.New(p.appConfig.Chains)
	})
}

// GetEnvironment 获取运行环境
func (p *Provider) GetEnvironment() string {
	if p.appConfig.Environment == nil {
		return defaultEnvironment
	}
	switch env := strings.ToLower(strings.TrimSpace(*p.appConfig.Environment)); env {
	case "dev", "test", "prod":
		return env
	default:
		return defaultEnvironment
	}
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

// Validate 校验用户配置
func (p *Provider) Validate() error {
	return ValidateConfig(p.appConfig, p.chainsError())
}

func (p *Provider) chainsError() error {
	p.buildChains()
	return p.chainsErr
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}
