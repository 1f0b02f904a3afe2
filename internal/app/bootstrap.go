package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/api"
	config "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/infrastructure/clock"
	log "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/infrastructure/log"
	ifconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/config"
	logiface "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/log"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() ifconfig.AppOptions { return b.opts }),
		config.Module(), // 1. 配置(不依赖其他)
		log.Module(),    // 2. 日志(依赖配置)
		clock.Module(),  // 3. 时钟
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	var modules []fx.Option
	if b.opts.enableAPI {
		modules = append(modules, api.Module())
	}

	modules = append(modules, fx.Invoke(func(lifecycle fx.Lifecycle, provider ifconfig.Provider, logger logiface.Logger) {
		lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				logger.Infof("%s 已启动 (environment=%s, api=%v)",
					provider.GetAppName(), provider.GetEnvironment(), b.opts.enableAPI)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				logger.Info("准备停止应用")
				return nil
			},
		})
	}))
	return modules
}

// SetupModules 按层组装全部模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var all []fx.Option
	all = append(all, b.SetupInfrastructureLayer()...)
	all = append(all, b.SetupApplicationLayer()...)
	return all
}

// CreateFxApp 创建fx应用，依赖图错误在此处暴露
func (b *Bootstrap) CreateFxApp(extra ...fx.Option) error {
	appOptions := []fx.Option{
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
	}
	appOptions = append(appOptions, extra...)

	b.fxApp = fx.New(appOptions...)
	return b.fxApp.Err()
}

// StartApp 启动应用
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}
