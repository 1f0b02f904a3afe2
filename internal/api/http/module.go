package http

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	appversion "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app/version"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/config"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/clock"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/log"
)

// ServerParams HTTP模块依赖
type ServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Provider
	Logger    log.Logger
	Clock     clock.Clock `optional:"true"`
}

// ProvideServer 创建服务器，并在启用时注册启动/停止钩子
func ProvideServer(params ServerParams) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	version := appversion.GetVersion()
	if app := params.Config.GetAppConfig(); app != nil && app.Version != nil {
		version = *app.Version
	}

	var now func() time.Time
	if params.Clock != nil {
		now = params.Clock.Now
	}

	server := NewServer(Options{
		API:      params.Config.GetAPI(),
		Display:  params.Config.GetDisplay(),
		Registry: params.Config.GetChains(),
		Logger:   params.Logger,
		Version:  version,
		Metrics:  reg,
		Clock:    now,
	})

	if !params.Config.GetAPI().HTTP.Enabled {
		params.Logger.Warn("HTTP API在配置中被禁用，不启动监听")
		return server
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}

// Module 返回HTTP服务模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
		// 强制实例化，使生命周期钩子生效
		fx.Invoke(func(*Server) {}),
	)
}
