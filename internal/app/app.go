// Package app 负责加载配置并以 fx 组装、启动与停止服务
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"
)

const (
	startTimeout = 15 * time.Second
	stopTimeout  = 15 * time.Second
)

// App 是应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到 SIGINT/SIGTERM，然后停止应用
	Wait() error
}

type internalApp struct {
	bootstrap *Bootstrap
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待退出信号
func (a *internalApp) Wait() error {
	sig := WaitForSignal()
	fmt.Fprintf(os.Stderr, "\n收到信号 %v，正在优雅退出...\n", sig)
	return a.Stop()
}

// Start 加载配置并启动应用
//
// 配置来源优先级：WithAppConfig > WithEmbeddedConfig > DRIP_CONFIG > WithConfigFile。
func Start(appOptions ...Option) (App, error) {
	return start(nil, appOptions...)
}

func start(extra []fx.Option, appOptions ...Option) (*internalApp, error) {
	opts := newOptions(appOptions...)

	if err := LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("加载 .env 失败: %w", err)
	}
	if err := resolveAppConfig(opts); err != nil {
		return nil, err
	}

	bootstrap := NewBootstrap(opts)
	if err := bootstrap.CreateFxApp(extra...); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(ctx); err != nil {
		return nil, err
	}
	return &internalApp{bootstrap: bootstrap}, nil
}

func resolveAppConfig(opts *options) error {
	if opts.appConfig != nil {
		ApplyEnvOverrides(opts.appConfig)
		return nil
	}
	if len(opts.embeddedConfig) > 0 {
		cfg, err := ParseConfig(opts.embeddedConfig)
		if err != nil {
			return fmt.Errorf("解析嵌入配置失败: %w", err)
		}
		ApplyEnvOverrides(cfg)
		opts.appConfig = cfg
		return nil
	}
	cfg, err := LoadConfigFile(ResolveConfigPath(opts.configFilePath))
	if err != nil {
		return err
	}
	opts.appConfig = cfg
	return nil
}

// WaitForSignal 阻塞等待中断或终止信号
func WaitForSignal() os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	return <-signals
}
