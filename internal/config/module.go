package config

import (
	"go.uber.org/fx"

	apiconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/api"
	chainconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	displayconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/display"
	logconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/log"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/config"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

// ConfigParams 定义配置模块的依赖参数
type ConfigParams struct {
	fx.In

	// 应用配置选项
	AppOptions config.AppOptions `optional:"true"`
}

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	// 配置提供者
	Provider config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			// 提供具体的配置类型用于依赖注入
			func(provider config.Provider) *apiconfig.APIOptions {
				return provider.GetAPI()
			},
			func(provider config.Provider) *logconfig.LogOptions {
				return provider.GetLog()
			},
			func(provider config.Provider) *displayconfig.DisplayOptions {
				return provider.GetDisplay()
			},
			func(provider config.Provider) *chainconfig.Registry {
				return provider.GetChains()
			},
		),
	)
}

// ProvideConfigServices 提供配置服务，配置非法时启动失败
func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}

	provider := NewProvider(appConfig)
	if err := provider.Validate(); err != nil {
		return ConfigOutput{}, err
	}

	return ConfigOutput{
		Provider: provider,
	}, nil
}
