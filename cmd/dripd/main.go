// Command dripd 运行 DripPay 流速计算 HTTP 服务
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/configs"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app/version"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		env        string
		httpHost   string
		httpPort   int
	)

	cmd := &cobra.Command{
		Use:           "dripd",
		Short:         "DripPay 流速计算服务",
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.LoadDotEnv(); err != nil {
				return fmt.Errorf("加载 .env 失败: %w", err)
			}
			cfg, err := loadConfig(configPath, env)
			if err != nil {
				return err
			}

			// 命令行参数覆盖配置文件
			if httpHost != "" || httpPort > 0 {
				if cfg.API == nil {
					cfg.API = &types.UserAPIConfig{}
				}
				if httpHost != "" {
					cfg.API.HTTPHost = types.StringPtr(httpHost)
				}
				if httpPort > 0 {
					cfg.API.HTTPPort = types.IntPtr(httpPort)
				}
			}

			a, err := app.Start(app.WithAppConfig(cfg))
			if err != nil {
				return err
			}
			return a.Wait()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径（.json/.yaml），也可通过 DRIP_CONFIG 指定")
	cmd.Flags().StringVarP(&env, "env", "e", "", "使用内置环境配置: dev|prod（未指定配置文件时生效）")
	cmd.Flags().StringVar(&httpHost, "http-host", "", "HTTP监听地址（覆盖配置）")
	cmd.Flags().IntVar(&httpPort, "http-port", 0, "HTTP端口（覆盖配置）")
	cmd.SetVersionTemplate(version.GetFullVersion() + "\n")
	return cmd
}

// loadConfig 配置文件优先；未指定文件时按 --env 使用内置配置，否则全部取默认值
func loadConfig(path, env string) (*types.AppConfig, error) {
	path = app.ResolveConfigPath(path)
	if path != "" || env == "" {
		return app.LoadConfigFile(path)
	}
	data, err := configs.Get(env)
	if err != nil {
		return nil, err
	}
	cfg, err := app.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	app.ApplyEnvOverrides(cfg)
	return cfg, nil
}
