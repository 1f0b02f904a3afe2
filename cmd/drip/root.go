package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/client/core/output"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app/version"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/display"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/infrastructure/clock"
	corelog "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/infrastructure/log"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath   string // 配置文件
	OutputFormat string // 输出格式
	Silent       bool   // 静默模式
}

// cli 单次命令执行共享的状态，由根命令的 PersistentPreRunE 填充
type cli struct {
	flags GlobalFlags

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	registry  *chain.Registry
	display   *display.DisplayOptions
	formatter *output.Formatter
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cli{stdout: os.Stdout, stderr: os.Stderr, now: clock.NewSystemClock().Now})
}

func newRootCmdWith(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "drip",
		Short: "DripPay 流速计算命令行工具",
		Long: `drip - Superfluid 风格资金流的离线计算工具

- 在"每月金额"与每秒流速（最小单位）之间换算
- 计算流的累计发送额与实时余额
- 校验 FlowScheduler 调度参数并生成 calldata
- 汇总工资发放记录并生成发票数据

所有计算均在本地完成，不连接任何链节点。`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.PersistentFlags().StringVarP(&c.flags.ConfigPath, "config", "c", "", "配置文件路径（.json/.yaml），也可通过 DRIP_CONFIG 指定")
	root.PersistentFlags().StringVarP(&c.flags.OutputFormat, "output", "o", "json", "输出格式: json|pretty|table|text")
	root.PersistentFlags().BoolVar(&c.flags.Silent, "silent", false, "静默模式 (仅输出结果)")
	root.SetVersionTemplate(version.GetFullVersion() + "\n")
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.AddCommand(
		newFlowRateCmd(c),
		newAccruedCmd(c),
		newBalanceCmd(c),
		newScheduleCmd(c),
		newPayrollCmd(c),
		newChainsCmd(c),
	)
	return root
}

// setup 加载配置并初始化输出格式化器
func (c *cli) setup() error {
	// 命令行工具不向控制台打印日志
	if err := os.Setenv(corelog.CLIModeEnv, "true"); err != nil {
		return err
	}

	format, err := output.ParseFormat(c.flags.OutputFormat)
	if err != nil {
		return err
	}
	c.formatter = output.NewFormatter(format, c.stdout)
	c.formatter.SetLogWriter(c.stderr)
	c.formatter.SetSilent(c.flags.Silent)

	if err := app.LoadDotEnv(); err != nil {
		return fmt.Errorf("加载 .env: %w", err)
	}
	cfg, err := app.LoadConfigFile(app.ResolveConfigPath(c.flags.ConfigPath))
	if err != nil {
		return fmt.Errorf("加载配置: %w", err)
	}
	provider := config.NewProvider(cfg)
	if err := provider.Validate(); err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}

	c.registry = provider.GetChains()
	c.display = provider.GetDisplay()
	return nil
}

func (c *cli) print(data interface{}) error {
	return c.formatter.Print(data)
}
