package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/client/core/display"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/client/core/output"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// accruedResult 累计已发送金额
type accruedResult struct {
	Total string    `json:"total"`
	Units string    `json:"units"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r accruedResult) Table() output.Table {
	return output.Table{
		{"Total", "Units", "Start", "End"},
		{r.Total, r.Units, output.FormatValue(r.Start), output.FormatValue(r.End)},
	}
}

func (r accruedResult) Text() string {
	return r.Total
}

// balanceResult 某一时刻的实时余额
type balanceResult struct {
	Balance         string    `json:"balance"`
	Display         string    `json:"display"`
	DisplayDecimals int       `json:"display_decimals"`
	At              time.Time `json:"at"`
}

func (r balanceResult) Table() output.Table {
	return output.Table{
		{"Balance", "Units", "At"},
		{r.Display, r.Balance, output.FormatValue(r.At)},
	}
}

func (r balanceResult) Text() string {
	return r.Display
}

func newAccruedCmd(c *cli) *cobra.Command {
	var (
		token      tokenFlags
		rate       string
		start, end string
	)
	cmd := &cobra.Command{
		Use:   "accrued",
		Short: "计算流的累计发送额",
		Long:  "计算流在 [start, end] 内发送的总额，只计整秒。未指定 --end 时按当前时间计算进行中的流。",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decimals, err := token.resolve(cmd, c.registry)
			if err != nil {
				return err
			}
			r, err := flow.ParseFlowRate(rate)
			if err != nil {
				return err
			}
			from, err := parseTime(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			to, err := c.nowOr(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			units := flow.TotalAccruedUnits(r, from, to)
			return c.print(accruedResult{
				Total: flow.FromSmallestUnitRounded(units, decimals, c.display.TotalPrecision),
				Units: units.String(),
				Start: from,
				End:   to,
			})
		},
	}
	token.register(cmd)
	cmd.Flags().StringVar(&rate, "flow-rate", "", "流速（最小单位/秒）")
	cmd.Flags().StringVar(&start, "start", "", "流开始时间（RFC3339 或 Unix 秒）")
	cmd.Flags().StringVar(&end, "end", "", "结束时间（默认当前时间）")
	_ = cmd.MarkFlagRequired("flow-rate")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newBalanceCmd(c *cli) *cobra.Command {
	var (
		token    tokenFlags
		starting string
		since    string
		rate     string
		at       string
		tickMs   int
		watch    bool
	)
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "计算实时余额",
		Long: `由链上快照（余额与快照时间）和净流速计算实时余额。

--watch 在终端中持续刷新余额，按 Ctrl+C 退出。`,
		Example: "  drip balance --starting-balance 1234000000 --since 1700000000 --flow-rate 13888 --decimals 6 --watch",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decimals, err := token.resolve(cmd, c.registry)
			if err != nil {
				return err
			}
			balance, ok := new(big.Int).SetString(starting, 10)
			if !ok {
				return fmt.Errorf("%w: --starting-balance %q", flow.ErrInvalidAmount, starting)
			}
			r, err := flow.ParseFlowRate(rate)
			if err != nil {
				return err
			}
			snapshot, err := parseTime(since)
			if err != nil {
				return fmt.Errorf("--since: %w", err)
			}

			tick := c.display.Tick
			if cmd.Flags().Changed("tick-ms") {
				if tickMs <= 0 {
					return fmt.Errorf("--tick-ms must be positive")
				}
				tick = time.Duration(tickMs) * time.Millisecond
			}

			fb := &display.FlowingBalance{
				StartingBalance:     balance,
				StartingBalanceTime: snapshot,
				FlowRate:            r,
				Decimals:            decimals,
				Tick:                tick,
				Now:                 c.now,
			}

			if watch {
				return c.watch(cmd.Context(), fb)
			}

			now, err := c.nowOr(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			return c.print(balanceResult{
				Balance:         fb.Balance(now).String(),
				Display:         fb.Format(now),
				DisplayDecimals: fb.DisplayDecimals(),
				At:              now,
			})
		},
	}
	token.register(cmd)
	cmd.Flags().StringVar(&starting, "starting-balance", "0", "快照余额（最小单位）")
	cmd.Flags().StringVar(&since, "since", "", "快照时间（RFC3339 或 Unix 秒）")
	cmd.Flags().StringVar(&rate, "flow-rate", "", "净流速（最小单位/秒，可为负）")
	cmd.Flags().StringVar(&at, "at", "", "计算时刻（默认当前时间）")
	cmd.Flags().IntVar(&tickMs, "tick-ms", 0, "刷新间隔毫秒（默认取展示配置）")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "持续刷新显示")
	_ = cmd.MarkFlagRequired("since")
	_ = cmd.MarkFlagRequired("flow-rate")
	return cmd
}

// watch 在终端区域中持续渲染余额，直到收到中断信号
func (c *cli) watch(parent context.Context, fb *display.FlowingBalance) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return fmt.Errorf("start display: %w", err)
	}
	c.formatter.PrintInfo("按 Ctrl+C 退出，显示 " + strconv.Itoa(fb.DisplayDecimals()) + " 位小数")

	fb.Run(ctx, func(s string) {
		area.Update(pterm.LightGreen(s))
	})
	return area.Stop()
}
