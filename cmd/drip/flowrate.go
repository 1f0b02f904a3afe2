package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/client/core/output"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// unitAmount 某个时间单位下的金额
type unitAmount struct {
	Unit   flow.TimeUnit `json:"unit"`
	Amount string        `json:"amount"`
}

// flowRateResult 流速换算结果，附带各时间单位的回显金额
type flowRateResult struct {
	FlowRate flow.FlowRate `json:"flow_rate"`
	Decimals uint8         `json:"decimals"`
	PerUnit  []unitAmount  `json:"per_unit"`
}

func (r flowRateResult) Table() output.Table {
	t := output.Table{{"Unit", "Amount"}, {"second (smallest units)", r.FlowRate.String()}}
	for _, u := range r.PerUnit {
		t = append(t, []string{u.Unit.String(), u.Amount})
	}
	return t
}

func (r flowRateResult) Text() string {
	return r.FlowRate.String()
}

func (c *cli) flowRateResult(rate flow.FlowRate, decimals uint8) flowRateResult {
	res := flowRateResult{FlowRate: rate, Decimals: decimals}
	for _, u := range flow.TimeUnits() {
		res.PerUnit = append(res.PerUnit, unitAmount{
			Unit:   u,
			Amount: flow.ToAmountPerUnit(rate, u, decimals, c.display.RatePrecision),
		})
	}
	return res
}

// displayResult 流速按时间单位展示的结果
type displayResult struct {
	Amount    string        `json:"amount"`
	Unit      flow.TimeUnit `json:"unit"`
	Precision int           `json:"precision"`
}

func (r displayResult) Table() output.Table {
	return output.Table{{"Amount", "Unit"}, {r.Amount, "per " + r.Unit.String()}}
}

func (r displayResult) Text() string {
	return r.Amount
}

func newFlowRateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowrate",
		Short: "流速换算",
		Long:  "在每时间单位金额与每秒流速（最小单位）之间换算。一个月按 30 天计。",
	}
	cmd.AddCommand(newFromAmountCmd(c), newFromTotalCmd(c), newDisplayCmd(c))
	return cmd
}

func newFromAmountCmd(c *cli) *cobra.Command {
	var (
		token tokenFlags
		unit  string
	)
	cmd := &cobra.Command{
		Use:     "from-amount <amount>",
		Short:   "由每时间单位金额计算流速",
		Example: "  drip flowrate from-amount 100 --unit month --decimals 18",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decimals, err := token.resolve(cmd, c.registry)
			if err != nil {
				return err
			}
			u, err := flow.ParseTimeUnit(unit)
			if err != nil {
				return err
			}
			rate, err := flow.FromAmountPerUnit(args[0], u, decimals)
			if err != nil {
				return err
			}
			return c.print(c.flowRateResult(rate, decimals))
		},
	}
	token.register(cmd)
	cmd.Flags().StringVar(&unit, "unit", string(flow.Month), "时间单位: hour|day|week|month")
	return cmd
}

func newFromTotalCmd(c *cli) *cobra.Command {
	var (
		token      tokenFlags
		start, end string
	)
	cmd := &cobra.Command{
		Use:     "from-total <total>",
		Short:   "由区间总额计算流速",
		Example: "  drip flowrate from-total 1000 --start 2025-01-01T00:00:00Z --end 2025-02-01T00:00:00Z --decimals 6",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decimals, err := token.resolve(cmd, c.registry)
			if err != nil {
				return err
			}
			from, err := parseTime(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			to, err := parseTime(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			rate, err := flow.FromTotalOverPeriod(args[0], from, to, decimals)
			if err != nil {
				return err
			}
			return c.print(c.flowRateResult(rate, decimals))
		},
	}
	token.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "开始时间（RFC3339 或 Unix 秒）")
	cmd.Flags().StringVar(&end, "end", "", "结束时间（RFC3339 或 Unix 秒）")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newDisplayCmd(c *cli) *cobra.Command {
	var (
		token     tokenFlags
		unit      string
		precision int
	)
	cmd := &cobra.Command{
		Use:   "display <flow_rate>",
		Short: "将流速换算为每时间单位金额",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decimals, err := token.resolve(cmd, c.registry)
			if err != nil {
				return err
			}
			rate, err := flow.ParseFlowRate(args[0])
			if err != nil {
				return err
			}
			u, err := flow.ParseTimeUnit(unit)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("precision") {
				precision = c.display.RatePrecision
			}
			if precision < 0 || precision > flow.MaxDisplayDecimals {
				return fmt.Errorf("--precision must be between 0 and %d", flow.MaxDisplayDecimals)
			}
			return c.print(displayResult{
				Amount:    flow.ToAmountPerUnit(rate, u, decimals, precision),
				Unit:      u,
				Precision: precision,
			})
		},
	}
	token.register(cmd)
	cmd.Flags().StringVar(&unit, "unit", string(flow.Month), "时间单位: hour|day|week|month")
	cmd.Flags().IntVar(&precision, "precision", 0, "保留小数位（默认取展示配置）")
	return cmd
}
