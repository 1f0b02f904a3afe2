package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/client/core/output"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/payroll"
)

// summaryOutput 工资汇总的终端展示
type summaryOutput struct {
	payroll.Summary
}

func (s summaryOutput) Table() output.Table {
	t := output.Table{{"Chain", "Token", "Instant", "Streamed", "Total", "Active streams", "Monthly outflow"}}
	for _, tok := range s.Tokens {
		t = append(t, []string{
			strconv.FormatUint(tok.ChainID, 10),
			tok.Token,
			tok.InstantTotal,
			tok.StreamedTotal,
			tok.Total,
			strconv.Itoa(tok.ActiveStreams),
			tok.MonthlyRate,
		})
	}
	return t
}

// invoiceOutput 发票的终端展示
type invoiceOutput struct {
	payroll.Invoice
}

func (inv invoiceOutput) Table() output.Table {
	t := output.Table{{"Date", "Description", "Token", "Amount"}}
	for _, item := range inv.Items {
		t = append(t, []string{output.FormatValue(item.Date), item.Description, item.Token, item.Amount})
	}
	for _, total := range inv.Totals {
		t = append(t, []string{"", "Total", total.Token, total.Amount})
	}
	return t
}

func newPayrollCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "工资发放记录汇总",
		Long:  "读取 JSON 格式的支付记录数组（一次性支付与流式支付），生成汇总或面向单个接收方的发票数据。",
	}
	cmd.AddCommand(newPayrollSummaryCmd(c), newPayrollInvoiceCmd(c))
	return cmd
}

// recordFlags 记录来源与计算时刻
type recordFlags struct {
	file string
	now  string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "记录文件（JSON 数组），- 表示标准输入")
	cmd.Flags().StringVar(&f.now, "now", "", "计算时刻（默认当前时间）")
	_ = cmd.MarkFlagRequired("file")
}

func (f *recordFlags) load(cmd *cobra.Command) ([]payroll.Record, error) {
	var r io.Reader
	if f.file == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(f.file)
		if err != nil {
			return nil, fmt.Errorf("打开记录文件: %w", err)
		}
		defer file.Close()
		r = file
	}
	return payroll.LoadRecords(r)
}

func newPayrollSummaryCmd(c *cli) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "汇总一次性支付与流式支付",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := f.load(cmd)
			if err != nil {
				return err
			}
			now, err := c.nowOr(f.now)
			if err != nil {
				return fmt.Errorf("--now: %w", err)
			}

			summary := payroll.Summarize(records, now)
			if n := len(summary.Skipped); n > 0 {
				c.formatter.PrintWarning(fmt.Sprintf("跳过 %d 条无效记录", n))
			}
			return c.print(summaryOutput{summary})
		},
	}
	f.register(cmd)
	return cmd
}

func newPayrollInvoiceCmd(c *cli) *cobra.Command {
	var (
		f        recordFlags
		receiver string
	)
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "为接收方生成发票数据",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := f.load(cmd)
			if err != nil {
				return err
			}
			now, err := c.nowOr(f.now)
			if err != nil {
				return fmt.Errorf("--now: %w", err)
			}

			inv, err := payroll.BuildInvoice(records, receiver, now)
			if err != nil {
				return err
			}
			return c.print(invoiceOutput{inv})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&receiver, "receiver", "", "接收方地址")
	_ = cmd.MarkFlagRequired("receiver")
	return cmd
}
