package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/client/core/output"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/schedule"
)

// scheduleFlags 调度参数标志
type scheduleFlags struct {
	superToken    string
	receiver      string
	startDate     string
	startMaxDelay uint32
	flowRate      string
	startAmount   string
	endDate       string
	userData      string
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.superToken, "super-token", "", "超级代币地址")
	cmd.Flags().StringVar(&f.receiver, "receiver", "", "接收方地址")
	cmd.Flags().StringVar(&f.startDate, "start", "", "开始时间（RFC3339 或 Unix 秒）")
	cmd.Flags().Uint32Var(&f.startMaxDelay, "start-max-delay", 0, "允许的最大启动延迟（秒）")
	cmd.Flags().StringVar(&f.flowRate, "flow-rate", "", "流速（最小单位/秒）")
	cmd.Flags().StringVar(&f.startAmount, "start-amount", "", "开始时一次性支付的金额（最小单位）")
	cmd.Flags().StringVar(&f.endDate, "end", "", "结束时间（RFC3339 或 Unix 秒）")
	cmd.Flags().StringVar(&f.userData, "user-data", "", "附加数据（0x 十六进制）")
}

// params 由标志构造调度参数，未给出的可选项保持为空
func (f *scheduleFlags) params(cmd *cobra.Command) (schedule.Params, error) {
	p := schedule.Params{
		SuperToken: f.superToken,
		Receiver:   f.receiver,
	}

	var err error
	if p.StartDate, err = optionalTime(f.startDate); err != nil {
		return p, fmt.Errorf("--start: %w", err)
	}
	if p.EndDate, err = optionalTime(f.endDate); err != nil {
		return p, fmt.Errorf("--end: %w", err)
	}
	if cmd.Flags().Changed("start-max-delay") {
		delay := f.startMaxDelay
		p.StartMaxDelay = &delay
	}
	if f.flowRate != "" {
		rate, err := flow.ParseFlowRate(f.flowRate)
		if err != nil {
			return p, err
		}
		p.FlowRate = &rate
	}
	if f.startAmount != "" {
		amount, ok := new(big.Int).SetString(f.startAmount, 10)
		if !ok {
			return p, fmt.Errorf("%w: --start-amount %q", flow.ErrInvalidAmount, f.startAmount)
		}
		p.StartAmount = amount
	}
	if f.userData != "" {
		data, err := hexutil.Decode(f.userData)
		if err != nil {
			return p, fmt.Errorf("--user-data: %w", err)
		}
		p.UserData = data
	}
	return p, nil
}

// validationOutput 校验结果的终端展示
type validationOutput struct {
	schedule.ValidationResult
}

func (v validationOutput) Table() output.Table {
	t := output.Table{{"#", "Problem"}}
	for i, msg := range v.Errors {
		t = append(t, []string{fmt.Sprintf("%d", i+1), msg})
	}
	return t
}

func (v validationOutput) Text() string {
	if v.IsValid {
		return "valid"
	}
	return strings.Join(v.Errors, "\n")
}

// calldataOutput calldata 生成结果
type calldataOutput struct {
	Method string        `json:"method"`
	To     string        `json:"to,omitempty"`
	Data   hexutil.Bytes `json:"data"`
}

func (o calldataOutput) Table() output.Table {
	return output.Table{{"Method", "To", "Data"}, {o.Method, o.To, o.Data.String()}}
}

func (o calldataOutput) Text() string {
	return o.Data.String()
}

func newScheduleCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "FlowScheduler 调度参数",
		Long:  "提交上链前本地校验流调度参数，并生成 FlowScheduler 合约调用的 calldata。本工具不发送交易。",
	}
	cmd.AddCommand(newScheduleValidateCmd(c), newScheduleCalldataCmd(c))
	return cmd
}

func newScheduleValidateCmd(c *cli) *cobra.Command {
	var f scheduleFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "校验调度参数，一次列出全部问题",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.params(cmd)
			if err != nil {
				return err
			}
			result := schedule.Validate(p, c.now())
			if err := c.print(validationOutput{result}); err != nil {
				return err
			}
			// 校验未通过时以非零状态退出
			return result.Err()
		},
	}
	f.register(cmd)
	return cmd
}

func newScheduleCalldataCmd(c *cli) *cobra.Command {
	var (
		f       scheduleFlags
		method  string
		sender  string
		chainID uint64
	)
	cmd := &cobra.Command{
		Use:   "calldata",
		Short: "生成 FlowScheduler calldata",
		Long: `生成 FlowScheduler 合约调用的 calldata。

--method:
  create          createFlowSchedule（先校验参数）
  delete          deleteFlowSchedule
  execute_create  executeCreateFlow（需要 --sender）
  execute_delete  executeDeleteFlow（需要 --sender）

给出 --chain 时从注册表解析调度合约地址。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.params(cmd)
			if err != nil {
				return err
			}

			var to string
			if cmd.Flags().Changed("chain") {
				ch, err := c.registry.Lookup(chainID)
				if err != nil {
					return err
				}
				to = ch.Scheduler
			}

			var data []byte
			switch method {
			case "create":
				data, err = schedule.EncodeCreateFlowSchedule(p, c.now())
			case "delete":
				data, err = schedule.EncodeDeleteFlowSchedule(p.SuperToken, p.Receiver)
			case "execute_create":
				data, err = schedule.EncodeExecuteCreateFlow(p.SuperToken, sender, p.Receiver, p.UserData)
			case "execute_delete":
				data, err = schedule.EncodeExecuteDeleteFlow(p.SuperToken, sender, p.Receiver, p.UserData)
			default:
				err = fmt.Errorf("unknown method %q (expected create|delete|execute_create|execute_delete)", method)
			}
			if err != nil {
				return err
			}
			if to == "" && cmd.Flags().Changed("chain") {
				c.formatter.PrintWarning("该链未配置调度合约地址")
			}
			return c.print(calldataOutput{Method: method, To: to, Data: data})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&method, "method", "create", "调用方法: create|delete|execute_create|execute_delete")
	cmd.Flags().StringVar(&sender, "sender", "", "发送方地址（execute_* 方法）")
	cmd.Flags().Uint64Var(&chainID, "chain", 0, "链ID，用于解析调度合约地址")
	return cmd
}
