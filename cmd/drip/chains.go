package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/client/core/output"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
)

// chainList 注册表中的链
type chainList []chain.Chain

func (l chainList) Table() output.Table {
	t := output.Table{{"Chain ID", "Name", "Native", "Super", "Super decimals", "Scheduler"}}
	for _, c := range l {
		scheduler := c.Scheduler
		if scheduler == "" {
			scheduler = "-"
		}
		t = append(t, []string{
			strconv.FormatUint(c.ChainID, 10),
			c.Name,
			c.Native.Symbol,
			c.Super.Symbol,
			strconv.Itoa(int(c.Super.Decimals)),
			scheduler,
		})
	}
	return t
}

// chainEntry 单条链信息
type chainEntry chain.Chain

func (e chainEntry) Table() output.Table {
	return chainList{chain.Chain(e)}.Table()
}

func newChainsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "chains [chain-id]",
		Short: "查看代币注册表",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.print(chainList(c.registry.Chains()))
			}
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid chain id %q", args[0])
			}
			ch, err := c.registry.Lookup(id)
			if err != nil {
				return err
			}
			return c.print(chainEntry(ch))
		},
	}
}
