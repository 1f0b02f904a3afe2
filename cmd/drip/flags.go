package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
)

var errMissingDecimals = errors.New("token decimals unknown: pass --decimals or --chain")

// tokenFlags 指定代币精度：--decimals 直接给出，或 --chain（可选 --token）从注册表解析
type tokenFlags struct {
	decimals uint8
	chainID  uint64
	token    string
}

func (f *tokenFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint8Var(&f.decimals, "decimals", 0, "代币精度（小数位数）")
	cmd.Flags().Uint64Var(&f.chainID, "chain", 0, "链ID，从注册表解析精度")
	cmd.Flags().StringVar(&f.token, "token", "", "代币符号（默认为该链的超级代币）")
}

// resolve 解析代币精度，从不假设默认值
func (f *tokenFlags) resolve(cmd *cobra.Command, registry *chain.Registry) (uint8, error) {
	if cmd.Flags().Changed("decimals") {
		return f.decimals, nil
	}
	if !cmd.Flags().Changed("chain") {
		return 0, errMissingDecimals
	}
	c, err := registry.Lookup(f.chainID)
	if err != nil {
		return 0, err
	}
	if f.token == "" {
		return c.Super.Decimals, nil
	}
	tok, ok := c.TokenBySymbol(f.token)
	if !ok {
		return 0, fmt.Errorf("token %s not registered on %s", f.token, c.Name)
	}
	return tok.Decimals, nil
}

// parseTime 接受 RFC3339 时间或 Unix 秒
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time")
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected RFC3339 or unix seconds)", s)
	}
	return t, nil
}

// optionalTime 空字符串返回 nil
func optionalTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nowOr 解析 --now，未给出时使用当前时间
func (c *cli) nowOr(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return c.now(), nil
	}
	return parseTime(s)
}
