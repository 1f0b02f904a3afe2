// Package chain 维护按链 ID 索引的代币注册表
//
// 注册表只向 CLI 与 API 层提供精度与符号，核心计算包从不直接查询它。
package chain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

var (
	// ErrUnknownChain 注册表中没有该链
	ErrUnknownChain = errors.New("unknown chain")

	// ErrInvalidDecimals 代币精度超出允许范围
	ErrInvalidDecimals = errors.New("invalid token decimals")

	// ErrInvalidChainConfig 链配置不合法
	ErrInvalidChainConfig = errors.New("invalid chain config")
)

// Token 代币信息
type Token struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address,omitempty"`
	Decimals uint8  `json:"decimals"`
}

// Chain 链信息
type Chain struct {
	ChainID   uint64 `json:"chain_id"`
	Name      string `json:"name"`
	Scheduler string `json:"scheduler,omitempty"` // FlowScheduler 合约地址
	Native    Token  `json:"native"`
	Super     Token  `json:"super"`
}

// Registry 代币注册表，创建后只读，可并发访问
type Registry struct {
	chains map[uint64]Chain
}

// New 以内置默认值为基础创建注册表，用户配置按 chain_id 覆盖或新增
func New(userChains []types.UserChainConfig) (*Registry, error) {
	r := &Registry{chains: make(map[uint64]Chain, len(defaultChains)+len(userChains))}
	for _, c := range defaultChains {
		r.chains[c.ChainID] = c
	}

	for i, uc := range userChains {
		if uc.ChainID == 0 {
			return nil, fmt.Errorf("%w: chains[%d]: chain_id is required", ErrInvalidChainConfig, i)
		}
		merged := r.chains[uc.ChainID]
		merged.ChainID = uc.ChainID
		if err := applyUserChain(&merged, uc); err != nil {
			return nil, fmt.Errorf("chains[%d] (%d): %w", i, uc.ChainID, err)
		}
		if merged.Name == "" {
			merged.Name = fmt.Sprintf("chain-%d", uc.ChainID)
		}
		r.chains[uc.ChainID] = merged
	}
	return r, nil
}

func applyUserChain(c *Chain, uc types.UserChainConfig) error {
	if uc.Name != nil {
		c.Name = *uc.Name
	}
	if uc.Scheduler != nil {
		if err := checkAddress(*uc.Scheduler); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		c.Scheduler = *uc.Scheduler
	}
	if err := applyUserToken(&c.Native, uc.Native); err != nil {
		return fmt.Errorf("native: %w", err)
	}
	if err := applyUserToken(&c.Super, uc.Super); err != nil {
		return fmt.Errorf("super: %w", err)
	}
	return nil
}

func applyUserToken(t *Token, ut *types.UserTokenConfig) error {
	if ut == nil {
		return nil
	}
	if ut.Symbol != nil {
		t.Symbol = *ut.Symbol
	}
	if ut.Address != nil {
		if err := checkAddress(*ut.Address); err != nil {
			return err
		}
		t.Address = *ut.Address
	}
	if ut.Decimals != nil {
		if *ut.Decimals > maxDecimals {
			return fmt.Errorf("%w: %d > %d", ErrInvalidDecimals, *ut.Decimals, maxDecimals)
		}
		t.Decimals = *ut.Decimals
	}
	return nil
}

func checkAddress(addr string) error {
	if addr == "" {
		return nil
	}
	if !strings.HasPrefix(addr, "0x") || !common.IsHexAddress(addr) {
		return fmt.Errorf("%w: bad address %q", ErrInvalidChainConfig, addr)
	}
	return nil
}

// Lookup 按链 ID 查询
func (r *Registry) Lookup(chainID uint64) (Chain, error) {
	c, ok := r.chains[chainID]
	if !ok {
		return Chain{}, fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}
	return c, nil
}

// Chains 返回按链 ID 排序的全部链
func (r *Registry) Chains() []Chain {
	out := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// TokenBySymbol 在链上按符号（不区分大小写）查找原生或超级代币
func (c Chain) TokenBySymbol(symbol string) (Token, bool) {
	switch {
	case strings.EqualFold(c.Super.Symbol, symbol):
		return c.Super, true
	case strings.EqualFold(c.Native.Symbol, symbol):
		return c.Native, true
	}
	return Token{}, false
}
