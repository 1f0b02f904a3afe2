package payroll

import (
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// ReceiverTotal 单个接收方在某代币上的累计收款
type ReceiverTotal struct {
	Receiver string `json:"receiver"`
	Units    string `json:"units"`
	Total    string `json:"total"`
}

// TokenSummary 单个 (链, 代币, 精度) 分组的汇总
//
// 金额字段同时给出精确的最小单位（*Units）与四舍五入到 2 位的展示值。
type TokenSummary struct {
	ChainID       uint64          `json:"chain_id"`
	Token         string          `json:"token"`
	Decimals      uint8           `json:"decimals"`
	InstantCount  int             `json:"instant_count"`
	StreamCount   int             `json:"stream_count"`
	ActiveStreams int             `json:"active_streams"`
	InstantUnits  string          `json:"instant_units"`
	StreamedUnits string          `json:"streamed_units"`
	TotalUnits    string          `json:"total_units"`
	InstantTotal  string          `json:"instant_total"`
	StreamedTotal string          `json:"streamed_total"`
	Total         string          `json:"total"`
	MonthlyRate   string          `json:"monthly_rate"` // 进行中的流合计每月流出
	Receivers     []ReceiverTotal `json:"receivers"`
}

// Summary 工资发放汇总
type Summary struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Records     int            `json:"records"`
	Skipped     []string       `json:"skipped"` // 无法计算的记录 ID
	Tokens      []TokenSummary `json:"tokens"`
}

type tokenKey struct {
	chainID  uint64
	token    string
	decimals uint8
}

type tokenAcc struct {
	key           tokenKey
	instantCount  int
	streamCount   int
	activeStreams int
	instant       *big.Int
	streamed      *big.Int
	activeRate    *big.Int
	receivers     map[string]*big.Int
	receiverNames map[string]string
}

// Summarize 汇总截至 now 的全部支付
//
// 流式记录按 TotalAccruedUnits(rate, start, min(end, now)) 计入；精度不同的同名代币分开统计。
// 不合法的记录不会中断汇总，其 ID 记录在 Skipped 中。
func Summarize(records []Record, now time.Time) Summary {
	accs := make(map[tokenKey]*tokenAcc)
	summary := Summary{GeneratedAt: now, Records: len(records), Skipped: []string{}}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			summary.Skipped = append(summary.Skipped, rec.ID.String())
			continue
		}
		paid := rec.PaidUnits(now)
		if paid == nil {
			summary.Skipped = append(summary.Skipped, rec.ID.String())
			continue
		}

		key := tokenKey{chainID: rec.ChainID, token: strings.ToUpper(rec.Token), decimals: rec.Decimals}
		acc, ok := accs[key]
		if !ok {
			acc = &tokenAcc{
				key:           key,
				instant:       new(big.Int),
				streamed:      new(big.Int),
				activeRate:    new(big.Int),
				receivers:     make(map[string]*big.Int),
				receiverNames: make(map[string]string),
			}
			accs[key] = acc
		}

		switch rec.Kind {
		case KindInstant:
			acc.instantCount++
			acc.instant.Add(acc.instant, paid)
		case KindStream:
			acc.streamCount++
			acc.streamed.Add(acc.streamed, paid)
			if rec.IsActive(now) {
				acc.activeStreams++
				acc.activeRate.Add(acc.activeRate, rec.FlowRate.BigInt())
			}
		}

		rk := strings.ToLower(strings.TrimSpace(rec.Receiver))
		if _, ok := acc.receivers[rk]; !ok {
			acc.receivers[rk] = new(big.Int)
			acc.receiverNames[rk] = strings.TrimSpace(rec.Receiver)
		}
		acc.receivers[rk].Add(acc.receivers[rk], paid)
	}

	summary.Tokens = make([]TokenSummary, 0, len(accs))
	for _, acc := range accs {
		summary.Tokens = append(summary.Tokens, acc.summary())
	}
	sort.Slice(summary.Tokens, func(i, j int) bool {
		a, b := summary.Tokens[i], summary.Tokens[j]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.Token != b.Token {
			return a.Token < b.Token
		}
		return a.Decimals < b.Decimals
	})
	return summary
}

func (a *tokenAcc) summary() TokenSummary {
	dec := a.key.decimals
	total := new(big.Int).Add(a.instant, a.streamed)
	monthly := new(big.Int).Mul(a.activeRate, big.NewInt(flow.SecondsPerMonth))

	receivers := make([]ReceiverTotal, 0, len(a.receivers))
	keys := make([]string, 0, len(a.receivers))
	for k := range a.receivers {
		keys = append(keys, k)
	}
	// 金额降序，相同金额按地址排序
	sort.Slice(keys, func(i, j int) bool {
		if c := a.receivers[keys[i]].Cmp(a.receivers[keys[j]]); c != 0 {
			return c > 0
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		units := a.receivers[k]
		receivers = append(receivers, ReceiverTotal{
			Receiver: a.receiverNames[k],
			Units:    units.String(),
			Total:    display(units, dec),
		})
	}

	return TokenSummary{
		ChainID:       a.key.chainID,
		Token:         a.key.token,
		Decimals:      dec,
		InstantCount:  a.instantCount,
		StreamCount:   a.streamCount,
		ActiveStreams: a.activeStreams,
		InstantUnits:  a.instant.String(),
		StreamedUnits: a.streamed.String(),
		TotalUnits:    total.String(),
		InstantTotal:  display(a.instant, dec),
		StreamedTotal: display(a.streamed, dec),
		Total:         display(total, dec),
		MonthlyRate:   display(monthly, dec),
		Receivers:     receivers,
	}
}

func display(units *big.Int, decimals uint8) string {
	return flow.FromSmallestUnitRounded(units, decimals, flow.TotalDisplayPrecision)
}
