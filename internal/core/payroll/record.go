// Package payroll aggregates instant and streamed payments into summaries and invoices.
package payroll

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// Kind 支付类型
type Kind string

const (
	KindInstant Kind = "instant" // 一次性转账
	KindStream  Kind = "stream"  // 按秒流式支付
)

var (
	// ErrInvalidRecord 支付记录字段缺失或不合法
	ErrInvalidRecord = errors.New("invalid payment record")

	// ErrNoRecords 没有可用于开票的记录
	ErrNoRecords = errors.New("no records")
)

// Record 一条支付记录
//
// instant 记录使用 Amount 与 StartTime（支付时间）；
// stream 记录使用 FlowRate、StartTime 与可选的 EndTime（nil 表示仍在进行）。
type Record struct {
	ID        uuid.UUID     `json:"id"`
	Kind      Kind          `json:"kind"`
	Sender    string        `json:"sender"`
	Receiver  string        `json:"receiver"`
	ChainID   uint64        `json:"chain_id"`
	Token     string        `json:"token"`
	Decimals  uint8         `json:"decimals"`
	Amount    string        `json:"amount,omitempty"`
	FlowRate  flow.FlowRate `json:"flow_rate"`
	StartTime time.Time     `json:"start_time"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	TxHash    string        `json:"tx_hash,omitempty"`
	Note      string        `json:"note,omitempty"`
}

// NewInstant 创建一次性支付记录
func NewInstant(sender, receiver string, chainID uint64, token string, decimals uint8, amount string, at time.Time) Record {
	return Record{
		ID:        uuid.New(),
		Kind:      KindInstant,
		Sender:    sender,
		Receiver:  receiver,
		ChainID:   chainID,
		Token:     token,
		Decimals:  decimals,
		Amount:    amount,
		StartTime: at,
	}
}

// NewStream 创建流式支付记录，end 为 nil 表示流仍在进行
func NewStream(sender, receiver string, chainID uint64, token string, decimals uint8, rate flow.FlowRate, start time.Time, end *time.Time) Record {
	return Record{
		ID:        uuid.New(),
		Kind:      KindStream,
		Sender:    sender,
		Receiver:  receiver,
		ChainID:   chainID,
		Token:     token,
		Decimals:  decimals,
		FlowRate:  rate,
		StartTime: start,
		EndTime:   end,
	}
}

// Validate 检查记录是否可参与汇总
func (r Record) Validate() error {
	if r.Receiver == "" {
		return fmt.Errorf("%w: receiver is required", ErrInvalidRecord)
	}
	if r.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidRecord)
	}
	if r.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required", ErrInvalidRecord)
	}

	switch r.Kind {
	case KindInstant:
		if _, err := flow.ToSmallestUnit(r.Amount, r.Decimals); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
	case KindStream:
		if r.FlowRate.Sign() <= 0 {
			return fmt.Errorf("%w: stream flow_rate must be positive", ErrInvalidRecord)
		}
		if r.EndTime != nil && r.EndTime.Before(r.StartTime) {
			return fmt.Errorf("%w: end_time before start_time", ErrInvalidRecord)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, r.Kind)
	}
	return nil
}

// IsActive 流在 now 时刻是否正在进行
func (r Record) IsActive(now time.Time) bool {
	if r.Kind != KindStream || r.StartTime.After(now) {
		return false
	}
	return r.EndTime == nil || r.EndTime.After(now)
}

// PaidUnits 截至 now 已支付的最小单位数量，记录无效时为 nil
func (r Record) PaidUnits(now time.Time) *big.Int {
	switch r.Kind {
	case KindInstant:
		if r.StartTime.After(now) {
			return new(big.Int)
		}
		v, err := flow.ToSmallestUnit(r.Amount, r.Decimals)
		if err != nil {
			return nil
		}
		return v
	case KindStream:
		end := now
		if r.EndTime != nil && r.EndTime.Before(now) {
			end = *r.EndTime
		}
		return flow.TotalAccruedUnits(r.FlowRate, r.StartTime, end)
	}
	return nil
}

// LoadRecords 从 JSON 数组读取支付记录
//
// 缺少 id 的记录会被分配新的 UUID；任一记录不合法时返回带序号的 ErrInvalidRecord。
func LoadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	for i := range records {
		rec := &records[i]
		rec.Kind = Kind(strings.ToLower(string(rec.Kind)))
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}

func sameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
