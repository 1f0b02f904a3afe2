package payroll

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// invoiceNamespace 发票编号的 UUIDv5 命名空间
var invoiceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("drippay/invoice"))

// LineItem 发票明细行
type LineItem struct {
	RecordID    uuid.UUID `json:"record_id"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ChainID     uint64    `json:"chain_id"`
	Token       string    `json:"token"`
	Units       string    `json:"units"`
	Amount      string    `json:"amount"`
	TxHash      string    `json:"tx_hash,omitempty"`
}

// InvoiceTotal 按代币分组的发票合计
type InvoiceTotal struct {
	ChainID  uint64 `json:"chain_id"`
	Token    string `json:"token"`
	Decimals uint8  `json:"decimals"`
	Units    string `json:"units"`
	Amount   string `json:"amount"`
}

// Invoice 面向单个接收方的收款凭证数据（渲染由调用方负责）
type Invoice struct {
	Number   string         `json:"number"`
	Receiver string         `json:"receiver"`
	IssuedAt time.Time      `json:"issued_at"`
	Items    []LineItem     `json:"items"`
	Totals   []InvoiceTotal `json:"totals"`
}

// BuildInvoice 为 receiver 生成截至 now 的发票
//
// 编号由接收方与开票时间确定性生成，同一输入重复调用得到相同编号。
func BuildInvoice(records []Record, receiver string, now time.Time) (Invoice, error) {
	inv := Invoice{
		Number:   invoiceNumber(receiver, now),
		Receiver: strings.TrimSpace(receiver),
		IssuedAt: now,
	}

	totals := make(map[tokenKey]*big.Int)
	for _, rec := range records {
		if !sameAddress(rec.Receiver, receiver) || rec.Validate() != nil {
			continue
		}
		units := rec.PaidUnits(now)
		if units == nil || units.Sign() == 0 {
			continue
		}

		inv.Items = append(inv.Items, LineItem{
			RecordID:    rec.ID,
			Kind:        rec.Kind,
			Description: describe(rec, now),
			Date:        rec.StartTime,
			ChainID:     rec.ChainID,
			Token:       rec.Token,
			Units:       units.String(),
			Amount:      display(units, rec.Decimals),
			TxHash:      rec.TxHash,
		})

		key := tokenKey{chainID: rec.ChainID, token: strings.ToUpper(rec.Token), decimals: rec.Decimals}
		if totals[key] == nil {
			totals[key] = new(big.Int)
		}
		totals[key].Add(totals[key], units)
	}

	if len(inv.Items) == 0 {
		return Invoice{}, fmt.Errorf("%w for receiver %s", ErrNoRecords, receiver)
	}

	sort.SliceStable(inv.Items, func(i, j int) bool {
		return inv.Items[i].Date.Before(inv.Items[j].Date)
	})

	for key, units := range totals {
		inv.Totals = append(inv.Totals, InvoiceTotal{
			ChainID:  key.chainID,
			Token:    key.token,
			Decimals: key.decimals,
			Units:    units.String(),
			Amount:   display(units, key.decimals),
		})
	}
	sort.Slice(inv.Totals, func(i, j int) bool {
		a, b := inv.Totals[i], inv.Totals[j]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.Token != b.Token {
			return a.Token < b.Token
		}
		return a.Decimals < b.Decimals
	})
	return inv, nil
}

func invoiceNumber(receiver string, now time.Time) string {
	seed := strings.ToLower(strings.TrimSpace(receiver)) + "|" + now.UTC().Format(time.RFC3339)
	id := uuid.NewSHA1(invoiceNamespace, []byte(seed))
	return "INV-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(id.String()[:8])
}

func describe(rec Record, now time.Time) string {
	const day = "2006-01-02"
	if rec.Kind == KindInstant {
		return fmt.Sprintf("Payment %s %s", rec.Amount, rec.Token)
	}

	end := "ongoing"
	if rec.EndTime != nil && !rec.EndTime.After(now) {
		end = rec.EndTime.UTC().Format(day)
	}
	return fmt.Sprintf("Stream %s from %s to %s", rec.Token, rec.StartTime.UTC().Format(day), end)
}
