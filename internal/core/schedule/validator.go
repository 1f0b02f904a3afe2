// Package schedule validates and encodes FlowScheduler requests.
//
// 调度请求在提交上链前先做本地校验，一次返回全部问题，避免为必然回滚的交易支付 gas。
// 本包只生成/校验参数与 calldata，不发送任何交易。
package schedule

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// Params 创建流调度所需的全部输入
//
// 由调用方构造，校验后原样交给外部调度合约客户端；本包不保存也不修改它。
type Params struct {
	SuperToken    string         `json:"super_token"`
	Receiver      string         `json:"receiver"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	StartMaxDelay *uint32        `json:"start_max_delay,omitempty"` // 秒
	FlowRate      *flow.FlowRate `json:"flow_rate,omitempty"`
	StartAmount   *big.Int       `json:"start_amount,omitempty"` // 开始时一次性支付的金额（最小单位）
	EndDate       *time.Time     `json:"end_date,omitempty"`
	UserData      []byte         `json:"user_data,omitempty"`
}

// ValidationResult 校验结果，Errors 按检查顺序列出全部问题
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Err 将结果转换为 error，校验通过时返回 nil
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, msg := range r.Errors {
		errs = append(errs, errors.New(msg))
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}

// ErrInvalidParams 调度参数未通过校验
var ErrInvalidParams = errors.New("invalid schedule params")

// IsAddress 检查是否为 0x 前缀的 20 字节十六进制账户地址（仅格式，不检查链上状态）
func IsAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	return common.IsHexAddress(s)
}

// Validate 校验调度参数
//
// 从不返回错误：所有适用的检查都会执行，调用方可以一次展示全部问题。
func Validate(p Params, now time.Time) ValidationResult {
	errs := []string{}
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if !IsAddress(p.SuperToken) {
		add("super token %q is not a valid address", p.SuperToken)
	}
	if !IsAddress(p.Receiver) {
		add("receiver %q is not a valid address", p.Receiver)
	}

	if p.StartDate != nil && !p.StartDate.After(now) {
		add("start date %s must be in the future", p.StartDate.UTC().Format(time.RFC3339))
	}
	if p.EndDate != nil && !p.EndDate.After(now) {
		add("end date %s must be in the future", p.EndDate.UTC().Format(time.RFC3339))
	}
	if p.StartDate != nil && p.EndDate != nil && !p.StartDate.Before(*p.EndDate) {
		add("start date must be before end date")
	}

	rateMissing := p.FlowRate == nil || p.FlowRate.IsZero()
	if p.StartDate != nil && rateMissing {
		add("flow rate is required when a start date is set")
	}
	// 有开始日期的零流速已在上一条报告
	if p.FlowRate != nil && (p.FlowRate.Sign() < 0 || (p.FlowRate.IsZero() && p.StartDate == nil)) {
		add("flow rate must be greater than zero, got %s", p.FlowRate.String())
	}

	if p.StartAmount != nil && p.StartAmount.Sign() < 0 {
		add("start amount must not be negative, got %s", p.StartAmount.String())
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
