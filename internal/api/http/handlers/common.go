// Package handlers provides HTTP API handlers for the DripPay flow-rate engine
package handlers

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/payroll"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/schedule"
)

// ==================== 📋 标准API响应结构 ====================

// StandardAPIResponse 标准API响应格式
type StandardAPIResponse struct {
	Success bool        `json:"success"`           // 操作是否成功
	Data    interface{} `json:"data,omitempty"`    // 响应数据（成功时）
	Message string      `json:"message,omitempty"` // 成功消息或简要说明
	Error   *APIError   `json:"error,omitempty"`   // 错误信息（失败时）
}

// APIError 标准错误结构
type APIError struct {
	Code    string `json:"code"`              // 错误代码（用于程序化处理）
	Message string `json:"message"`           // 用户友好的错误消息
	Details string `json:"details,omitempty"` // 详细错误信息（调试用）
}

// ==================== 🎯 错误代码常量 ====================

// 请求相关错误
const (
	ErrorCodeInvalidRequest   = "INVALID_REQUEST"
	ErrorCodeInvalidParameter = "INVALID_PARAMETER"
	ErrorCodeMissingParameter = "MISSING_PARAMETER"
	ErrorCodeInvalidJSON      = "INVALID_JSON"
)

// 计算相关错误
const (
	ErrorCodeInvalidAmount   = "INVALID_AMOUNT"
	ErrorCodeInvalidInterval = "INVALID_INTERVAL"
	ErrorCodeInvalidFlowRate = "INVALID_FLOW_RATE"
	ErrorCodeInvalidTimeUnit = "INVALID_TIME_UNIT"
	ErrorCodeInvalidSchedule = "INVALID_SCHEDULE"
	ErrorCodeInvalidRecord   = "INVALID_RECORD"
)

// 资源相关错误
const (
	ErrorCodeChainNotFound   = "CHAIN_NOT_FOUND"
	ErrorCodeRecordsNotFound = "RECORDS_NOT_FOUND"
)

// 系统相关错误
const (
	ErrorCodeInternalError = "INTERNAL_ERROR"
)

// Clock 返回当前时间，测试中可替换
type Clock func() time.Time

// respondOK 写入成功响应
func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, StandardAPIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError 写入错误响应
func respondError(c *gin.Context, status int, code, message string, err error) {
	apiErr := &APIError{Code: code, Message: message}
	if err != nil {
		apiErr.Details = err.Error()
		_ = c.Error(err)
	}
	c.JSON(status, StandardAPIResponse{Success: false, Error: apiErr})
}

// respondDomainError 将领域错误映射为错误码与状态码
func respondDomainError(c *gin.Context, err error) {
	status, code, message := classify(err)
	respondError(c, status, code, message, err)
}

// respondBindError 处理请求体解析错误；自定义类型的解析错误按领域错误返回
func respondBindError(c *gin.Context, err error) {
	if status, code, message := classify(err); code != ErrorCodeInternalError {
		respondError(c, status, code, message, err)
		return
	}
	respondError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "请求体格式无效", err)
}

func classify(err error) (int, string, string) {
	switch {
	// 组合错误按外层语义归类
	case errors.Is(err, schedule.ErrInvalidParams), errors.Is(err, schedule.ErrDateOutOfRange):
		return http.StatusBadRequest, ErrorCodeInvalidSchedule, "调度参数无效"
	case errors.Is(err, payroll.ErrInvalidRecord):
		return http.StatusBadRequest, ErrorCodeInvalidRecord, "支付记录无效"
	case errors.Is(err, flow.ErrInvalidAmount):
		return http.StatusBadRequest, ErrorCodeInvalidAmount, "金额格式无效"
	case errors.Is(err, flow.ErrInvalidInterval):
		return http.StatusBadRequest, ErrorCodeInvalidInterval, "时间区间无效"
	case errors.Is(err, flow.ErrInvalidFlowRate):
		return http.StatusBadRequest, ErrorCodeInvalidFlowRate, "流速无效"
	case errors.Is(err, flow.ErrInvalidTimeUnit):
		return http.StatusBadRequest, ErrorCodeInvalidTimeUnit, "时间单位无效"
	case errors.Is(err, payroll.ErrNoRecords):
		return http.StatusNotFound, ErrorCodeRecordsNotFound, "没有匹配的支付记录"
	case errors.Is(err, chain.ErrUnknownChain):
		return http.StatusNotFound, ErrorCodeChainNotFound, "未知的链"
	case errors.Is(err, errMissingDecimals):
		return http.StatusBadRequest, ErrorCodeMissingParameter, "缺少代币精度"
	case errors.Is(err, errInvalidParameter):
		return http.StatusBadRequest, ErrorCodeInvalidParameter, "参数无效"
	}
	return http.StatusInternalServerError, ErrorCodeInternalError, "服务器内部错误"
}

var (
	errMissingDecimals  = errors.New("decimals or chain_id is required")
	errInvalidParameter = errors.New("invalid parameter")
)

// TokenSpec 指定代币精度：直接给出 decimals，或给出 chain_id（可选 token 符号）由注册表解析
type TokenSpec struct {
	Decimals *uint8  `json:"decimals,omitempty" form:"decimals"`
	ChainID  *uint64 `json:"chain_id,omitempty" form:"chain_id"`
	Token    string  `json:"token,omitempty" form:"token"` // 默认为该链的超级代币
}

// resolveDecimals 解析代币精度，从不假设默认值
func resolveDecimals(registry *chain.Registry, spec TokenSpec) (uint8, error) {
	if spec.Decimals != nil {
		return *spec.Decimals, nil
	}
	if spec.ChainID == nil {
		return 0, errMissingDecimals
	}
	if registry == nil {
		return 0, chain.ErrUnknownChain
	}
	c, err := registry.Lookup(*spec.ChainID)
	if err != nil {
		return 0, err
	}
	if spec.Token == "" {
		return c.Super.Decimals, nil
	}
	tok, ok := c.TokenBySymbol(spec.Token)
	if !ok {
		return 0, fmt.Errorf("%w: token %s not registered on %s", errInvalidParameter, spec.Token, c.Name)
	}
	return tok.Decimals, nil
}

// parseUnits 解析最小单位整数字符串，空串视为 0
func parseUnits(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer amount in smallest units", flow.ErrInvalidAmount, s)
	}
	return v, nil
}
