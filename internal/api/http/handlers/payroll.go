package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/payroll"
)

// PayrollHandler 支付汇总与发票端点处理器
type PayrollHandler struct {
	logger *zap.Logger
	now    Clock
}

// NewPayrollHandler 创建支付汇总处理器
func NewPayrollHandler(logger *zap.Logger, now Clock) *PayrollHandler {
	if now == nil {
		now = time.Now
	}
	return &PayrollHandler{logger: logger, now: now}
}

// RegisterRoutes 注册支付汇总路由
func (h *PayrollHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/payroll")
	{
		g.POST("/summary", h.Summary)
		g.POST("/invoice", h.Invoice)
	}
}

// PayrollRequest 支付记录请求，records 与 LoadRecords 的输入格式相同
type PayrollRequest struct {
	Records  json.RawMessage `json:"records" binding:"required"`
	Now      *time.Time      `json:"now,omitempty"`
	Receiver string          `json:"receiver,omitempty"` // 仅发票使用
}

func (h *PayrollHandler) load(c *gin.Context) ([]payroll.Record, time.Time, PayrollRequest, bool) {
	var req PayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return nil, time.Time{}, req, false
	}
	records, err := payroll.LoadRecords(bytes.NewReader(req.Records))
	if err != nil {
		respondDomainError(c, err)
		return nil, time.Time{}, req, false
	}
	now := h.now()
	if req.Now != nil {
		now = *req.Now
	}
	return records, now, req, true
}

// Summary 处理 POST /payroll/summary
func (h *PayrollHandler) Summary(c *gin.Context) {
	records, now, _, ok := h.load(c)
	if !ok {
		return
	}

	summary := payroll.Summarize(records, now)
	if len(summary.Skipped) > 0 {
		h.logger.Warn("汇总时跳过无效记录", zap.Strings("records", summary.Skipped))
	}
	respondOK(c, summary, "")
}

// Invoice 处理 POST /payroll/invoice
func (h *PayrollHandler) Invoice(c *gin.Context) {
	records, now, req, ok := h.load(c)
	if !ok {
		return
	}
	if req.Receiver == "" {
		respondDomainError(c, fmt.Errorf("%w: receiver is required", errInvalidParameter))
		return
	}

	inv, err := payroll.BuildInvoice(records, req.Receiver, now)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, inv, "")
}
