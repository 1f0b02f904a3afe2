package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/display"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// FlowRateHandler 流速换算端点处理器
type FlowRateHandler struct {
	logger   *zap.Logger
	registry *chain.Registry
	display  *display.DisplayOptions
}

// NewFlowRateHandler 创建流速换算处理器
func NewFlowRateHandler(logger *zap.Logger, registry *chain.Registry, opts *display.DisplayOptions) *FlowRateHandler {
	return &FlowRateHandler{logger: logger, registry: registry, display: opts}
}

// RegisterRoutes 注册流速路由
func (h *FlowRateHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/flowrate")
	{
		g.POST("/amount-per-unit", h.FromAmountPerUnit)
		g.POST("/total-over-period", h.FromTotalOverPeriod)
		g.GET("/display", h.Display)
	}
}

// AmountPerUnitRequest 按时间单位金额换算请求
type AmountPerUnitRequest struct {
	TokenSpec
	Amount string `json:"amount" binding:"required"`
	Unit   string `json:"unit" binding:"required"`
}

// TotalOverPeriodRequest 按区间总额换算请求
type TotalOverPeriodRequest struct {
	TokenSpec
	Total string    `json:"total" binding:"required"`
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// FlowRateResponse 流速换算结果
type FlowRateResponse struct {
	FlowRate flow.FlowRate `json:"flow_rate"`
	Decimals uint8         `json:"decimals"`
	Monthly  string        `json:"monthly"` // 按 30 天月份回显的金额
}

// FromAmountPerUnit 处理 POST /flowrate/amount-per-unit
func (h *FlowRateHandler) FromAmountPerUnit(c *gin.Context) {
	var req AmountPerUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	decimals, err := resolveDecimals(h.registry, req.TokenSpec)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	unit, err := flow.ParseTimeUnit(req.Unit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	rate, err := flow.FromAmountPerUnit(req.Amount, unit, decimals)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.logger.Debug("流速换算完成",
		zap.String("amount", req.Amount),
		zap.String("unit", unit.String()),
		zap.String("flow_rate", rate.String()))
	respondOK(c, h.response(rate, decimals), "")
}

// FromTotalOverPeriod 处理 POST /flowrate/total-over-period
func (h *FlowRateHandler) FromTotalOverPeriod(c *gin.Context) {
	var req TotalOverPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	decimals, err := resolveDecimals(h.registry, req.TokenSpec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	rate, err := flow.FromTotalOverPeriod(req.Total, req.Start, req.End, decimals)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, h.response(rate, decimals), "")
}

// DisplayResponse 流速展示结果
type DisplayResponse struct {
	Amount    string `json:"amount"`
	Unit      string `json:"unit"`
	Precision int    `json:"precision"`
}

// Display 处理 GET /flowrate/display?flow_rate=&unit=&decimals=&precision=
func (h *FlowRateHandler) Display(c *gin.Context) {
	var spec TokenSpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		respondError(c, http.StatusBadRequest, ErrorCodeInvalidParameter, "查询参数无效", err)
		return
	}
	decimals, err := resolveDecimals(h.registry, spec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	rate, err := flow.ParseFlowRate(c.Query("flow_rate"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	unit, err := flow.ParseTimeUnit(c.DefaultQuery("unit", string(flow.Month)))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	precision := h.display.RatePrecision
	if p := c.Query("precision"); p != "" {
		precision, err = strconv.Atoi(p)
		if err != nil || precision < 0 || precision > flow.MaxDisplayDecimals {
			respondError(c, http.StatusBadRequest, ErrorCodeInvalidParameter, "precision 无效",
				fmt.Errorf("%w: precision %q", errInvalidParameter, p))
			return
		}
	}

	respondOK(c, DisplayResponse{
		Amount:    flow.ToAmountPerUnit(rate, unit, decimals, precision),
		Unit:      unit.String(),
		Precision: precision,
	}, "")
}

func (h *FlowRateHandler) response(rate flow.FlowRate, decimals uint8) FlowRateResponse {
	return FlowRateResponse{
		FlowRate: rate,
		Decimals: decimals,
		Monthly:  flow.ToAmountPerUnit(rate, flow.Month, decimals, h.display.TotalPrecision),
	}
}
