package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/display"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// AccrualHandler 累计金额与实时余额端点处理器
type AccrualHandler struct {
	logger   *zap.Logger
	registry *chain.Registry
	display  *display.DisplayOptions
	now      Clock
}

// NewAccrualHandler 创建累计计算处理器
func NewAccrualHandler(logger *zap.Logger, registry *chain.Registry, opts *display.DisplayOptions, now Clock) *AccrualHandler {
	if now == nil {
		now = time.Now
	}
	return &AccrualHandler{logger: logger, registry: registry, display: opts, now: now}
}

// RegisterRoutes 注册累计计算路由
func (h *AccrualHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/accrual")
	{
		g.POST("/total", h.Total)
		g.POST("/balance", h.Balance)
	}
}

// TotalRequest 累计发送总额请求，end 缺省为当前时间
type TotalRequest struct {
	TokenSpec
	FlowRate flow.FlowRate `json:"flow_rate"`
	Start    time.Time     `json:"start" binding:"required"`
	End      *time.Time    `json:"end,omitempty"`
}

// TotalResponse 累计发送总额结果
type TotalResponse struct {
	Total string    `json:"total"`
	Units string    `json:"units"`
	End   time.Time `json:"end"`
}

// Total 处理 POST /accrual/total
func (h *AccrualHandler) Total(c *gin.Context) {
	var req TotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	decimals, err := resolveDecimals(h.registry, req.TokenSpec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	end := h.now()
	if req.End != nil {
		end = *req.End
	}
	units := flow.TotalAccruedUnits(req.FlowRate, req.Start, end)

	respondOK(c, TotalResponse{
		Total: flow.FromSmallestUnitRounded(units, decimals, h.display.TotalPrecision),
		Units: units.String(),
		End:   end,
	}, "")
}

// BalanceRequest 实时余额请求
type BalanceRequest struct {
	TokenSpec
	StartingBalance     string        `json:"starting_balance"` // 最小单位整数，缺省为 0
	StartingBalanceTime time.Time     `json:"starting_balance_time" binding:"required"`
	FlowRate            flow.FlowRate `json:"flow_rate"`
	Now                 *time.Time    `json:"now,omitempty"`
	TickMs              *int          `json:"tick_ms,omitempty"`
}

// BalanceResponse 实时余额结果
type BalanceResponse struct {
	Balance         string    `json:"balance"`          // 最小单位
	Display         string    `json:"display"`          // 按有效小数位截断的展示值
	DisplayDecimals int       `json:"display_decimals"` // 0 表示只展示整数
	At              time.Time `json:"at"`
}

// Balance 处理 POST /accrual/balance
func (h *AccrualHandler) Balance(c *gin.Context) {
	var req BalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	decimals, err := resolveDecimals(h.registry, req.TokenSpec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	starting, err := parseUnits(req.StartingBalance)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	tick := h.display.Tick
	if req.TickMs != nil {
		if *req.TickMs <= 0 {
			respondDomainError(c, fmt.Errorf("%w: tick_ms must be positive", errInvalidParameter))
			return
		}
		tick = time.Duration(*req.TickMs) * time.Millisecond
	}

	at := h.now()
	if req.Now != nil {
		at = *req.Now
	}
	balance := flow.CurrentBalance(starting, req.StartingBalanceTime, req.FlowRate, at)
	places, _ := flow.SignificantDisplayDecimalPlaces(req.FlowRate, tick, decimals)

	respondOK(c, BalanceResponse{
		Balance:         balance.String(),
		Display:         flow.FormatFlowingBalance(balance, req.FlowRate, tick, decimals),
		DisplayDecimals: places,
		At:              at,
	}, "")
}
