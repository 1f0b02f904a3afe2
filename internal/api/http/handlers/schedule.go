package handlers

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/schedule"
)

// 调度 calldata 请求支持的方法
const (
	CalldataCreate        = "create"
	CalldataDelete        = "delete"
	CalldataExecuteCreate = "execute_create"
	CalldataExecuteDelete = "execute_delete"
)

// ScheduleHandler 流调度校验与 calldata 端点处理器
type ScheduleHandler struct {
	logger   *zap.Logger
	registry *chain.Registry
	now      Clock
}

// NewScheduleHandler 创建调度处理器
func NewScheduleHandler(logger *zap.Logger, registry *chain.Registry, now Clock) *ScheduleHandler {
	if now == nil {
		now = time.Now
	}
	return &ScheduleHandler{logger: logger, registry: registry, now: now}
}

// RegisterRoutes 注册调度路由
func (h *ScheduleHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/schedules")
	{
		g.POST("/validate", h.Validate)
		g.POST("/calldata", h.Calldata)
	}
}

// ScheduleRequest 调度参数的传输形式
//
// start_amount 为最小单位的十进制字符串，user_data 为 0x 十六进制。
type ScheduleRequest struct {
	SuperToken    string         `json:"super_token"`
	Receiver      string         `json:"receiver"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	StartMaxDelay *uint32        `json:"start_max_delay,omitempty"`
	FlowRate      *flow.FlowRate `json:"flow_rate,omitempty"`
	StartAmount   string         `json:"start_amount,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	UserData      hexutil.Bytes  `json:"user_data,omitempty"`
}

func (r ScheduleRequest) params() (schedule.Params, error) {
	p := schedule.Params{
		SuperToken:    r.SuperToken,
		Receiver:      r.Receiver,
		StartDate:     r.StartDate,
		StartMaxDelay: r.StartMaxDelay,
		FlowRate:      r.FlowRate,
		EndDate:       r.EndDate,
		UserData:      r.UserData,
	}
	if r.StartAmount != "" {
		amount, ok := new(big.Int).SetString(r.StartAmount, 10)
		if !ok {
			return schedule.Params{}, fmt.Errorf("%w: start_amount %q", flow.ErrInvalidAmount, r.StartAmount)
		}
		p.StartAmount = amount
	}
	return p, nil
}

// Validate 处理 POST /schedules/validate
//
// 参数不合法不是请求错误：始终返回 200，由 is_valid 与 errors 描述结果。
func (h *ScheduleHandler) Validate(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := req.params()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result := schedule.Validate(p, h.now())
	if !result.IsValid {
		h.logger.Debug("调度参数校验未通过", zap.Strings("errors", result.Errors))
	}
	respondOK(c, result, "")
}

// CalldataRequest calldata 生成请求
type CalldataRequest struct {
	ScheduleRequest
	Method  string  `json:"method" binding:"required"`
	Sender  string  `json:"sender,omitempty"`   // execute_* 方法需要
	ChainID *uint64 `json:"chain_id,omitempty"` // 提供时从注册表解析调度合约地址
}

// CalldataResponse calldata 生成结果
type CalldataResponse struct {
	Method string        `json:"method"`
	To     string        `json:"to,omitempty"`
	Data   hexutil.Bytes `json:"data"`
}

// Calldata 处理 POST /schedules/calldata
func (h *ScheduleHandler) Calldata(c *gin.Context) {
	var req CalldataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := req.params()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var to string
	if req.ChainID != nil {
		ch, err := h.registry.Lookup(*req.ChainID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		to = ch.Scheduler
	}

	var data []byte
	switch req.Method {
	case CalldataCreate:
		data, err = schedule.EncodeCreateFlowSchedule(p, h.now())
	case CalldataDelete:
		data, err = schedule.EncodeDeleteFlowSchedule(p.SuperToken, p.Receiver)
	case CalldataExecuteCreate:
		data, err = schedule.EncodeExecuteCreateFlow(p.SuperToken, req.Sender, p.Receiver, p.UserData)
	case CalldataExecuteDelete:
		data, err = schedule.EncodeExecuteDeleteFlow(p.SuperToken, req.Sender, p.Receiver, p.UserData)
	default:
		err = fmt.Errorf("%w: unknown method %q", errInvalidParameter, req.Method)
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.logger.Info("生成调度 calldata",
		zap.String("method", req.Method),
		zap.String("to", to),
		zap.Int("size", len(data)))
	respondOK(c, CalldataResponse{Method: req.Method, To: to, Data: data}, "")
}
