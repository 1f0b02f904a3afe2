package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
)

// ChainHandler 代币注册表查询端点
type ChainHandler struct {
	registry *chain.Registry
}

// NewChainHandler 创建注册表查询处理器
func NewChainHandler(registry *chain.Registry) *ChainHandler {
	return &ChainHandler{registry: registry}
}

// RegisterRoutes 注册链查询路由
func (h *ChainHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/chains", h.List)
	r.GET("/chains/:id", h.Get)
}

// List 处理 GET /chains
func (h *ChainHandler) List(c *gin.Context) {
	respondOK(c, h.registry.Chains(), "")
}

// Get 处理 GET /chains/:id
func (h *ChainHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondDomainError(c, fmt.Errorf("%w: chain id %q", errInvalidParameter, c.Param("id")))
		return
	}
	ch, err := h.registry.Lookup(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, ch, "")
}
