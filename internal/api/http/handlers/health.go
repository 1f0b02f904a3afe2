package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
)

// HealthHandler 健康检查端点处理器
//
// 提供两层检查：
// - /health: 完整健康报告
// - /health/live: 存活检查（进程是否响应）
//
// 计算服务无外部依赖，就绪状态只取决于注册表是否已加载。
type HealthHandler struct {
	logger    *zap.Logger
	startTime time.Time
	version   string
	registry  *chain.Registry
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(logger *zap.Logger, version string, registry *chain.Registry) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		version:   version,
		registry:  registry,
	}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("", h.GetHealth)
		health.GET("/live", h.GetLiveness)
	}
}

// GetHealth 获取完整健康状态
//
// GET /api/v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := "healthy"
	chains := 0
	if h.registry != nil {
		chains = len(h.registry.Chains())
	}
	if chains == 0 {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"version":   h.version,
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.startTime).Round(time.Second).String(),
		"chains":    chains,
	})
}

// GetLiveness 存活检查
//
// GET /api/v1/health/live
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
