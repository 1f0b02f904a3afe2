package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/api/http/handlers"
)

// Recovery 捕获处理器 panic，记录日志并返回统一错误响应
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("处理请求时发生panic",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))

		c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.StandardAPIResponse{
			Success: false,
			Error: &handlers.APIError{
				Code:    handlers.ErrorCodeInternalError,
				Message: "服务器内部错误",
				Details: fmt.Sprint(recovered),
			},
		})
	})
}

// BodyLimit 限制请求体大小，limit <= 0 时不限制
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
