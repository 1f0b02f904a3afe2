package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	infralog "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/log"
)

// Logger 请求日志中间件
// 按状态码选择日志级别：5xx 为 Error，4xx 为 Warn，其余为 Info
func Logger(logger infralog.Logger) gin.HandlerFunc {
	zl := logger.GetZapLogger()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			zl.Error("HTTP请求", fields...)
		case status >= 400:
			zl.Warn("HTTP请求", fields...)
		default:
			zl.Info("HTTP请求", fields...)
		}
	}
}
