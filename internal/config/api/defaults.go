package api

import "time"

// API服务默认配置值
const (
	// defaultHTTPEnabled 默认启用HTTP API
	defaultHTTPEnabled = true

	// defaultHTTPHost 监听所有网络接口
	defaultHTTPHost = "0.0.0.0"

	// defaultHTTPPort HTTP端口
	defaultHTTPPort = 8080

	// defaultHTTPReadTimeout HTTP读取超时
	defaultHTTPReadTimeout = 15 * time.Second

	// defaultHTTPWriteTimeout HTTP写入超时
	defaultHTTPWriteTimeout = 15 * time.Second

	// defaultShutdownTimeout 优雅关闭等待时间
	defaultShutdownTimeout = 5 * time.Second

	// defaultMaxRequestSize 最大请求大小 1MB，足够容纳批量工资记录
	defaultMaxRequestSize = 1 << 20

	// defaultCORSEnabled 默认启用CORS
	defaultCORSEnabled = true

	// defaultMetricsEnabled 默认暴露 /metrics
	defaultMetricsEnabled = true
)

// defaultCORSOrigins 默认允许所有源
var defaultCORSOrigins = []string{"*"}
