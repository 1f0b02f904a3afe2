package api

import (
	"fmt"
	"time"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	// 基础配置
	Enabled bool   `json:"enabled"` // 是否启用HTTP服务
	Host    string `json:"host"`    // 监听地址
	Port    int    `json:"port"`    // 监听端口

	// 超时配置
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// CORS配置
	CORSEnabled bool     `json:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins"`

	// 指标与限制
	MetricsEnabled bool  `json:"metrics_enabled"`
	MaxRequestSize int64 `json:"max_request_size"` // 最大请求大小(字节)
}

// Addr 返回 host:port 形式的监听地址
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置，用户配置覆盖默认值
func New(userConfig *types.UserAPIConfig) *Config {
	options := createDefaultAPIOptions()
	if userConfig != nil {
		applyUserAPIConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		HTTP: HTTPConfig{
			Enabled:         defaultHTTPEnabled,
			Host:            defaultHTTPHost,
			Port:            defaultHTTPPort,
			ReadTimeout:     defaultHTTPReadTimeout,
			WriteTimeout:    defaultHTTPWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			CORSEnabled:     defaultCORSEnabled,
			CORSOrigins:     append([]string(nil), defaultCORSOrigins...),
			MetricsEnabled:  defaultMetricsEnabled,
			MaxRequestSize:  defaultMaxRequestSize,
		},
	}
}

func applyUserAPIConfig(options *APIOptions, user *types.UserAPIConfig) {
	if user.HTTPEnabled != nil {
		options.HTTP.Enabled = *user.HTTPEnabled
	}
	if user.HTTPHost != nil && *user.HTTPHost != "" {
		options.HTTP.Host = *user.HTTPHost
	}
	if user.HTTPPort != nil && *user.HTTPPort > 0 {
		options.HTTP.Port = *user.HTTPPort
	}
	if user.HTTPCorsEnabled != nil {
		options.HTTP.CORSEnabled = *user.HTTPCorsEnabled
	}
	if len(user.HTTPCorsOrigins) > 0 {
		options.HTTP.CORSOrigins = append([]string(nil), user.HTTPCorsOrigins...)
	}
	if user.MetricsEnabled != nil {
		options.HTTP.MetricsEnabled = *user.MetricsEnabled
	}
	if user.MaxRequestSize != nil && *user.MaxRequestSize > 0 {
		options.HTTP.MaxRequestSize = int64(*user.MaxRequestSize)
	}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
