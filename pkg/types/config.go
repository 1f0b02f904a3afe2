// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含配置文件（JSON 或 YAML）解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty" yaml:"app_name,omitempty"` // 应用名称
	Version *string `json:"version,omitempty" yaml:"version,omitempty"`   // 应用版本

	// Environment 运行环境：dev | test | prod
	// 只影响默认日志级别
	Environment *string `json:"environment,omitempty" yaml:"environment,omitempty"`

	// API服务配置
	API *UserAPIConfig `json:"api,omitempty" yaml:"api,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// 链与代币配置，按 chain_id 覆盖或扩展内置默认值
	Chains []UserChainConfig `json:"chains,omitempty" yaml:"chains,omitempty"`

	// 余额展示配置
	Display *UserDisplayConfig `json:"display,omitempty" yaml:"display,omitempty"`
}

// UserAPIConfig 用户API配置
// 只包含配置文件中实际出现的字段
type UserAPIConfig struct {
	HTTPEnabled *bool   `json:"http_enabled,omitempty" yaml:"http_enabled,omitempty"` // 是否启用HTTP服务（默认true）
	HTTPHost    *string `json:"http_host,omitempty" yaml:"http_host,omitempty"`       // 监听地址
	HTTPPort    *int    `json:"http_port,omitempty" yaml:"http_port,omitempty"`       // HTTP监听端口

	// HTTP CORS 配置
	HTTPCorsEnabled *bool    `json:"http_cors_enabled,omitempty" yaml:"http_cors_enabled,omitempty"` // 是否启用CORS（默认true）
	HTTPCorsOrigins []string `json:"http_cors_origins,omitempty" yaml:"http_cors_origins,omitempty"` // 允许的CORS源（默认["*"]）

	// 指标
	MetricsEnabled *bool `json:"metrics_enabled,omitempty" yaml:"metrics_enabled,omitempty"` // 是否暴露 /metrics（默认true）

	// 请求体上限（字节）
	MaxRequestSize *int `json:"max_request_size,omitempty" yaml:"max_request_size,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty" yaml:"level,omitempty"`           // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty" yaml:"file_path,omitempty"`   // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty" yaml:"to_console,omitempty"` // 是否输出到控制台
	MaxSize   *int    `json:"max_size,omitempty" yaml:"max_size,omitempty"`     // 单个文件最大大小(MB)
	MaxAge    *int    `json:"max_age,omitempty" yaml:"max_age,omitempty"`       // 保留天数
}

// UserChainConfig 用户链配置
type UserChainConfig struct {
	ChainID   uint64           `json:"chain_id" yaml:"chain_id"`
	Name      *string          `json:"name,omitempty" yaml:"name,omitempty"`
	Scheduler *string          `json:"scheduler,omitempty" yaml:"scheduler,omitempty"` // FlowScheduler 合约地址
	Native    *UserTokenConfig `json:"native,omitempty" yaml:"native,omitempty"`       // 底层代币（如 USDC）
	Super     *UserTokenConfig `json:"super,omitempty" yaml:"super,omitempty"`         // 可流式代币（如 USDCx）
}

// UserTokenConfig 用户代币配置
type UserTokenConfig struct {
	Symbol   *string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Address  *string `json:"address,omitempty" yaml:"address,omitempty"`
	Decimals *uint8  `json:"decimals,omitempty" yaml:"decimals,omitempty"`
}

// UserDisplayConfig 用户展示配置
type UserDisplayConfig struct {
	TickMs         *int `json:"tick_ms,omitempty" yaml:"tick_ms,omitempty"`                 // 实时余额刷新间隔（毫秒）
	RatePrecision  *int `json:"rate_precision,omitempty" yaml:"rate_precision,omitempty"`   // 流速展示小数位
	TotalPrecision *int `json:"total_precision,omitempty" yaml:"total_precision,omitempty"` // 累计金额展示小数位
}
