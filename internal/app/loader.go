package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

// 环境变量
const (
	// EnvConfigPath 配置文件路径，优先级高于命令行参数
	EnvConfigPath = "DRIP_CONFIG"

	// EnvLogLevel 覆盖配置文件中的日志级别
	EnvLogLevel = "DRIP_LOG_LEVEL"

	// EnvEnvironment 覆盖运行环境
	EnvEnvironment = "DRIP_ENV"
)

// ErrConfigFormat 配置文件无法解析
var ErrConfigFormat = errors.New("invalid config format")

// LoadDotEnv 加载工作目录下的 .env（不存在时忽略），已设置的环境变量不会被覆盖
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ResolveConfigPath 确定配置文件路径：环境变量 > 参数；都为空时返回空串
func ResolveConfigPath(path string) string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return path
}

// LoadConfigFile 读取配置文件，按扩展名选择 JSON 或 YAML
//
// path 为空时返回空配置（全部使用默认值）。环境变量覆盖在解析后应用。
func LoadConfigFile(path string) (*types.AppConfig, error) {
	if path == "" {
		cfg := &types.AppConfig{}
		ApplyEnvOverrides(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg *types.AppConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = parseYAML(data)
	case ".json":
		cfg, err = parseJSON(data)
	default:
		cfg, err = ParseConfig(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ApplyEnvOverrides(cfg)
	return cfg, nil
}

// ParseConfig 解析未知格式的配置内容：以 '{' 开头视为 JSON，否则按 YAML 解析
func ParseConfig(data []byte) (*types.AppConfig, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSON(trimmed)
	}
	return parseYAML(trimmed)
}

func parseJSON(data []byte) (*types.AppConfig, error) {
	var cfg types.AppConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigFormat, err)
	}
	return &cfg, nil
}

func parseYAML(data []byte) (*types.AppConfig, error) {
	var cfg types.AppConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrConfigFormat, err)
	}
	return &cfg, nil
}

// ApplyEnvOverrides 应用 DRIP_LOG_LEVEL 与 DRIP_ENV 环境变量覆盖
func ApplyEnvOverrides(cfg *types.AppConfig) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		if cfg.Log == nil {
			cfg.Log = &types.UserLogConfig{}
		}
		cfg.Log.Level = types.StringPtr(level)
	}
	if env := os.Getenv(EnvEnvironment); env != "" {
		cfg.Environment = types.StringPtr(env)
	}
}
