// Package configs 内置各环境的配置文件
package configs

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed development.yaml
var developmentConfig []byte

//go:embed production.json
var productionConfig []byte

// GetDevelopmentConfig 获取开发环境配置
func GetDevelopmentConfig() []byte {
	return developmentConfig
}

// GetProductionConfig 获取生产环境配置
func GetProductionConfig() []byte {
	return productionConfig
}

// Get 按环境名获取内置配置：dev | prod
func Get(env string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development":
		return developmentConfig, nil
	case "prod", "production":
		return productionConfig, nil
	}
	return nil, fmt.Errorf("no embedded config for environment %q (expected dev|prod)", env)
}
