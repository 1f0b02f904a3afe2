package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
	Err     error // 底层错误，可为 nil
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "fatal": true}

// ValidateConfig 校验用户配置，返回全部问题的组合错误
//
// chainsErr 为构建代币注册表时的错误（可为 nil）。
func ValidateConfig(appConfig *types.AppConfig, chainsErr error) error {
	var errs []error

	if appConfig != nil && appConfig.Environment != nil {
		switch strings.ToLower(*appConfig.Environment) {
		case "dev", "test", "prod":
		default:
			errs = append(errs, &ValidationError{
				Field:   "environment",
				Message: fmt.Sprintf("未知运行环境 %q，应为 dev | test | prod", *appConfig.Environment),
			})
		}
	}

	if appConfig != nil && appConfig.Log != nil && appConfig.Log.Level != nil {
		if !validLogLevels[strings.ToLower(*appConfig.Log.Level)] {
			errs = append(errs, &ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("未知日志级别 %q", *appConfig.Log.Level),
			})
		}
	}

	if appConfig != nil && appConfig.API != nil && appConfig.API.HTTPPort != nil {
		if port := *appConfig.API.HTTPPort; port < 0 || port > 65535 {
			errs = append(errs, &ValidationError{
				Field:   "api.http_port",
				Message: fmt.Sprintf("端口 %d 超出范围", port),
			})
		}
	}

	if chainsErr != nil {
		errs = append(errs, &ValidationError{Field: "chains", Message: chainsErr.Error(), Err: chainsErr})
	}

	return errors.Join(errs...)
}
