// Package api 汇总对外服务模块
package api

import (
	"go.uber.org/fx"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/api/http"
)

// Module 返回API模块，目前只包含 HTTP 服务
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
	)
}
