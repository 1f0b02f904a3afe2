// Package http 提供 DripPay 计算服务的 HTTP API
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/api/http/handlers"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/api/http/middleware"
	apiconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/api"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/display"
	corelog "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/infrastructure/log"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/log"
)

// Options 构造服务器所需的依赖
type Options struct {
	API      *apiconfig.APIOptions
	Display  *display.DisplayOptions
	Registry *chain.Registry
	Logger   log.Logger
	Version  string

	// Metrics 为空时使用独立的注册表
	Metrics *prometheus.Registry

	// Clock 为空时使用 time.Now
	Clock handlers.Clock
}

// Server HTTP服务器
// 负责路由装配以及监听的启动和停止
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	options    apiconfig.HTTPConfig
	logger     log.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer 创建HTTP服务器并装配全部路由，不开始监听
func NewServer(opts Options) *Server {
	if os.Getenv(corelog.CLIModeEnv) == "true" {
		// CLI模式下抑制 gin 的控制台输出
		gin.SetMode(gin.ReleaseMode)
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = corelog.GetLogger()
	}
	if opts.API == nil {
		opts.API = apiconfig.New(nil).GetOptions()
	}
	if opts.Display == nil {
		opts.Display = display.New(nil).GetOptions()
	}
	if opts.Metrics == nil {
		opts.Metrics = prometheus.NewRegistry()
	}

	s := &Server{
		router:  gin.New(),
		options: opts.API.HTTP,
		logger:  corelog.NewModuleLogger(opts.Logger, "http"),
	}
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
	}
	s.setupRoutes(opts)
	return s
}

func (s *Server) setupRoutes(opts Options) {
	zl := s.logger.GetZapLogger()

	s.router.Use(
		middleware.RequestID(),
		middleware.Recovery(zl),
		middleware.Logger(s.logger),
		middleware.BodyLimit(s.options.MaxRequestSize),
	)
	if s.options.MetricsEnabled {
		s.router.Use(middleware.NewMetrics(opts.Metrics).Middleware())
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}
	if s.options.CORSEnabled {
		s.router.Use(middleware.CORS(s.options.CORSOrigins))
	}

	v1 := s.router.Group("/api/v1")
	handlers.NewHealthHandler(zl, opts.Version, opts.Registry).RegisterRoutes(v1)
	handlers.NewChainHandler(opts.Registry).RegisterRoutes(v1)
	handlers.NewFlowRateHandler(zl, opts.Registry, opts.Display).RegisterRoutes(v1)
	handlers.NewAccrualHandler(zl, opts.Registry, opts.Display, opts.Clock).RegisterRoutes(v1)
	handlers.NewScheduleHandler(zl, opts.Registry, opts.Clock).RegisterRoutes(v1)
	handlers.NewPayrollHandler(zl, opts.Clock).RegisterRoutes(v1)

	// 根路径健康检查，便于负载均衡探测
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.logger.Debugf("HTTP路由注册完成，共 %d 条", len(s.router.Routes()))
}

// Handler 返回路由处理器（测试中配合 httptest 使用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr 返回实际监听地址，未启动时为空
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start 绑定端口并在后台开始服务
//
// 端口被占用时直接返回错误，不自动换端口。
func (s *Server) Start() error {
	addr := s.options.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器运行失败: %v", err)
		}
	}()

	s.logger.Infof("HTTP服务器启动成功，监听地址: %s", ln.Addr())
	s.logger.Infof("API端点: http://%s/api/v1/", ln.Addr())
	return nil
}

// Stop 优雅关闭服务器，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	if s.Addr() == "" {
		return nil
	}
	s.logger.Info("正在关闭HTTP服务器")

	if s.options.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.ShutdownTimeout)
		defer cancel()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}

	s.logger.Info("HTTP服务器已关闭")
	return nil
}
