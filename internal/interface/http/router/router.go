// Package router 注册HTTP路由和全局中间件
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Options 路由选项
type Options struct {
	Mode          string // debug | release | test
	ServiceName   string
	EnableSwagger bool
}

// New 创建Gin引擎并注册全部路由
//
// 中间件顺序：Tracing → RequestLogger → Metrics → Recovery
// Tracing在最外层，日志才能拿到trace_id
func New(
	opts Options,
	logger *slog.Logger,
	accountHandler *handler.AccountHandler,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		middleware.Tracing(opts.ServiceName),
		middleware.RequestLogger(logger),
		middleware.Metrics(),
		gin.Recovery(),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus抓取端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档，访问 /swagger/index.html
	// 生产环境建议关闭
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// 公开接口
		v1.POST("/accounts", accountHandler.Register)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", accountHandler.Login)
			auth.POST("/refresh", accountHandler.Refresh)
			auth.POST("/logout", authMiddleware.RequireAuth(), accountHandler.Logout)
		}

		// 图书模块（全部需要登录）
		books := v1.Group("/books")
		books.Use(authMiddleware.RequireAuth())
		{
			books.GET("/search", bookHandler.SearchBooks)
			books.POST("", bookHandler.CreateBook)
			books.GET("/:id", bookHandler.GetBook)
			books.DELETE("/:id", bookHandler.RemoveBook)
		}
	}

	return r
}
