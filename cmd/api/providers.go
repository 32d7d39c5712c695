package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appaccount "github.com/xiebiao/bookcatalog/internal/application/account"
	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/provider"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/provider/googlebooks"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/provider/openlibrary"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/cipher"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/ratelimit"
)

// ========================================
// 自定义Provider（需要从Config中提取参数，或需要清理函数）
// ========================================

// provideDB 创建数据库连接，清理函数关闭连接池
func provideDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis连接，清理函数关闭连接
func provideRedis(cfg *config.Config, logger *slog.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideCipher 从配置创建密码加密器
func provideCipher(cfg *config.Config) (*cipher.PasswordCipher, error) {
	return cipher.New(cfg.Cipher.Key)
}

// provideProviders 组装外部数据源
//
// 每个数据源的包装顺序（由外到内）：
//
//	CachedProvider（可选，Redis缓存搜索结果）
//	  → Guarded（超时、熔断、指标、追踪，失败折叠为空结果）
//	    → googlebooks.Client / openlibrary.Client（原始HTTP调用）
//
// 缓存放在最外层，熔断打开时仍能命中缓存
func provideProviders(cfg *config.Config, client *goredis.Client, logger *slog.Logger) book.Providers {
	pc := cfg.Provider
	httpClient := provider.NewHTTPClient(pc.Timeout)

	opts := provider.Options{
		Timeout:    pc.Timeout,
		MaxResults: pc.MaxResults,
		Breaker: circuitbreaker.Config{
			MaxRequests: pc.CircuitBreaker.MaxRequests,
			Interval:    pc.CircuitBreaker.Interval,
			Timeout:     pc.CircuitBreaker.Timeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= pc.CircuitBreaker.ConsecutiveFailures
			},
		},
	}

	sources := []provider.Source{
		googlebooks.NewClient(httpClient, pc.Google.BaseURL, pc.Google.APIKey),
		openlibrary.NewClient(
			httpClient,
			pc.OpenLibrary.BaseURL,
			ratelimit.New("openlibrary", pc.OpenLibrary.RequestsPerSecond),
			logger,
		),
	}

	providers := make([]book.Provider, 0, len(sources))
	for _, src := range sources {
		var p book.Provider = provider.NewGuarded(src, opts, logger)
		if cfg.Cache.Enabled {
			p = redis.NewCachedProvider(p, client, cfg.Cache.SearchTTL, logger)
		}
		providers = append(providers, p)
	}
	return book.NewProviders(providers...)
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(
	cfg *config.Config,
	accountService account.Service,
	jwtManager *jwt.Manager,
	sessionStore appaccount.SessionStore,
	logger *slog.Logger,
) *appaccount.LoginUseCase {
	return appaccount.NewLoginUseCase(accountService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire, logger)
}

// provideRouter 创建Gin引擎并注册路由
func provideRouter(
	cfg *config.Config,
	logger *slog.Logger,
	accountHandler *handler.AccountHandler,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	return router.New(router.Options{
		Mode:          cfg.Server.Mode,
		ServiceName:   cfg.Tracing.ServiceName,
		EnableSwagger: cfg.Server.EnableSwagger,
	}, logger, accountHandler, bookHandler, authMiddleware)
}
