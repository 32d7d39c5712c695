//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成 wire_gen.go
//
// 依赖链：
// *gin.Engine → Handler → UseCase → 领域Service → Repository → *gorm.DB
// 带清理函数的Provider（数据库、Redis、消息队列）由Wire按创建的逆序清理

package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appaccount "github.com/xiebiao/bookcatalog/internal/application/account"
	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/cipher"
)

// infrastructureSet 基础设施层依赖：数据库、Redis、事件发布、外部数据源
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	event.NewPublisher,
	provideProviders,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewAccountRepository,
	mysql.NewBookRepository,
	mysql.NewTxManager,
	redis.NewSessionStore,
	wire.Bind(new(appaccount.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	provideCipher,
	wire.Bind(new(account.PasswordCipher), new(*cipher.PasswordCipher)),
	account.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appaccount.NewRegisterUseCase,
	provideLoginUseCase,
	appaccount.NewLogoutUseCase,
	appaccount.NewRefreshTokenUseCase,
	catalog.NewSearchBooksUseCase,
	catalog.NewCreateBookFromExternalUseCase,
	catalog.NewGetBookUseCase,
	catalog.NewRemoveBookUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewAccountHandler,
	handler.NewBookHandler,
	provideRouter,
)

// InitializeApp 初始化整个应用
// 返回配置好的Gin引擎和清理函数
func InitializeApp(cfg *config.Config, logger *slog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
