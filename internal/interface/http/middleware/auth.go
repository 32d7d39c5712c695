package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Context中保存的键
const (
	accountKey     = "account"
	accessTokenKey = "access_token"
)

// TokenBlacklist 已登出Token的查询（由redis.SessionStore实现）
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Bearer Token
// 2. 检查黑名单（已登出的Token）
// 3. 验证Token，并按Token中的身份查出账号
// 4. 账号实体放入gin.Context，Handler显式传给用例
type AuthMiddleware struct {
	jwtManager     *jwt.Manager
	blacklist      TokenBlacklist
	accountService account.Service
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist, accountService account.Service) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:     jwtManager,
		blacklist:      blacklist,
		accountService: accountService,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.GET("/books/search", bookHandler.SearchBooks)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 格式：Authorization: Bearer <token>
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, apperrors.ErrUnauthenticated)
			return
		}

		ctx := c.Request.Context()

		// 2. 黑名单
		revoked, err := m.blacklist.IsInBlacklist(ctx, tokenString)
		if err != nil {
			response.Abort(c, apperrors.Wrap(err, "验证Token失败"))
			return
		}
		if revoked {
			response.Abort(c, apperrors.ErrTokenRevoked)
			return
		}

		// 3. 签名、过期时间、Token类型
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}

		// 4. Token有效但账号可能已被删除
		acc, err := m.accountService.Resolve(ctx, claims.AccountID)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(accountKey, acc)
		c.Set(accessTokenKey, tokenString)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetAccount 从Context获取当前登录账号，未登录时返回nil
func GetAccount(c *gin.Context) *account.Account {
	if v, exists := c.Get(accountKey); exists {
		if acc, ok := v.(*account.Account); ok {
			return acc
		}
	}
	return nil
}

// MustGetAccount 获取当前账号（不存在则panic）
// 说明：只用于已经通过RequireAuth的Handler
func MustGetAccount(c *gin.Context) *account.Account {
	acc := GetAccount(c)
	if acc == nil {
		panic("account not found in context")
	}
	return acc
}

// GetAccessToken 当前请求携带的Access Token（登出时加入黑名单）
func GetAccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
