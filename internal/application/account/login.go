package account

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// SessionStore 会话存储（由infrastructure/persistence/redis实现）
type SessionStore interface {
	SaveSession(ctx context.Context, accountID uint, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, accountID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 登录用例
// 设计说明：
// 1. 校验邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis（失败不影响登录）
type LoginUseCase struct {
	accountService account.Service
	jwtManager     *jwt.Manager
	sessionStore   SessionStore
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewLoginUseCase 创建登录用例
// sessionTTL与Refresh Token有效期一致
func NewLoginUseCase(
	accountService account.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		accountService: accountService,
		jwtManager:     jwtManager,
		sessionStore:   sessionStore,
		sessionTTL:     sessionTTL,
		logger:         logger,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	validator.TrimStrings(&req)
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	// 1. 校验邮箱密码（领域服务）
	acc, err := uc.accountService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		metrics.IncCounterVec(metrics.LoginsTotal, map[string]string{"result": strings.ToLower(string(apperrors.KindOf(err)))})
		return nil, err
	}

	// 2. 生成Token对，claims只包含{id, email}
	tokens, err := uc.jwtManager.GenerateToken(acc.ID, acc.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Token失败")
	}

	// 3. 保存会话
	sessionData := map[string]interface{}{
		"account_id": acc.ID,
		"email":      acc.Email,
		"login_at":   time.Now().Unix(),
		"ip":         req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, acc.ID, sessionData, uc.sessionTTL); err != nil {
		uc.logger.WarnContext(ctx, "保存会话失败", "account_id", acc.ID, "error", err)
	}

	metrics.IncCounterVec(metrics.LoginsTotal, map[string]string{"result": "success"})

	return &LoginResponse{
		Account:      *toAccountInfo(acc),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行登出
// Access Token按剩余有效期加入黑名单，过期前无法再使用
func (uc *LogoutUseCase) Execute(ctx context.Context, acc *account.Account, accessToken string) error {
	if acc == nil {
		return apperrors.ErrUnauthenticated
	}

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return err
	}

	if err := uc.sessionStore.DeleteSession(ctx, acc.ID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, jwt.RemainingTTL(claims))
}

// RefreshTokenUseCase 刷新Access Token用例
type RefreshTokenUseCase struct {
	accountService account.Service
	jwtManager     *jwt.Manager
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(accountService account.Service, jwtManager *jwt.Manager) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{accountService: accountService, jwtManager: jwtManager}
}

// Execute 用Refresh Token换新的Access Token
// 账号已不存在时返回ErrAccountNotFound
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, req RefreshTokenRequest) (*RefreshTokenResponse, error) {
	validator.TrimStrings(&req)
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	accessToken, claims, err := uc.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if _, err := uc.accountService.Resolve(ctx, claims.AccountID); err != nil {
		return nil, err
	}

	return &RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求（格式校验与注册一致）
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=360,email_format"`
	Password string `json:"password" validate:"required,min=8,max=50,password_strength"`
	ClientIP string `json:"-"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Account      AccountInfo `json:"account"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"` // Access Token过期时间（秒）
}

// RefreshTokenRequest 刷新请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse 刷新响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
