package dto

import (
	"time"

	appaccount "github.com/xiebiao/bookcatalog/internal/application/account"
)

// 说明：HTTP层DTO只负责JSON字段名和Swagger示例
// 格式校验统一在应用层完成（见 pkg/validator），这里不写binding tag

// RegisterRequest HTTP注册请求
type RegisterRequest struct {
	Email    string `json:"email" example:"reader@example.com"`
	Password string `json:"password" example:"Passw0rd"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" example:"reader@example.com"`
	Password string `json:"password" example:"Passw0rd"`
}

// RefreshTokenRequest HTTP刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// AccountResponse 账号信息（不含密码）
type AccountResponse struct {
	ID        uint      `json:"id" example:"1"`
	Email     string    `json:"email" example:"reader@example.com"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	Account      AccountResponse `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in" example:"7200"`
}

// RefreshTokenResponse HTTP刷新Token响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in" example:"7200"`
}

// ToAccountResponse 应用层账号信息转HTTP响应
func ToAccountResponse(info *appaccount.AccountInfo) AccountResponse {
	return AccountResponse{
		ID:        info.ID,
		Email:     info.Email,
		CreatedAt: info.CreatedAt,
	}
}
