package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// RegisterUseCase 账号注册用例
// 设计说明：
// 1. Application层负责输入校验和用例编排
// 2. 业务规则（邮箱唯一、密码加密）在领域服务里
type RegisterUseCase struct {
	accountService account.Service
	logger         *slog.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(accountService account.Service, logger *slog.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		accountService: accountService,
		logger:         logger,
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AccountInfo, error) {
	// 1. 去空白后校验（所有违反的规则一起返回）
	validator.TrimStrings(&req)
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	// 2. 调用领域服务
	acc, err := uc.accountService.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.AccountsRegisteredTotal)
	uc.logger.InfoContext(ctx, "账号注册成功", "account_id", acc.ID)

	return toAccountInfo(acc), nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,max=360,email_format"`
	Password string `json:"password" validate:"required,min=8,max=50,password_strength"`
}

// AccountInfo 账号信息（不含密码）
type AccountInfo struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountInfo(acc *account.Account) *AccountInfo {
	return &AccountInfo{
		ID:        acc.ID,
		Email:     acc.Email,
		CreatedAt: acc.CreatedAt,
	}
}
