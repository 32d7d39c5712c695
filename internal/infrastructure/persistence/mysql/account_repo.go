package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// accountRepository 账号仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/account/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如邮箱重复），转换为业务错误
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewAccountRepository(db *gorm.DB) account.Repository {
	return &accountRepository{db: db}
}

// Create 创建账号
// 学习要点：
// 1. 邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
// 2. 捕获Duplicate Entry错误，转换为业务错误ErrEmailAlreadyExists
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	model := &AccountModel{
		Email:    a.Email,
		Password: a.Password,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return account.ErrEmailAlreadyExists
		}
		return apperrors.Wrap(err, "创建账号失败")
	}

	// 回填自增ID
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找账号
func (r *accountRepository) FindByID(ctx context.Context, id uint) (*account.Account, error) {
	var model AccountModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "查询账号失败")
	}
	return toAccountEntity(&model), nil
}

// FindByEmail 根据邮箱查找账号
// email列使用utf8mb4_bin排序规则，比较区分大小写
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	var model AccountModel
	if err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrEmailNotFound
		}
		return nil, apperrors.Wrap(err, "查询账号失败")
	}
	return toAccountEntity(&model), nil
}

// ExistsByEmail 邮箱是否已注册
func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&AccountModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询账号失败")
	}
	return count > 0, nil
}

// toAccountEntity GORM模型 → 领域实体
func toAccountEntity(model *AccountModel) *account.Account {
	return &account.Account{
		ID:        model.ID,
		Email:     model.Email,
		Password:  model.Password,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
