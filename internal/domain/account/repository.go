package account

import (
	"context"
)

// Repository 账号仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
type Repository interface {
	// Create 创建账号
	// 邮箱已存在时返回ErrEmailAlreadyExists（由唯一索引保证，并发注册也成立）
	Create(ctx context.Context, account *Account) error

	// FindByID 根据ID查找账号
	// 不存在时返回ErrAccountNotFound
	FindByID(ctx context.Context, id uint) (*Account, error)

	// FindByEmail 根据邮箱精确查找（区分大小写）
	// 不存在时返回ErrEmailNotFound
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// ExistsByEmail 邮箱是否已注册
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
