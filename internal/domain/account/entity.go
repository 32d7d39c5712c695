package account

import (
	"time"
)

// Account 账号实体（聚合根）
// DDD设计说明：
// 1. Email是登录标识，区分大小写的精确匹配
// 2. Password保存的是可逆加密后的密文，不是哈希（见 pkg/cipher）
// 3. 领域实体不依赖GORM tag，映射在infrastructure层完成
type Account struct {
	ID        uint
	Email     string
	Password  string // 密文
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount 创建新账号（工厂方法）
// encryptedPassword必须是PasswordCipher加密后的密文
func NewAccount(email, encryptedPassword string) *Account {
	now := time.Now()
	return &Account{
		Email:     email,
		Password:  encryptedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
