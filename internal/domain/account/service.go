package account

import (
	"context"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// PasswordCipher 密码加解密（由pkg/cipher实现）
// 领域层只看到加密和比较两个动作，接触不到密钥
type PasswordCipher interface {
	Encrypt(plaintext string) (string, error)
	Matches(ciphertext, plaintext string) bool
}

// Service 账号领域服务
// 设计说明：
// 1. 格式校验（邮箱格式、密码强度）在应用层完成，这里只处理业务规则
// 2. Service依赖Repository和PasswordCipher接口，不依赖具体实现
type Service interface {
	// Register 注册账号
	Register(ctx context.Context, email, password string) (*Account, error)

	// Authenticate 校验邮箱和密码，成功返回账号
	Authenticate(ctx context.Context, email, password string) (*Account, error)

	// Resolve 根据Token中的身份查找账号，账号已删除时返回ErrAccountNotFound
	Resolve(ctx context.Context, id uint) (*Account, error)
}

type service struct {
	repo   Repository
	cipher PasswordCipher
}

// NewService 创建账号服务
func NewService(repo Repository, cipher PasswordCipher) Service {
	return &service{repo: repo, cipher: cipher}
}

// Register 注册账号
// 业务规则：
// 1. 邮箱不能已注册（先查一次给出友好错误，唯一索引兜住并发）
// 2. 密码可逆加密后存储
func (s *service) Register(ctx context.Context, email, password string) (*Account, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	encrypted, err := s.cipher.Encrypt(password)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	acc := NewAccount(email, encrypted)
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Authenticate 登录校验
// 1. 邮箱不存在 → ErrEmailNotFound
// 2. 解密后与输入比较，不一致或解密失败 → ErrIncorrectCredentials
func (s *service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !s.cipher.Matches(acc.Password, password) {
		return nil, ErrIncorrectCredentials
	}
	return acc, nil
}

// Resolve 根据ID查找账号
func (s *service) Resolve(ctx context.Context, id uint) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}
