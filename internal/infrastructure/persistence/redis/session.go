package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// SessionStore 会话存储
// 设计说明：
// 1. 记录账号最近一次登录的会话信息
// 2. 支持JWT黑名单（登出后Token立即失效）
// 3. Key设计：session:{account_id}、blacklist:{token}
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 保存会话，过期时间与Refresh Token一致
func (s *SessionStore) SaveSession(ctx context.Context, accountID uint, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(accountID)

	// Pipeline把HSet和Expire合并成一次往返
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, data)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "保存会话失败")
	}
	return nil
}

// GetSession 获取会话，不存在时返回ErrUnauthenticated
func (s *SessionStore) GetSession(ctx context.Context, accountID uint) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(accountID)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取会话失败")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthenticated
	}
	return result, nil
}

// DeleteSession 删除会话（登出）
func (s *SessionStore) DeleteSession(ctx context.Context, accountID uint) error {
	if err := s.client.Del(ctx, sessionKey(accountID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除会话失败")
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
// ttl取Token的剩余有效期，过期后自动删除，无需手动清理
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token已过期，本身就无法通过校验
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "添加Token到黑名单失败")
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}
	return exists > 0, nil
}

func sessionKey(accountID uint) string {
	return fmt.Sprintf("session:%d", accountID)
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}
