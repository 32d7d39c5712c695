package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// CachedProvider 外部数据源搜索结果缓存（装饰器）
//
// 教学要点：
// 1. Cache-Aside：先查缓存，未命中再调用数据源，结果回写缓存
// 2. 只缓存非空结果：数据源失败时返回的空列表不能被缓存，否则故障恢复后仍然查不到
// 3. Fetch不缓存，入库总是拿最新数据
// 4. Redis故障只记日志，不影响搜索
type CachedProvider struct {
	next   book.Provider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProvider 包装数据源
func NewCachedProvider(next book.Provider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	return &CachedProvider{next: next, client: client, ttl: ttl, logger: logger}
}

// Name 透传被包装数据源的名字
func (p *CachedProvider) Name() book.ProviderName {
	return p.next.Name()
}

// Search 带缓存的搜索
func (p *CachedProvider) Search(ctx context.Context, query string, maxResults int) []book.ExternalBookRecord {
	key := p.searchKey(query, maxResults)

	val, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var records []book.ExternalBookRecord
		if jsonErr := json.Unmarshal(val, &records); jsonErr == nil {
			metrics.IncCounterVec(metrics.SearchCacheTotal, map[string]string{"result": "hit"})
			return records
		}
		p.logger.WarnContext(ctx, "搜索缓存内容损坏", "key", key)
	case !errors.Is(err, redis.Nil):
		p.logger.WarnContext(ctx, "读取搜索缓存失败", "key", key, "error", err)
	}
	metrics.IncCounterVec(metrics.SearchCacheTotal, map[string]string{"result": "miss"})

	records := p.next.Search(ctx, query, maxResults)
	if len(records) == 0 {
		return records
	}

	if body, err := json.Marshal(records); err == nil {
		if err := p.client.Set(ctx, key, body, p.ttl).Err(); err != nil {
			p.logger.WarnContext(ctx, "写入搜索缓存失败", "key", key, "error", err)
		}
	}
	return records
}

// Fetch 直接调用数据源
func (p *CachedProvider) Fetch(ctx context.Context, externalID string) (*book.ExternalBookRecord, error) {
	return p.next.Fetch(ctx, externalID)
}

// searchKey Key设计：provider:{name}:search:{max}:{sha1(小写关键词)}
func (p *CachedProvider) searchKey(query string, maxResults int) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf("provider:%s:search:%d:%s", p.next.Name(), maxResults, hex.EncodeToString(sum[:]))
}
