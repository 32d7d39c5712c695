package redis

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore_Session(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, 7, map[string]interface{}{"email": "a@b.com"}, time.Hour))

	got, err := store.GetSession(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got["email"])
	assert.Equal(t, time.Hour, mr.TTL("session:7"))

	require.NoError(t, store.DeleteSession(ctx, 7))
	_, err = store.GetSession(ctx, 7)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestSessionStore_Blacklist(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	in, err := store.IsInBlacklist(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, store.AddToBlacklist(ctx, "tok", time.Minute))
	in, err = store.IsInBlacklist(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, in)

	// 过期后自动移出
	mr.FastForward(2 * time.Minute)
	in, err = store.IsInBlacklist(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, in)

	// 剩余有效期为0时不写入
	require.NoError(t, store.AddToBlacklist(ctx, "expired", 0))
	assert.False(t, mr.Exists("blacklist:expired"))
}

// countingProvider 记录调用次数的数据源
type countingProvider struct {
	searches atomic.Int32
	records  []book.ExternalBookRecord
}

func (p *countingProvider) Name() book.ProviderName { return book.ProviderGoogle }

func (p *countingProvider) Search(ctx context.Context, query string, maxResults int) []book.ExternalBookRecord {
	p.searches.Add(1)
	return p.records
}

func (p *countingProvider) Fetch(ctx context.Context, externalID string) (*book.ExternalBookRecord, error) {
	return nil, book.ErrExternalBookNotFound
}

func TestCachedProvider_CachesNonEmptyResults(t *testing.T) {
	mr, client := newTestClient(t)
	next := &countingProvider{records: []book.ExternalBookRecord{
		{ExternalID: "abc", Provider: book.ProviderGoogle, Title: "Dune", Authors: []string{"Frank Herbert"}},
	}}
	cached := NewCachedProvider(next, client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	first := cached.Search(ctx, "Dune", 20)
	second := cached.Search(ctx, "  dune ", 20)

	assert.Equal(t, int32(1), next.searches.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, book.ProviderGoogle, cached.Name())

	// 过期后重新调用数据源
	mr.FastForward(2 * time.Minute)
	cached.Search(ctx, "dune", 20)
	assert.Equal(t, int32(2), next.searches.Load())
}

func TestCachedProvider_SkipsEmptyResults(t *testing.T) {
	_, client := newTestClient(t)
	next := &countingProvider{}
	cached := NewCachedProvider(next, client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Empty(t, cached.Search(context.Background(), "nothing", 20))
	assert.Empty(t, cached.Search(context.Background(), "nothing", 20))
	assert.Equal(t, int32(2), next.searches.Load())
}

func TestCachedProvider_RedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	next := &countingProvider{records: []book.ExternalBookRecord{{ExternalID: "x", Title: "X"}}}
	cached := NewCachedProvider(next, client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mr.Close()
	got := cached.Search(context.Background(), "x", 20)
	assert.Len(t, got, 1)
}
