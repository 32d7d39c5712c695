package book

import (
	"context"
	"errors"
)

// ErrExternalBookNotFound 外部数据源找不到该图书
// 数据源的网络错误、非2xx响应、超时、熔断都归为这个错误
var ErrExternalBookNotFound = errors.New("external book not found")

// Provider 外部图书数据源
//
// 约定：
//   - Search 永远不返回错误，失败时返回空列表，结果最多maxResults条
//   - Fetch 找不到或调用失败时返回ErrExternalBookNotFound
type Provider interface {
	Name() ProviderName
	Search(ctx context.Context, query string, maxResults int) []ExternalBookRecord
	Fetch(ctx context.Context, externalID string) (*ExternalBookRecord, error)
}

// Providers 按名字索引的数据源集合
type Providers map[ProviderName]Provider

// NewProviders 组装数据源集合
func NewProviders(providers ...Provider) Providers {
	out := make(Providers, len(providers))
	for _, p := range providers {
		out[p.Name()] = p
	}
	return out
}

// Ordered 按ProviderOrder返回已配置的数据源
func (p Providers) Ordered() []Provider {
	out := make([]Provider, 0, len(p))
	for _, name := range ProviderOrder {
		if provider, ok := p[name]; ok {
			out = append(out, provider)
		}
	}
	return out
}
