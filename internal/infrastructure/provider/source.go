// Package provider 外部图书数据源的公共基础设施
//
// 分层：
//   - Source：具体数据源的原始客户端（googlebooks、openlibrary），如实返回错误
//   - Guarded：包装Source，统一加上超时、熔断、指标、链路追踪，
//     并把所有失败折叠成book.Provider约定的结果（空列表 / ErrExternalBookNotFound）
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// Source 原始数据源客户端
// 找不到资源时返回book.ErrExternalBookNotFound（可用errors.Is判断）
type Source interface {
	Name() book.ProviderName
	Search(ctx context.Context, query string, maxResults int) ([]book.ExternalBookRecord, error)
	Fetch(ctx context.Context, externalID string) (*book.ExternalBookRecord, error)
}

// StatusError 非2xx响应
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// NewHTTPClient 数据源共用的HTTP客户端
// 整体超时由Guarded的context控制，这里只兜底
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// GetJSON 发起GET请求并把JSON响应解码到out
// 404返回book.ErrExternalBookNotFound，其他非2xx返回*StatusError
func GetJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: %w", url, book.ErrExternalBookNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}
