// Package openlibrary OpenLibrary API客户端
//
// 获取单本图书需要多次请求：
//  1. /books/{id}.json 取版本信息
//  2. 每个作者 /authors/{key}.json 取名字
//  3. 第一个作品 /works/{key}.json 取主题（作为分类）
//
// 2和3中单个请求失败只跳过对应数据，不影响整体结果。
package openlibrary

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/provider"
	"github.com/xiebiao/bookcatalog/pkg/ratelimit"
)

// DefaultBaseURL 官方API地址
const DefaultBaseURL = "https://openlibrary.org"

// Client OpenLibrary客户端，实现provider.Source
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
}

var _ provider.Source = (*Client)(nil)

// NewClient 创建客户端
// OpenLibrary没有API Key，官方要求控制请求频率，所以所有请求都经过limiter
func NewClient(httpClient *http.Client, baseURL string, limiter *ratelimit.Limiter, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limiter == nil {
		limiter = ratelimit.New("openlibrary", 0)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    limiter,
		logger:     logger,
	}
}

// Name 数据源标识
func (c *Client) Name() book.ProviderName {
	return book.ProviderOpenLibrary
}

// Search GET {base}/search.json?q=
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]book.ExternalBookRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	if maxResults > 0 {
		params.Set("limit", strconv.Itoa(maxResults))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search.json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	docs := resp.Docs
	if maxResults > 0 && len(docs) > maxResults {
		docs = docs[:maxResults]
	}

	records := make([]book.ExternalBookRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, docToRecord(d))
	}
	return records, nil
}

// Fetch GET {base}/books/{id}.json，再补充作者名和作品主题
func (c *Client) Fetch(ctx context.Context, externalID string) (*book.ExternalBookRecord, error) {
	var ed edition
	if err := c.get(ctx, "/books/"+url.PathEscape(externalID)+".json", &ed); err != nil {
		return nil, err
	}

	rec := &book.ExternalBookRecord{
		ExternalID:  externalID,
		Provider:    book.ProviderOpenLibrary,
		Title:       ed.Title,
		SubTitle:    ed.Subtitle,
		PublishDate: ed.PublishDate,
		Publisher:   first(ed.Publishers),
		Description: string(ed.Description),
		Authors:     c.authorNames(ctx, ed.Authors),
		Categories:  c.subjects(ctx, ed.Works),
	}
	return rec, nil
}

// authorNames 逐个查询作者名，失败或没有key的跳过
func (c *Client) authorNames(ctx context.Context, refs []authorRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		key := ref.key()
		if key == "" {
			continue
		}
		var a author
		if err := c.get(ctx, key+".json", &a); err != nil {
			c.logger.DebugContext(ctx, "查询作者失败，跳过", "key", key, "error", err)
			continue
		}
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// subjects 取第一个作品的主题，失败返回空列表
func (c *Client) subjects(ctx context.Context, works []keyRef) []string {
	if len(works) == 0 || works[0].Key == "" {
		return []string{}
	}
	var w work
	if err := c.get(ctx, works[0].Key+".json", &w); err != nil {
		c.logger.DebugContext(ctx, "查询作品主题失败，跳过", "key", works[0].Key, "error", err)
		return []string{}
	}
	if w.Subjects == nil {
		return []string{}
	}
	return w.Subjects
}

func (c *Client) get(ctx context.Context, pathAndQuery string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if !strings.HasPrefix(pathAndQuery, "/") {
		pathAndQuery = "/" + pathAndQuery
	}
	return provider.GetJSON(ctx, c.httpClient, c.baseURL+pathAndQuery, out)
}

func docToRecord(d searchDoc) book.ExternalBookRecord {
	publishDate := first(d.PublishDate)
	if publishDate == "" && d.FirstPublishYear > 0 {
		publishDate = strconv.Itoa(d.FirstPublishYear)
	}

	return book.ExternalBookRecord{
		ExternalID:  d.externalID(),
		Provider:    book.ProviderOpenLibrary,
		Title:       d.Title,
		SubTitle:    d.Subtitle,
		PublishDate: publishDate,
		Publisher:   first(d.Publisher),
		Authors:     nonNil(d.AuthorName),
		Categories:  nonNil(d.Subject),
	}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
