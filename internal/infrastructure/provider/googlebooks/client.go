// Package googlebooks Google Books API客户端
package googlebooks

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/provider"
)

// DefaultBaseURL 官方API地址
const DefaultBaseURL = "https://www.googleapis.com/books/v1"

// Client Google Books客户端，实现provider.Source
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

var _ provider.Source = (*Client)(nil)

// NewClient 创建客户端，baseURL为空时使用官方地址
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Name 数据源标识
func (c *Client) Name() book.ProviderName {
	return book.ProviderGoogle
}

// Search GET {base}/volumes?q=&maxResults=&key=
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]book.ExternalBookRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	c.withKey(params)

	var resp volumesResponse
	if err := provider.GetJSON(ctx, c.httpClient, c.baseURL+"/volumes?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	records := make([]book.ExternalBookRecord, 0, len(resp.Items))
	for _, v := range resp.Items {
		records = append(records, toRecord(v))
	}
	return records, nil
}

// Fetch GET {base}/volumes/{id}?key=
func (c *Client) Fetch(ctx context.Context, externalID string) (*book.ExternalBookRecord, error) {
	params := url.Values{}
	c.withKey(params)

	endpoint := c.baseURL + "/volumes/" + url.PathEscape(externalID)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var v volume
	if err := provider.GetJSON(ctx, c.httpClient, endpoint, &v); err != nil {
		return nil, err
	}
	if v.ID == "" {
		v.ID = externalID
	}

	rec := toRecord(v)
	return &rec, nil
}

func (c *Client) withKey(params url.Values) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
}

func toRecord(v volume) book.ExternalBookRecord {
	info := v.VolumeInfo
	return book.ExternalBookRecord{
		ExternalID:  v.ID,
		Provider:    book.ProviderGoogle,
		Title:       info.Title,
		SubTitle:    info.Subtitle,
		PublishDate: info.PublishedDate,
		Publisher:   info.Publisher,
		Description: info.Description,
		Authors:     nonNil(info.Authors),
		Categories:  nonNil(info.Categories),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
