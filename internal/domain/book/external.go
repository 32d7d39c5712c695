package book

import (
	"strings"
)

// ProviderName 外部数据源标识
type ProviderName string

const (
	ProviderGoogle      ProviderName = "google"
	ProviderOpenLibrary ProviderName = "openlibrary"
)

// ProviderOrder 搜索时查询数据源的固定顺序，外部结果按此顺序拼接
var ProviderOrder = []ProviderName{ProviderGoogle, ProviderOpenLibrary}

// ParseProviderName 解析数据源标识，无法识别时返回ErrUnsupportedProvider
func ParseProviderName(s string) (ProviderName, error) {
	switch p := ProviderName(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderGoogle, ProviderOpenLibrary:
		return p, nil
	default:
		return "", ErrUnsupportedProvider.WithField("provider", "oneof",
			"数据源必须是以下之一: google openlibrary")
	}
}

// ExternalBookRecord 外部数据源返回的图书（不持久化）
// 各数据源的字段统一映射到这个结构，缺失字段为空值
type ExternalBookRecord struct {
	ExternalID  string       `json:"external_id"`
	Provider    ProviderName `json:"provider"`
	Title       string       `json:"title"`
	SubTitle    string       `json:"sub_title"`
	PublishDate string       `json:"publish_date"`
	Publisher   string       `json:"publisher"`
	Description string       `json:"description"`
	Authors     []string     `json:"authors"`
	Categories  []string     `json:"categories"`
}

// ResultKind 搜索结果的类型标签
type ResultKind string

const (
	ResultLocal    ResultKind = "local"
	ResultExternal ResultKind = "external"
)

// SearchResult 搜索结果（标签联合）
// Kind=local 时Book非空；Kind=external 时External非空
type SearchResult struct {
	Kind     ResultKind
	Book     *Book
	External *ExternalBookRecord
}

// LocalResult 包装本地图书
func LocalResult(b *Book) SearchResult {
	return SearchResult{Kind: ResultLocal, Book: b}
}

// ExternalResult 包装外部记录
func ExternalResult(rec ExternalBookRecord) SearchResult {
	return SearchResult{Kind: ResultExternal, External: &rec}
}
