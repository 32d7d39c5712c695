package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/globalid"
)

// 全局ID的类型名
const (
	BookNode     = "Book"
	AuthorNode   = "Author"
	CategoryNode = "Category"
)

// SearchBooksQuery 搜索参数
type SearchBooksQuery struct {
	Q string `form:"q" example:"dune"`
}

// CreateBookRequest 从外部数据源入库
type CreateBookRequest struct {
	ExternalID string `json:"external_id" example:"zyTCAlFPjgYC"`
	Provider   string `json:"provider" example:"google" enums:"google,openlibrary"`
}

// BookIDRequest 路径参数中的图书全局ID
// 绑定后调用 globalid.DecodeFields 换成数据库ID
type BookIDRequest struct {
	ID string `uri:"id" globalid:"Book" example:"Qm9vazox"`
}

// NamedNode 作者或分类
type NamedNode struct {
	ID   string `json:"id" example:"QXV0aG9yOjE="`
	Name string `json:"name" example:"Frank Herbert"`
}

// BookResponse 本地图书
type BookResponse struct {
	ID          string      `json:"id" example:"Qm9vazox"`
	Title       string      `json:"title" example:"Dune"`
	SubTitle    string      `json:"sub_title,omitempty"`
	PublishDate string      `json:"publish_date,omitempty" example:"1965"`
	Publisher   string      `json:"publisher,omitempty" example:"Chilton Books"`
	Description string      `json:"description,omitempty"`
	Authors     []NamedNode `json:"authors"`
	Categories  []NamedNode `json:"categories"`
}

// ExternalBookResponse 外部数据源的图书（未入库）
type ExternalBookResponse struct {
	ExternalID  string   `json:"external_id" example:"OL7353617M"`
	Provider    string   `json:"provider" example:"openlibrary"`
	Title       string   `json:"title" example:"Dune"`
	SubTitle    string   `json:"sub_title,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Description string   `json:"description,omitempty"`
	Authors     []string `json:"authors"`
	Categories  []string `json:"categories"`
}

// SearchResultItem 搜索结果项，kind为local时book非空，为external时external非空
type SearchResultItem struct {
	Kind     string                `json:"kind" example:"local" enums:"local,external"`
	Book     *BookResponse         `json:"book,omitempty"`
	External *ExternalBookResponse `json:"external,omitempty"`
}

// SearchBooksResponse 搜索响应
type SearchBooksResponse struct {
	Source  string             `json:"source" example:"local" enums:"local,external,empty"`
	Results []SearchResultItem `json:"results"`
}

// ToBookResponse 领域实体转HTTP响应，ID编码为全局ID
func ToBookResponse(b *book.Book) *BookResponse {
	resp := &BookResponse{
		ID:          globalid.Encode(BookNode, b.ID),
		Title:       b.Title,
		SubTitle:    b.SubTitle,
		PublishDate: b.PublishDate,
		Publisher:   b.Publisher,
		Description: b.Description,
		Authors:     make([]NamedNode, 0, len(b.Authors)),
		Categories:  make([]NamedNode, 0, len(b.Categories)),
	}
	for _, a := range b.Authors {
		resp.Authors = append(resp.Authors, NamedNode{ID: globalid.Encode(AuthorNode, a.ID), Name: a.Name})
	}
	for _, c := range b.Categories {
		resp.Categories = append(resp.Categories, NamedNode{ID: globalid.Encode(CategoryNode, c.ID), Name: c.Name})
	}
	return resp
}

// ToExternalBookResponse 外部记录转HTTP响应
func ToExternalBookResponse(rec *book.ExternalBookRecord) *ExternalBookResponse {
	return &ExternalBookResponse{
		ExternalID:  rec.ExternalID,
		Provider:    string(rec.Provider),
		Title:       rec.Title,
		SubTitle:    rec.SubTitle,
		PublishDate: rec.PublishDate,
		Publisher:   rec.Publisher,
		Description: rec.Description,
		Authors:     nonNil(rec.Authors),
		Categories:  nonNil(rec.Categories),
	}
}

// ToSearchBooksResponse 搜索结果转HTTP响应（保持顺序）
func ToSearchBooksResponse(source string, results []book.SearchResult) *SearchBooksResponse {
	resp := &SearchBooksResponse{
		Source:  source,
		Results: make([]SearchResultItem, 0, len(results)),
	}
	for _, r := range results {
		item := SearchResultItem{Kind: string(r.Kind)}
		switch r.Kind {
		case book.ResultLocal:
			item.Book = ToBookResponse(r.Book)
		case book.ResultExternal:
			item.External = ToExternalBookResponse(r.External)
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
