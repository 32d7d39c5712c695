package book

import (
	"strings"
	"time"
	"unicode/utf8"
)

// 字段长度上限（与数据库列定义一致）
const (
	MaxTitleLen       = 200
	MaxSubTitleLen    = 200
	MaxPublishDateLen = 32
	MaxPublisherLen   = 200
	MaxNameLen        = 200
)

// Book 图书实体（聚合根）
// DDD设计说明：
// 1. 图书只通过"外部数据源入库"创建，通过显式删除移除
// 2. 作者、分类是共享实体，图书通过关联行引用它们
// 3. PublishDate是自由文本，各数据源格式不一（"2004"、"May 2004"、"2004-05-01"）
// 4. 标题没有唯一约束，同一本外部图书多次入库会产生多条记录
type Book struct {
	ID          uint
	Title       string
	SubTitle    string
	PublishDate string
	Publisher   string
	Description string
	Authors     []Author   // 按关联行顺序，可能有重复
	Categories  []Category // 同上
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Author 作者，按名字去重（区分大小写）
type Author struct {
	ID   uint
	Name string
}

// Category 分类，去重规则与Author相同
type Category struct {
	ID   uint
	Name string
}

// NewBookFromExternal 根据外部记录创建图书实体（工厂方法）
// 超长字段按列长度截断；作者和分类在入库时单独处理
func NewBookFromExternal(rec *ExternalBookRecord) *Book {
	now := time.Now()
	return &Book{
		Title:       truncate(strings.TrimSpace(rec.Title), MaxTitleLen),
		SubTitle:    truncate(strings.TrimSpace(rec.SubTitle), MaxSubTitleLen),
		PublishDate: truncate(strings.TrimSpace(rec.PublishDate), MaxPublishDateLen),
		Publisher:   truncate(strings.TrimSpace(rec.Publisher), MaxPublisherLen),
		Description: strings.TrimSpace(rec.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NormalizeName 规范化作者/分类名：去掉两端空白并截断
// 返回空字符串表示该名字应被跳过
func NormalizeName(name string) string {
	return truncate(strings.TrimSpace(name), MaxNameLen)
}

// truncate 按字符（而非字节）截断，避免切断多字节字符
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
