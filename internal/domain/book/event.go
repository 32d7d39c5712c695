package book

import (
	"context"
	"time"
)

// 图书事件的路由键
const (
	EventBookCreated = "book.created"
	EventBookRemoved = "book.removed"
)

// Event 图书领域事件（入库、删除成功并提交后发布）
type Event struct {
	Type       string       `json:"type"`
	BookID     uint         `json:"book_id"`
	Title      string       `json:"title,omitempty"`
	Provider   ProviderName `json:"provider,omitempty"`
	ExternalID string       `json:"external_id,omitempty"`
	AccountID  uint         `json:"account_id"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// EventPublisher 事件发布接口
// 发布是尽力而为：失败只记录日志，不影响已经提交的业务操作
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
