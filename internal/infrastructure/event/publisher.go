// Package event 图书事件发布（RabbitMQ或空实现）
package event

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// messagePublisher 可发布消息的底层实现（*mq.Publisher）
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// MQPublisher 把图书事件发布到topic Exchange，路由键即事件类型
type MQPublisher struct {
	publisher messagePublisher
	logger    *slog.Logger
}

// NewMQPublisher 创建事件发布者
func NewMQPublisher(publisher messagePublisher, logger *slog.Logger) *MQPublisher {
	return &MQPublisher{publisher: publisher, logger: logger}
}

// Publish 发布事件，失败只记录日志
func (p *MQPublisher) Publish(ctx context.Context, evt book.Event) {
	result := "success"
	if err := p.publisher.Publish(ctx, evt.Type, evt); err != nil {
		result = "error"
		p.logger.WarnContext(ctx, "发布图书事件失败", "type", evt.Type, "book_id", evt.BookID, "error", err)
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{"routing_key": evt.Type, "result": result})
}

// NoopPublisher 未启用消息队列时使用，只打调试日志
type NoopPublisher struct {
	logger *slog.Logger
}

// Publish 不发布
func (p NoopPublisher) Publish(ctx context.Context, evt book.Event) {
	if p.logger != nil {
		p.logger.DebugContext(ctx, "消息队列未启用，跳过事件", "type", evt.Type, "book_id", evt.BookID)
	}
}

// NewPublisher 根据配置创建事件发布者，返回清理函数
func NewPublisher(cfg *config.Config, logger *slog.Logger) (book.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NoopPublisher{logger: logger}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic", logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("关闭消息发布者失败", "error", err)
		}
	}
	return NewMQPublisher(publisher, logger), cleanup, nil
}
