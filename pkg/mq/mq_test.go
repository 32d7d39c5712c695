package mq

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookEvent struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(bookEvent{BookID: 7, Title: "Dune"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.WithinDuration(t, time.Now(), msg.Timestamp, time.Second)

	var got bookEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, bookEvent{BookID: 7, Title: "Dune"}, got)
}

func TestNewMessage_Unencodable(t *testing.T) {
	_, err := NewMessage(map[string]interface{}{"ch": make(chan int)})
	assert.Error(t, err)
}

// TestPublisher_Publish 需要真实的RabbitMQ，设置 BOOKCATALOG_TEST_AMQP_URL 后运行
func TestPublisher_Publish(t *testing.T) {
	url := os.Getenv("BOOKCATALOG_TEST_AMQP_URL")
	if url == "" {
		t.Skip("BOOKCATALOG_TEST_AMQP_URL 未设置")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher, err := NewPublisher(url, "bookcatalog.test.events", "topic", logger)
	require.NoError(t, err)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, publisher.Publish(ctx, "book.created", bookEvent{BookID: 1, Title: "Dune"}))
}
