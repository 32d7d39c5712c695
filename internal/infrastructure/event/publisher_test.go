package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

type recordingPublisher struct {
	keys     []string
	messages []interface{}
	err      error
}

func (r *recordingPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	r.keys = append(r.keys, routingKey)
	r.messages = append(r.messages, message)
	return r.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMQPublisher_UsesEventTypeAsRoutingKey(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewMQPublisher(rec, discardLogger())

	evt := book.Event{Type: book.EventBookCreated, BookID: 3, Title: "Dune", OccurredAt: time.Now()}
	p.Publish(context.Background(), evt)

	require.Len(t, rec.keys, 1)
	assert.Equal(t, "book.created", rec.keys[0])
	assert.Equal(t, evt, rec.messages[0])
}

func TestMQPublisher_SwallowsErrors(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("channel closed")}
	p := NewMQPublisher(rec, discardLogger())

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), book.Event{Type: book.EventBookRemoved, BookID: 1})
	})
}

func TestNewPublisher_DisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}
	pub, cleanup, err := NewPublisher(cfg, discardLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, NoopPublisher{}, pub)
	pub.Publish(context.Background(), book.Event{Type: book.EventBookCreated})
}
