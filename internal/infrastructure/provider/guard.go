package provider

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// Options Guarded配置
type Options struct {
	Timeout    time.Duration // 单次调用超时
	MaxResults int           // 搜索结果上限
	Breaker    circuitbreaker.Config
}

// Guarded 带保护的数据源，实现book.Provider
type Guarded struct {
	source     Source
	breaker    *circuitbreaker.CircuitBreaker
	timeout    time.Duration
	maxResults int
	logger     *slog.Logger
}

var _ book.Provider = (*Guarded)(nil)

// NewGuarded 包装原始数据源
// "找不到"是正常业务结果，不计入熔断失败
func NewGuarded(source Source, opts Options, logger *slog.Logger) *Guarded {
	if opts.MaxResults <= 0 || opts.MaxResults > book.MaxSearchResults {
		opts.MaxResults = book.MaxSearchResults
	}

	cfg := opts.Breaker
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, book.ErrExternalBookNotFound)
	}

	name := string(source.Name())
	breaker := circuitbreaker.NewCircuitBreaker("provider."+name, cfg)
	breaker.SetStateChangeCallback(func(cbName string, from, to circuitbreaker.State) {
		logger.Warn("数据源熔断器状态变化", "name", cbName, "from", from.String(), "to", to.String())
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": cbName}, float64(to))
	})
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": breaker.Name()}, float64(circuitbreaker.StateClosed))

	return &Guarded{
		source:     source,
		breaker:    breaker,
		timeout:    opts.Timeout,
		maxResults: opts.MaxResults,
		logger:     logger.With("provider", name),
	}
}

// Name 数据源标识
func (g *Guarded) Name() book.ProviderName {
	return g.source.Name()
}

// Search 搜索外部图书，任何失败都返回空列表
func (g *Guarded) Search(ctx context.Context, query string, maxResults int) []book.ExternalBookRecord {
	if maxResults <= 0 || maxResults > g.maxResults {
		maxResults = g.maxResults
	}

	var records []book.ExternalBookRecord
	err := g.call(ctx, "search", func(ctx context.Context) error {
		var err error
		records, err = g.source.Search(ctx, query, maxResults)
		return err
	})
	if err != nil {
		return []book.ExternalBookRecord{}
	}

	if len(records) > maxResults {
		records = records[:maxResults]
	}
	for i := range records {
		records[i].Provider = g.Name()
	}
	if records == nil {
		records = []book.ExternalBookRecord{}
	}
	return records
}

// Fetch 按外部ID获取图书，任何失败都返回ErrExternalBookNotFound
func (g *Guarded) Fetch(ctx context.Context, externalID string) (*book.ExternalBookRecord, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, book.ErrExternalBookNotFound
	}

	var rec *book.ExternalBookRecord
	err := g.call(ctx, "fetch", func(ctx context.Context) error {
		var err error
		rec, err = g.source.Fetch(ctx, externalID)
		return err
	})
	if err != nil || rec == nil {
		return nil, book.ErrExternalBookNotFound
	}

	rec.Provider = g.Name()
	return rec, nil
}

// call 统一的调用保护：追踪 → 超时 → 熔断 → 指标/日志
func (g *Guarded) call(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	name := string(g.Name())
	ctx, span := tracing.StartSpan(ctx, "provider", "provider."+name+"."+operation)
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	err := g.breaker.Execute(func() error { return fn(ctx) })
	elapsed := time.Since(start)

	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, book.ErrExternalBookNotFound):
		result = "not_found"
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		result = "timeout"
	default:
		result = "error"
	}

	metrics.IncCounterVec(metrics.ProviderRequestsTotal,
		map[string]string{"provider": name, "operation": operation, "result": result})
	metrics.ObserveHistogramVec(metrics.ProviderRequestDuration,
		map[string]string{"provider": name, "operation": operation}, elapsed.Seconds())

	if err != nil && result != "not_found" {
		tracing.RecordError(span, err)
		g.logger.WarnContext(ctx, "数据源调用失败",
			"operation", operation, "result", result, "elapsed", elapsed, "error", err)
	}
	return err
}
