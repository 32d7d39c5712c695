// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、入库图书总数、数据源调用失败次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的请求数、熔断器状态
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、数据源响应耗时（P50、P90、P99）
//
// # 使用示例
//
//	// 1. 程序启动时初始化一次
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 业务代码中记录指标
//	start := time.Now()
//	records, err := source.Search(ctx, q, 20)
//	metrics.ObserveHistogramVec(metrics.ProviderRequestDuration,
//	    map[string]string{"provider": "google", "operation": "search"},
//	    time.Since(start).Seconds())
//
// 辅助函数对未初始化（nil）的指标是空操作，单元测试中不必先调用 InitMetrics。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 外部数据源指标

	// ProviderRequestsTotal 数据源调用总数
	// 标签：provider（google/openlibrary）、operation（search/fetch）、
	//      result（success/not_found/failure/rejected）
	ProviderRequestsTotal *prometheus.CounterVec

	// ProviderRequestDuration 数据源调用耗时
	// 桶覆盖到超时上限（默认8秒）
	ProviderRequestDuration *prometheus.HistogramVec

	// CircuitBreakerState 熔断器状态
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// SearchCacheTotal 外部搜索结果缓存命中情况
	// 标签：result（hit/miss）
	SearchCacheTotal *prometheus.CounterVec

	// 业务指标

	// SearchesTotal 搜索次数
	// 标签：source（local/external/empty）
	SearchesTotal *prometheus.CounterVec

	// BooksMaterializedTotal 从外部数据源入库的图书数
	BooksMaterializedTotal prometheus.Counter

	// MaterializationDuration 入库耗时（含外部获取和事务）
	MaterializationDuration prometheus.Histogram

	// BooksRemovedTotal 删除的图书数
	BooksRemovedTotal prometheus.Counter

	// AccountsRegisteredTotal 注册账号数
	AccountsRegisteredTotal prometheus.Counter

	// LoginsTotal 登录次数
	// 标签：result（success/email_not_found/incorrect_credentials）
	LoginsTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 事件发布总数
	// 标签：routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标（注册到默认Registry，重复调用无副作用）
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "外部图书数据源调用总数",
		},
		[]string{"provider", "operation", "result"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "外部图书数据源调用耗时（秒）",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 10},
		},
		[]string{"provider", "operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	SearchCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_total",
			Help: "外部搜索结果缓存命中情况",
		},
		[]string{"result"},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_searches_total",
			Help: "图书搜索次数（按结果来源）",
		},
		[]string{"source"},
	)

	BooksMaterializedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_materialized_total",
			Help: "从外部数据源入库的图书总数",
		},
	)

	MaterializationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "book_materialization_duration_seconds",
			Help:    "外部图书入库耗时（秒）",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	BooksRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_removed_total",
			Help: "删除的图书总数",
		},
	)

	AccountsRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_registered_total",
			Help: "注册账号总数",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "登录次数",
		},
		[]string{"result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布总数",
		},
		[]string{"routing_key", "result"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
