package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// SearchBooksUseCase 图书搜索用例（本地优先，外部兜底）
// 设计说明：
// 1. 本地有结果时直接返回，不调用任何外部数据源
// 2. 本地没有结果时并发查询所有数据源，结果按固定顺序拼接
// 3. 数据源失败已经在Provider内部折叠为空列表，这里不会收到错误
type SearchBooksUseCase struct {
	bookService book.Service
	providers   book.Providers
	logger      *slog.Logger
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service, providers book.Providers, logger *slog.Logger) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookService: bookService,
		providers:   providers,
		logger:      logger,
	}
}

// SearchBooksRequest 搜索请求
type SearchBooksRequest struct {
	Term string `json:"q" validate:"max=200"`
}

// SearchBooksResponse 搜索响应
// Source：local（本地命中）、external（外部结果）、empty（都没有）
type SearchBooksResponse struct {
	Source  string
	Results []book.SearchResult
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, acc *account.Account, req SearchBooksRequest) (*SearchBooksResponse, error) {
	if acc == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	validator.TrimStrings(&req)
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "catalog", "SearchBooks")
	defer span.End()

	if req.Term == "" {
		return uc.done("empty", []book.SearchResult{}), nil
	}

	// 1. 本地搜索
	local, err := uc.bookService.SearchLocal(ctx, req.Term)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if len(local) > 0 {
		results := make([]book.SearchResult, len(local))
		for i, b := range local {
			results[i] = book.LocalResult(b)
		}
		return uc.done("local", results), nil
	}

	// 2. 外部数据源并发查询，每个数据源写自己的槽位，保证拼接顺序
	providers := uc.providers.Ordered()
	slots := make([][]book.ExternalBookRecord, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		i, p := i, p
		g.Go(func() error {
			slots[i] = p.Search(gctx, req.Term, book.MaxSearchResults)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]book.SearchResult, 0)
	for _, records := range slots {
		for _, rec := range records {
			results = append(results, book.ExternalResult(rec))
		}
	}

	uc.logger.DebugContext(ctx, "本地无结果，使用外部数据源", "term", req.Term, "results", len(results))
	if len(results) == 0 {
		return uc.done("empty", results), nil
	}
	return uc.done("external", results), nil
}

func (uc *SearchBooksUseCase) done(source string, results []book.SearchResult) *SearchBooksResponse {
	metrics.IncCounterVec(metrics.SearchesTotal, map[string]string{"source": source})
	return &SearchBooksResponse{Source: source, Results: results}
}
