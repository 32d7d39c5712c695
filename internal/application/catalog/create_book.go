package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// CreateBookFromExternalUseCase 外部图书入库用例
// 教学要点:
// 1. 外部获取在事务之外完成,不让HTTP调用占着数据库连接
// 2. 创建图书、查找或创建作者/分类、写关联行在同一事务中,任何一步失败整体回滚
// 3. 同名作者/分类只保留一行,同一条记录里重复的名字各建一条关联
// 4. 事务提交后再发布事件
type CreateBookFromExternalUseCase struct {
	bookService book.Service
	bookRepo    book.Repository
	providers   book.Providers
	txManager   *mysql.TxManager
	publisher   book.EventPublisher
	logger      *slog.Logger
}

// NewCreateBookFromExternalUseCase 创建入库用例
func NewCreateBookFromExternalUseCase(
	bookService book.Service,
	bookRepo book.Repository,
	providers book.Providers,
	txManager *mysql.TxManager,
	publisher book.EventPublisher,
	logger *slog.Logger,
) *CreateBookFromExternalUseCase {
	return &CreateBookFromExternalUseCase{
		bookService: bookService,
		bookRepo:    bookRepo,
		providers:   providers,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateBookFromExternalRequest 入库请求
type CreateBookFromExternalRequest struct {
	ExternalID string `json:"external_id" validate:"required,max=128"`
	Provider   string `json:"provider" validate:"required"`
}

// Execute 执行入库
func (uc *CreateBookFromExternalUseCase) Execute(ctx context.Context, acc *account.Account, req CreateBookFromExternalRequest) (*book.Book, error) {
	if acc == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	validator.TrimStrings(&req)
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	// 1. 数据源标识必须可识别（不做任何查询）
	name, err := book.ParseProviderName(req.Provider)
	if err != nil {
		return nil, err
	}
	provider, ok := uc.providers[name]
	if !ok {
		return nil, book.ErrUnsupportedProvider.WithField("provider", "oneof", "数据源未启用: "+string(name))
	}

	ctx, span := tracing.StartSpan(ctx, "catalog", "CreateBookFromExternal")
	defer span.End()
	start := time.Now()

	// 2. 外部获取，找不到时不写任何数据
	rec, err := provider.Fetch(ctx, req.ExternalID)
	if err != nil {
		if errors.Is(err, book.ErrExternalBookNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "获取外部图书失败")
	}

	b, authorNames, categoryNames, err := uc.bookService.PrepareMaterialization(rec)
	if err != nil {
		return nil, err
	}

	// 3. 单事务写入
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.bookRepo.Create(ctx, b); err != nil {
			return err
		}

		b.Authors = make([]book.Author, 0, len(authorNames))
		for _, n := range authorNames {
			author, err := uc.bookRepo.FindOrCreateAuthor(ctx, n)
			if err != nil {
				return err
			}
			if err := uc.bookRepo.LinkAuthor(ctx, b.ID, author.ID); err != nil {
				return err
			}
			b.Authors = append(b.Authors, *author)
		}

		b.Categories = make([]book.Category, 0, len(categoryNames))
		for _, n := range categoryNames {
			category, err := uc.bookRepo.FindOrCreateCategory(ctx, n)
			if err != nil {
				return err
			}
			if err := uc.bookRepo.LinkCategory(ctx, b.ID, category.ID); err != nil {
				return err
			}
			b.Categories = append(b.Categories, *category)
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.IncCounter(metrics.BooksMaterializedTotal)
	metrics.ObserveHistogram(metrics.MaterializationDuration, time.Since(start).Seconds())
	uc.logger.InfoContext(ctx, "外部图书已入库",
		"book_id", b.ID, "provider", name, "external_id", req.ExternalID, "account_id", acc.ID)

	// 4. 提交后发布事件
	uc.publisher.Publish(ctx, book.Event{
		Type:       book.EventBookCreated,
		BookID:     b.ID,
		Title:      b.Title,
		Provider:   name,
		ExternalID: req.ExternalID,
		AccountID:  acc.ID,
		OccurredAt: time.Now(),
	})

	return b, nil
}
