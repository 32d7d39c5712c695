package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// RemoveBookUseCase 删除图书用例
// 教学要点:
// 1. 先加锁确认图书存在,不存在时直接返回,不执行任何写操作
// 2. 按顺序删除作者关联、分类关联、图书本身,全部在同一事务中
// 3. 作者和分类本身保留(可能被其他图书引用)
type RemoveBookUseCase struct {
	bookRepo  book.Repository
	txManager *mysql.TxManager
	publisher book.EventPublisher
	logger    *slog.Logger
}

// NewRemoveBookUseCase 创建删除用例
func NewRemoveBookUseCase(
	bookRepo book.Repository,
	txManager *mysql.TxManager,
	publisher book.EventPublisher,
	logger *slog.Logger,
) *RemoveBookUseCase {
	return &RemoveBookUseCase{
		bookRepo:  bookRepo,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// RemoveBookRequest 删除请求（ID已由传输层从全局ID解码）
type RemoveBookRequest struct {
	BookID string `json:"id" validate:"required,numeric"`
}

// Execute 执行删除，图书不存在时返回ErrBookNotFound
func (uc *RemoveBookUseCase) Execute(ctx context.Context, acc *account.Account, req RemoveBookRequest) error {
	if acc == nil {
		return apperrors.ErrUnauthenticated
	}

	validator.TrimStrings(&req)
	if err := validator.Struct(&req); err != nil {
		return err
	}
	id, err := parseID(req.BookID)
	if err != nil {
		return err
	}

	ctx, span := tracing.StartSpan(ctx, "catalog", "RemoveBook")
	defer span.End()

	removed, err := uc.remove(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}
	if !removed {
		return book.ErrBookNotFound
	}

	metrics.IncCounter(metrics.BooksRemovedTotal)
	uc.logger.InfoContext(ctx, "图书已删除", "book_id", id, "account_id", acc.ID)

	uc.publisher.Publish(ctx, book.Event{
		Type:       book.EventBookRemoved,
		BookID:     id,
		AccountID:  acc.ID,
		OccurredAt: time.Now(),
	})
	return nil
}

// remove 事务删除，返回false表示图书不存在
func (uc *RemoveBookUseCase) remove(ctx context.Context, id uint) (bool, error) {
	removed := false
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		// 1. 锁定图书行
		if _, err := uc.bookRepo.LockByID(ctx, id); err != nil {
			if apperrors.KindOf(err) == apperrors.KindBookNotFound {
				return nil
			}
			return err
		}

		// 2. 先删关联行（存储层没有级联）
		if _, err := uc.bookRepo.DeleteAuthorLinks(ctx, id); err != nil {
			return err
		}
		if _, err := uc.bookRepo.DeleteCategoryLinks(ctx, id); err != nil {
			return err
		}

		// 3. 再删图书
		if err := uc.bookRepo.Delete(ctx, id); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// parseID 解析已校验为数字的ID，负数、0和溢出都视为不存在
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, book.ErrBookNotFound
	}
	return uint(id), nil
}
