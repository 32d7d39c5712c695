package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/account"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// GetBookRequest 详情请求
type GetBookRequest struct {
	BookID string `json:"id" validate:"required,numeric"`
}

// Execute 查询图书及其作者、分类
func (uc *GetBookUseCase) Execute(ctx context.Context, acc *account.Account, req GetBookRequest) (*book.Book, error) {
	if acc == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	validator.TrimStrings(&req)
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}
	id, err := parseID(req.BookID)
	if err != nil {
		return nil, err
	}
	return uc.bookService.GetBook(ctx, id)
}
