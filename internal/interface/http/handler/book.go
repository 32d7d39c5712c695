package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/globalid"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 所有接口都需要登录，当前账号由认证中间件放入Context，这里显式传给用例
type BookHandler struct {
	searchUseCase *catalog.SearchBooksUseCase
	createUseCase *catalog.CreateBookFromExternalUseCase
	getUseCase    *catalog.GetBookUseCase
	removeUseCase *catalog.RemoveBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	searchUseCase *catalog.SearchBooksUseCase,
	createUseCase *catalog.CreateBookFromExternalUseCase,
	getUseCase *catalog.GetBookUseCase,
	removeUseCase *catalog.RemoveBookUseCase,
) *BookHandler {
	return &BookHandler{
		searchUseCase: searchUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		removeUseCase: removeUseCase,
	}
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  先搜本地（书名、作者、分类，不区分大小写的包含匹配），本地没有结果时查询外部数据源
// @Description  本地命中全部返回；外部结果按 google、openlibrary 的顺序拼接，每个数据源最多20条
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        q query string false "关键词"
// @Success      200 {object} response.Response{data=dto.SearchBooksResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var query dto.SearchBooksQuery
	// form绑定只会因为类型不匹配失败，字符串字段不会
	_ = c.ShouldBindQuery(&query)

	result, err := h.searchUseCase.Execute(c.Request.Context(), middleware.MustGetAccount(c), catalog.SearchBooksRequest{
		Term: query.Q,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSearchBooksResponse(result.Source, result.Results))
}

// CreateBook 从外部数据源入库
// @Summary      外部图书入库
// @Description  按数据源和外部ID获取图书并写入本地，同名作者/分类复用已有记录
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "数据源和外部ID"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误或UNSUPPORTED_PROVIDER"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "BOOK_NOT_FOUND"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.createUseCase.Execute(c.Request.Context(), middleware.MustGetAccount(c), catalog.CreateBookFromExternalRequest{
		ExternalID: req.ExternalID,
		Provider:   req.Provider,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToBookResponse(b))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书全局ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "ID格式错误"
// @Failure      404 {object} response.Response "BOOK_NOT_FOUND"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id := bookID(c)

	b, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetAccount(c), catalog.GetBookRequest{BookID: id})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBookResponse(b))
}

// RemoveBook 删除图书
// @Summary      删除图书
// @Description  同时删除作者、分类关联；作者和分类本身保留
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书全局ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "ID格式错误"
// @Failure      404 {object} response.Response "BOOK_NOT_FOUND"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) RemoveBook(c *gin.Context) {
	id := bookID(c)

	if err := h.removeUseCase.Execute(c.Request.Context(), middleware.MustGetAccount(c), catalog.RemoveBookRequest{BookID: id}); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// bookID 读取路径参数并把全局ID解码为数据库ID
// 解码失败时保留原值，由应用层的numeric规则拒绝
func bookID(c *gin.Context) string {
	req := dto.BookIDRequest{ID: c.Param("id")}
	globalid.DecodeFields(&req)
	return req.ID
}
