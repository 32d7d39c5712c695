package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// CodeOK 成功响应的code
const CodeOK = "OK"

// Response 统一响应结构
// 设计说明：
// 1. Code是稳定的字符串错误码（OK或apperrors.Kind），客户端据此判断结果类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
// 4. Errors只在校验失败时出现，每个违反的字段/规则一项
type Response struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// statusByKind 错误码到HTTP状态码的映射
// 领域层只产出Kind，这里是唯一感知HTTP语义的地方
var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation:           http.StatusBadRequest,
	apperrors.KindUnsupportedProvider:  http.StatusBadRequest,
	apperrors.KindEmailAlreadyExists:   http.StatusConflict,
	apperrors.KindEmailNotFound:        http.StatusNotFound,
	apperrors.KindIncorrectCredentials: http.StatusUnauthorized,
	apperrors.KindUnauthenticated:      http.StatusUnauthorized,
	apperrors.KindAccountNotFound:      http.StatusUnauthorized,
	apperrors.KindBookNotFound:         http.StatusNotFound,
	apperrors.KindInternal:             http.StatusInternalServerError,
}

// StatusOf 返回Kind对应的HTTP状态码
func StatusOf(kind apperrors.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Created 资源创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	resp, err := h.registerUseCase.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只进日志，不回给客户端
	if appErr.Err != nil {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"code", appErr.Kind,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"error", appErr.Err,
		)
	}

	c.JSON(StatusOf(appErr.Kind), Response{
		Code:    string(appErr.Kind),
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// Abort 错误响应并终止后续Handler（中间件使用）
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
