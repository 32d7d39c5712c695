package errors

import (
	"errors"
	"fmt"
)

// Kind 业务错误类型
// 设计说明：
// 1. Kind是稳定的字符串错误码，客户端据此判断错误类型
// 2. 集合是封闭的，每个业务结果对应一个Kind
// 3. HTTP状态码由传输层（pkg/response）映射，领域层不感知
type Kind string

const (
	KindValidation           Kind = "VALIDATION_ERROR"
	KindEmailAlreadyExists   Kind = "EMAIL_ALREADY_EXISTS"
	KindEmailNotFound        Kind = "EMAIL_NOT_FOUND"
	KindIncorrectCredentials Kind = "INCORRECT_CREDENTIALS"
	KindAccountNotFound      Kind = "ACCOUNT_NOT_FOUND"
	KindUnauthenticated      Kind = "UNAUTHENTICATED"
	KindBookNotFound         Kind = "BOOK_NOT_FOUND"
	KindUnsupportedProvider  Kind = "UNSUPPORTED_PROVIDER"
	KindInternal             Kind = "INTERNAL_ERROR"
)

// FieldError 单个字段的校验失败
// 一个字段违反多条规则时，每条规则各占一项
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// AppError 自定义应用错误
// 设计说明：
// 1. Kind用于客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Fields只在校验类错误中出现
// 4. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Kind    Kind         `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同Kind的AppError视为相等
// 这样 errors.Is(err, book.ErrBookNotFound) 对带上下文的副本同样成立
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && t.Err == nil && len(t.Fields) == 0
}

// New 创建新的AppError
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Validation 创建校验错误
func Validation(fields ...FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: "参数校验失败",
		Fields:  fields,
	}
}

// WithField 返回附带字段信息的副本（预定义错误是共享的，不能原地修改）
func (e *AppError) WithField(field, rule, message string) *AppError {
	cp := *e
	cp.Fields = append(append([]FieldError(nil), e.Fields...), FieldError{
		Field:   field,
		Rule:    rule,
		Message: message,
	})
	return &cp
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	ErrInternal        = New(KindInternal, "系统内部错误")
	ErrUnauthenticated = New(KindUnauthenticated, "请先登录")
	ErrInvalidToken    = New(KindUnauthenticated, "无效的Token")
	ErrTokenExpired    = New(KindUnauthenticated, "Token已过期")
	ErrTokenRevoked    = New(KindUnauthenticated, "Token已失效，请重新登录")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// KindOf 返回错误的Kind，非AppError一律视为内部错误
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return GetAppError(err).Kind
}
