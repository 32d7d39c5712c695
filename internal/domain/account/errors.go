package account

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 账号领域错误
// 说明：这些都是预期内的业务结果，以AppError返回，由传输层映射成响应
var (
	ErrEmailAlreadyExists = apperrors.New(apperrors.KindEmailAlreadyExists, "该邮箱已被注册")
	ErrEmailNotFound      = apperrors.New(apperrors.KindEmailNotFound, "该邮箱尚未注册")

	// ErrIncorrectCredentials 密码错误和密文无法解密共用一个错误，不向客户端区分
	ErrIncorrectCredentials = apperrors.New(apperrors.KindIncorrectCredentials, "邮箱或密码不正确")

	// ErrAccountNotFound Token有效但账号已不存在
	ErrAccountNotFound = apperrors.New(apperrors.KindAccountNotFound, "账号已不存在")
)
