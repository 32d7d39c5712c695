package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在（删除目标不存在，或外部数据源找不到）
	ErrBookNotFound = apperrors.New(apperrors.KindBookNotFound, "图书不存在")

	// ErrUnsupportedProvider 无法识别的数据源标识
	ErrUnsupportedProvider = apperrors.New(apperrors.KindUnsupportedProvider, "不支持的数据源")
)
