// Package handler HTTP处理器
//
// Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应。
// 字段格式校验在应用层完成，这里只处理JSON本身无法解析的情况。
package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// bindJSON 解析请求体，JSON格式错误时直接返回校验错误
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperrors.Validation(apperrors.FieldError{
			Field:   "body",
			Rule:    "json",
			Message: "请求体不是合法的JSON",
		}))
		return false
	}
	return true
}
