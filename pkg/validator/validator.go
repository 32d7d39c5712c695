// Package validator 请求参数校验
//
// 基于 go-playground/validator，但与默认用法有两点不同：
// 1. 逐条规则校验，同一字段违反多条规则时全部报告（默认只报第一条）
// 2. 校验前去掉字符串字段两端空白
//
// 自定义规则：
//   - email_format：本地部分为单词字符/点，@，域名至少一个点分段，顶级域名2位以上
//   - password_strength：至少一个字母和一个数字
package validator

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[\w.]+@(?:\w+\.)+\w{2,}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// engine 返回进程内共享的validator实例（validator.Validate 并发安全且会缓存结构体信息）
func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("email_format", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
			var letter, digit bool
			for _, r := range fl.Field().String() {
				switch {
				case unicode.IsLetter(r):
					letter = true
				case unicode.IsDigit(r):
					digit = true
				}
			}
			return letter && digit
		})
		instance = v
	})
	return instance
}

// Struct 校验结构体，返回所有违反的规则；全部通过返回nil
//
// 字段名取json标签（其次form/uri标签），与客户端看到的名字一致。
// required 失败时不再检查该字段的其他规则。
func Struct(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return apperrors.Validation(apperrors.FieldError{Rule: "required", Message: "请求体不能为空"})
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var fields []apperrors.FieldError
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}
		name := fieldName(sf)
		value := rv.Field(i).Interface()

		for _, rule := range strings.Split(tag, ",") {
			if err := engine().Var(value, rule); err != nil {
				fields = append(fields, apperrors.FieldError{
					Field:   name,
					Rule:    ruleName(rule),
					Message: message(name, rule),
				})
				if rule == "required" {
					break
				}
			}
		}
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}

// TrimStrings 去掉结构体中所有字符串字段两端的空白
func TrimStrings(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

func fieldName(sf reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		if tag, ok := sf.Tag.Lookup(key); ok {
			if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
				return name
			}
		}
	}
	return sf.Name
}

func ruleName(rule string) string {
	name, _, _ := strings.Cut(rule, "=")
	return name
}

// message 规则对应的提示信息
func message(field, rule string) string {
	name, param, _ := strings.Cut(rule, "=")
	switch name {
	case "required":
		return field + "不能为空"
	case "min":
		return field + "长度不能少于" + param + "位"
	case "max":
		return field + "长度不能超过" + param + "位"
	case "email_format":
		return "邮箱格式不正确"
	case "password_strength":
		return "密码必须同时包含字母和数字"
	case "numeric":
		return field + "必须是有效的ID"
	case "oneof":
		return field + "必须是以下之一: " + param
	default:
		return field + "不合法"
	}
}
