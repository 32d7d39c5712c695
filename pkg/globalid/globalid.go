// Package globalid 全局ID编解码
//
// 对外暴露的资源ID是 base64("Type:id") 形式的不透明字符串，
// 客户端不应依赖其内部结构。
//
// 哪些字段是ID由请求结构体显式声明：
//
//	type RemoveBookRequest struct {
//	    BookID string `uri:"id" globalid:"Book" validate:"required,numeric"`
//	}
//
// DecodeFields 只处理带 globalid 标签的字段；解码失败时保留原值，
// 交给后续的校验去拒绝。
package globalid

import (
	"encoding/base64"
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// ErrMalformed 全局ID格式错误
var ErrMalformed = errors.New("globalid: malformed global id")

// Encode 编码全局ID
func Encode(typeName string, id uint) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + strconv.FormatUint(uint64(id), 10)))
}

// Decode 解码全局ID，返回类型名和数据库ID
func Decode(globalID string) (string, uint, error) {
	raw, err := base64.StdEncoding.DecodeString(globalID)
	if err != nil {
		return "", 0, ErrMalformed
	}

	typeName, idPart, ok := strings.Cut(string(raw), ":")
	if !ok || typeName == "" {
		return "", 0, ErrMalformed
	}

	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return "", 0, ErrMalformed
	}
	return typeName, uint(id), nil
}

// DecodeAs 解码并校验类型名
func DecodeAs(typeName, globalID string) (uint, error) {
	got, id, err := Decode(globalID)
	if err != nil {
		return 0, err
	}
	if got != typeName {
		return 0, ErrMalformed
	}
	return id, nil
}

// DecodeFields 将结构体中声明为全局ID的字符串字段替换成十进制数据库ID
//
// v 必须是结构体指针。解码失败的字段保持原值不变。
func DecodeFields(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		typeName, ok := rt.Field(i).Tag.Lookup("globalid")
		if !ok {
			continue
		}
		field := rv.Field(i)
		if field.Kind() != reflect.String || !field.CanSet() {
			continue
		}
		if id, err := DecodeAs(typeName, strings.TrimSpace(field.String())); err == nil {
			field.SetString(strconv.FormatUint(uint64(id), 10))
		}
	}
}
