//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试对象是已经启动的服务（MySQL、Redis就绪），运行方式：
//
//	go test -tags integration -v ./test/integration/...
//
// BOOKCATALOG_BASE_URL 指定服务地址，默认 http://localhost:8080/api/v1

// Timeout HTTP请求超时时间（外部数据源可能较慢）
const Timeout = 30 * time.Second

// BaseURL API基础URL
var BaseURL = func() string {
	if v := os.Getenv("BOOKCATALOG_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080/api/v1"
}()

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"errors"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Authors []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"authors"`
	Categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
}

// SearchData 搜索响应数据
type SearchData struct {
	Source  string `json:"source"`
	Results []struct {
		Kind     string    `json:"kind"`
		Book     *BookData `json:"book"`
		External *struct {
			ExternalID string `json:"external_id"`
			Provider   string `json:"provider"`
			Title      string `json:"title"`
		} `json:"external"`
	} `json:"results"`
}

// Do 发送请求并解析统一响应
func Do(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// RegisterTestAccount 注册并登录，返回邮箱和Access Token
func RegisterTestAccount(t *testing.T, prefix string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(prefix)
	creds := map[string]string{"email": email, "password": "Test1234"}

	resp := Do(t, http.MethodPost, BaseURL+"/accounts", creds, "")
	require.Equal(t, "OK", resp.Code, "注册失败: %s", resp.Message)

	resp = Do(t, http.MethodPost, BaseURL+"/auth/login", creds, "")
	require.Equal(t, "OK", resp.Code, "登录失败: %s", resp.Message)

	var data LoginData
	require.NoError(t, json.Unmarshal(resp.Data, &data), "解析登录响应失败")
	return email, data.AccessToken
}
