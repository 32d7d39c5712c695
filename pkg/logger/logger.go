// Package logger 根据配置构建 slog.Logger
//
//   - format=console：humanlog（开发环境，人类可读）
//   - format=json：slog.JSONHandler（生产环境，方便日志采集）
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lepinkainen/humanlog"
)

// Options 日志配置（与 config.LogConfig 字段一一对应，避免pkg依赖internal）
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | 文件路径
	EnableCaller bool
}

// New 创建Logger，返回的close函数用于关闭日志文件（stdout/stderr时为空操作）
func New(opts Options) (*slog.Logger, func() error, error) {
	w, closeFn, err := openOutput(opts.Output)
	if err != nil {
		return nil, nil, err
	}

	level := ParseLevel(opts.Level)

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: opts.EnableCaller,
		})
	default:
		handler = humanlog.NewHandler(w, &humanlog.Options{
			Level: level,
		})
	}

	return slog.New(handler), closeFn, nil
}

// ParseLevel 解析日志级别，无法识别时使用info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch output {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, f.Close, nil
}
