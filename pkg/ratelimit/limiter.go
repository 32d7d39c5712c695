// Package ratelimit 外部服务调用限流
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter 带名字的令牌桶限流器（名字用于日志和错误信息）
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New 创建限流器，突发容量等于每秒请求数
// requestsPerSecond <= 0 表示不限流
func New(name string, requestsPerSecond int) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0), name: name}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		name:    name,
	}
}

// Wait 阻塞直到允许发出请求；ctx取消或截止时间不够等待时返回错误
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Allow 非阻塞判断
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Name 限流器名字
func (l *Limiter) Name() string {
	return l.name
}
