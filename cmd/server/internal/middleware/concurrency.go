package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/houzhh15/transcript-minutes/pkg/logger"
)

// BusyMessage 无法在等待时间内获得执行槽位时返回
const BusyMessage = "現在混み合っています。しばらくしてから再度お試しください"

// ConcurrencyLimiter 限制同时进行的上游调用请求数
type ConcurrencyLimiter struct {
	sem  *semaphore.Weighted
	wait time.Duration
}

// NewConcurrencyLimiter 创建限流器；max <= 0 时返回 nil，表示不限制
func NewConcurrencyLimiter(max int64, wait time.Duration) *ConcurrencyLimiter {
	if max <= 0 {
		return nil
	}
	return &ConcurrencyLimiter{
		sem:  semaphore.NewWeighted(max),
		wait: wait,
	}
}

// Acquire 在 wait 时间内等待一个槽位
func (l *ConcurrencyLimiter) Acquire(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()
	return l.sem.Acquire(timeoutCtx, 1)
}

// Release 释放槽位，应在 Acquire 成功后 defer 调用
func (l *ConcurrencyLimiter) Release() {
	l.sem.Release(1)
}

// Middleware 包装为 gin 中间件；nil 限流器直接放行
func (l *ConcurrencyLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		if err := l.Acquire(c.Request.Context()); err != nil {
			logger.L().Warn("concurrency limit reached", "rid", RequestID(c), "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": BusyMessage})
			return
		}
		defer l.Release()
		c.Next()
	}
}
