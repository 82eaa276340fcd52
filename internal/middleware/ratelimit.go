package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"BoostMe/pkg/errors"
	"BoostMe/pkg/logger"
	"BoostMe/pkg/response"
	"BoostMe/storage/redis"
)

// RateLimitConfig 按客户端 IP 的滑动窗口限流
type RateLimitConfig struct {
	// 时间窗口
	Window time.Duration
	// 时间窗口内最大请求数
	MaxRequests int
	KeyPrefix   string
	// OnLimited 被限流时写响应，为空时使用统一错误格式
	OnLimited app.HandlerFunc
}

// RelayRateLimitConfig relay 的默认限流：每秒 rps 次
func RelayRateLimitConfig(rps int) RateLimitConfig {
	if rps <= 0 {
		rps = 5
	}
	return RateLimitConfig{
		Window:      time.Second,
		MaxRequests: rps,
		KeyPrefix:   "rate:relay",
	}
}

type RateLimiter struct {
	config RateLimitConfig
	rdb    goredis.Cmdable
	now    func() time.Time
}

func NewRateLimiter(rdb goredis.Cmdable, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{config: config, rdb: rdb, now: time.Now}
}

func (rl *RateLimiter) key(c *app.RequestContext) string {
	return redis.Key(rl.config.KeyPrefix, "ip", c.ClientIP())
}

// Allow zset 实现滑动窗口，返回是否放行和窗口内请求数
func (rl *RateLimiter) Allow(ctx context.Context, c *app.RequestContext) (bool, int, error) {
	key := rl.key(c)
	now := rl.now()
	windowStart := now.Add(-rl.config.Window)

	pipe := rl.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, goredis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.NewString(),
	})
	zcard := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window+10*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(zcard.Val())
	return count <= rl.config.MaxRequests, count, nil
}

// RateLimitMiddleware redis 出错时放行
func RateLimitMiddleware(rdb goredis.Cmdable, config RateLimitConfig) app.HandlerFunc {
	limiter := NewRateLimiter(rdb, config)

	return func(ctx context.Context, c *app.RequestContext) {
		allowed, count, err := limiter.Allow(ctx, c)
		if err != nil {
			logger.Logger.Warn("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(config.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(max(config.MaxRequests-count, 0)))

		if !allowed {
			logger.Logger.Info("Rate limit exceeded", zap.String("client_ip", c.ClientIP()))
			if config.OnLimited != nil {
				config.OnLimited(ctx, c)
			} else {
				response.Error(ctx, c, errors.RateLimited)
			}
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}
