package cache

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"BoostMe/storage/redis"
)

const (
	messageProcessedPrefix = "mq:processed"
	processedTTL           = 24 * time.Hour
)

// MessageMarker 基于 SETNX 的消息幂等标记，worker 重复收到同一条通知时跳过
type MessageMarker struct {
	rdb goredis.Cmdable
	key func(parts ...string) string
}

// NewMessageMarker rdb 为 nil 时所有消息都视为首次处理
func NewMessageMarker(rdb goredis.Cmdable) *MessageMarker {
	return &MessageMarker{rdb: rdb, key: redis.Key}
}

// TryMarkProcessing 返回 true 表示首次处理，false 表示重复消息或正在处理
func (m *MessageMarker) TryMarkProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	if m == nil || m.rdb == nil || messageID == "" {
		return true, nil
	}
	if ttl <= 0 {
		ttl = processedTTL
	}

	ok, err := m.rdb.SetNX(ctx, m.key(messageProcessedPrefix, messageID), "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return ok, nil
}

// Unmark 处理失败时调用，允许重投后重试
func (m *MessageMarker) Unmark(ctx context.Context, messageID string) error {
	if m == nil || m.rdb == nil || messageID == "" {
		return nil
	}
	return m.rdb.Del(ctx, m.key(messageProcessedPrefix, messageID)).Err()
}

// MarkProcessed 处理成功后延长 TTL
func (m *MessageMarker) MarkProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	if m == nil || m.rdb == nil || messageID == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = processedTTL
	}
	return m.rdb.Set(ctx, m.key(messageProcessedPrefix, messageID), "completed", ttl).Err()
}
