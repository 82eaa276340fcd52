package storage

import (
	"fmt"

	"go.uber.org/zap"

	"BoostMe/config"
	"BoostMe/pkg/logger"
	"BoostMe/storage/mq"
	"BoostMe/storage/redis"
	"BoostMe/storage/sqlite"
)

// Init 按配置初始化存储层：本地存储必选，redis 与 mq 可选
func Init() error {
	switch config.Cfg.StoreDriver {
	case "sqlite":
		if err := sqlite.Init(); err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
	case "redis":
		if err := redis.Init(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	// 限流只在 redis 可用时生效
	if config.Cfg.RateLimitEnabled && config.Cfg.StoreDriver != "redis" {
		if err := redis.Init(); err != nil {
			logger.Logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		}
	}

	if config.Cfg.MQEnabled {
		if err := mq.Init(); err != nil {
			// 系统通知不保证送达，MQ 不可用时只保留应用内提醒
			logger.Logger.Warn("RabbitMQ unavailable, OS notifications disabled", zap.Error(err))
		}
	}

	return nil
}
