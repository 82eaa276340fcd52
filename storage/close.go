package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"BoostMe/pkg/logger"
	"BoostMe/storage/mq"
	"BoostMe/storage/redis"
	"BoostMe/storage/sqlite"
)

// Close 优雅关闭所有存储连接
// 关闭顺序：MQ -> Redis -> SQLite，先停止投递再关闭本地数据
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	if err := mq.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close message queue", zap.Error(err))
	}

	if err := redis.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
	}

	if err := sqlite.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close SQLite database", zap.Error(err))
	}

	logger.Logger.Info("All storage connections closed")
}
