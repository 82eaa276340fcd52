package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"BoostMe/config"
	"BoostMe/internal/cache"
	"BoostMe/internal/queue"
	"BoostMe/pkg/logger"
	"BoostMe/storage"
	"BoostMe/storage/mq"
	"BoostMe/storage/redis"
)

// worker 消费系统通知消息并投递到桌面通知 webhook
func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := mq.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize RabbitMQ", zap.Error(err))
	}
	defer storage.Close()

	// 幂等标记依赖 redis，不可用时按首次消息处理
	marker := cache.NewMessageMarker(nil)
	if err := redis.Init(); err != nil {
		logger.Logger.Warn("Redis unavailable, duplicate notifications are possible", zap.Error(err))
	} else {
		marker = cache.NewMessageMarker(redis.Client())
	}

	var deliverer queue.Deliverer = queue.LogDeliverer{}
	if config.Cfg.NotifyWebhookURL != "" {
		webhook, err := queue.NewWebhookDeliverer(config.Cfg.NotifyWebhookURL, config.Cfg.NotifyWebhookSecret)
		if err != nil {
			logger.Logger.Fatal("Failed to initialize notification webhook", zap.Error(err))
		}
		deliverer = webhook
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
		zap.Bool("webhook", config.Cfg.NotifyWebhookURL != ""),
	)

	if err := queue.StartReminderConsumer(ctx, deliverer, marker); err != nil && ctx.Err() == nil {
		logger.Logger.Error("Reminder consumer stopped", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
