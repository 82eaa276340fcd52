package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"BoostMe/internal/cache"
	"BoostMe/internal/model"
	"BoostMe/pkg/logger"
	"BoostMe/storage/mq"
)

// Deliverer 把通知真正展示给用户
type Deliverer interface {
	Deliver(ctx context.Context, msg model.ReminderNotificationMessage) error
}

// ReminderHandler 返回提醒通知的消息处理函数，重复消息直接确认
func ReminderHandler(deliverer Deliverer, marker *cache.MessageMarker) mq.MessageHandler {
	return func(ctx context.Context, body []byte) error {
		var msg model.ReminderNotificationMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			// 格式错误的消息重投也无法处理
			logger.Logger.Error("Dropping malformed reminder notification", zap.Error(err))
			return nil
		}

		first, err := marker.TryMarkProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !first {
			logger.Logger.Info("Reminder notification already processed, skipping",
				zap.String("message_id", msg.MessageID),
			)
			return nil
		}

		if err := deliverer.Deliver(ctx, msg); err != nil {
			_ = marker.Unmark(ctx, msg.MessageID)
			return fmt.Errorf("failed to deliver reminder notification: %w", err)
		}

		if err := marker.MarkProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		logger.Logger.Info("Delivered reminder notification",
			zap.String("message_id", msg.MessageID),
			zap.String("type", string(msg.Type)),
		)
		return nil
	}
}

// StartReminderConsumer 阻塞消费提醒通知直到 ctx 结束
func StartReminderConsumer(ctx context.Context, deliverer Deliverer, marker *cache.MessageMarker) error {
	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         mq.ReminderQueue,
		ConsumerTag:   "reminder_notification_consumer",
		PrefetchCount: 10,
		Handler:       ReminderHandler(deliverer, marker),
	})
}
