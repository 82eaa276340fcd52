package queue

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BoostMe/internal/model"
	"BoostMe/pkg/logger"
	"BoostMe/storage/mq"
)

// ReminderPublisher 把系统通知投递到 RabbitMQ，由 worker 推送到桌面
type ReminderPublisher struct{}

func NewReminderPublisher() *ReminderPublisher {
	return &ReminderPublisher{}
}

// NotifyOS 发布提醒通知消息
func (p *ReminderPublisher) NotifyOS(ctx context.Context, msg model.ReminderNotificationMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = "reminder_" + uuid.NewString()
	}

	if err := mq.PublishMessage(ctx, mq.NotifyExchange, mq.ReminderRoutingKey, msg.MessageID, msg); err != nil {
		logger.Logger.Error("Failed to publish reminder notification",
			zap.String("message_id", msg.MessageID),
			zap.String("type", string(msg.Type)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published reminder notification",
		zap.String("message_id", msg.MessageID),
		zap.String("type", string(msg.Type)),
		zap.String("date", msg.Date),
		zap.String("time", msg.Time),
	)
	return nil
}
