package schedule

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"BoostMe/internal/model"
	"BoostMe/pkg/logger"
)

// NotificationTitle 系统通知标题
const NotificationTitle = "BoostMe – Daily Reminder"

// 三种提醒文案，未知类型使用 both
const (
	MessageCheckIn = "ถึงเวลา Daily Check-in แล้วนะ ลองมาดูวันนี้รู้สึกอย่างไรกัน 💛"
	MessageBoost   = "ถึงเวลา Boost Missions แล้ว! มาลองทำภารกิจเล็ก ๆ เพื่อเพิ่มความมั่นใจกัน ✨"
	MessageBoth    = "นี่คือเวลาของคุณแล้ว! มาทำ Daily Check-in และ Boost Missions กันหน่อย 😊"
)

func MessageFor(t model.ReminderType) string {
	switch t {
	case model.ReminderCheckIn:
		return MessageCheckIn
	case model.ReminderBoost:
		return MessageBoost
	default:
		return MessageBoth
	}
}

// Alerter 应用内提醒
type Alerter interface {
	Alert(ctx context.Context, alert model.ReminderAlert) error
}

// OSNotifier 系统级通知，只在权限为 granted 时调用
type OSNotifier interface {
	NotifyOS(ctx context.Context, msg model.ReminderNotificationMessage) error
}

// Inbox 保存待展示的应用内提醒，界面拉取后清空
type Inbox struct {
	mu     sync.Mutex
	alerts []model.ReminderAlert
}

func NewInbox() *Inbox {
	return &Inbox{}
}

func (i *Inbox) Alert(_ context.Context, alert model.ReminderAlert) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.alerts = append(i.alerts, alert)
	return nil
}

// Drain 返回并清空所有提醒
func (i *Inbox) Drain() []model.ReminderAlert {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.alerts
	i.alerts = nil
	if out == nil {
		out = []model.ReminderAlert{}
	}
	return out
}

// PermissionSource 读取当前通知权限
type PermissionSource interface {
	GetPermission(ctx context.Context) (model.NotificationPermission, error)
}

// Notifier 先发应用内提醒，有权限时再发系统通知。返回是否发出了系统通知。
type Notifier struct {
	alerter     Alerter
	os          OSNotifier
	permissions PermissionSource
}

// NewNotifier os 可为 nil
func NewNotifier(alerter Alerter, os OSNotifier, permissions PermissionSource) *Notifier {
	return &Notifier{alerter: alerter, os: os, permissions: permissions}
}

// CanNotifyOS 是否配置了系统通知通道
func (n *Notifier) CanNotifyOS() bool {
	return n != nil && n.os != nil
}

func (n *Notifier) Deliver(ctx context.Context, t model.ReminderType, date, clock string) bool {
	message := MessageFor(t)

	if err := n.safeAlert(ctx, model.ReminderAlert{Type: t, Message: message, Date: date, Time: clock}); err != nil {
		logger.Logger.Error("Error showing in-app reminder", zap.Error(err))
	}

	if n.os == nil || n.permissions == nil {
		return false
	}
	perm, err := n.permissions.GetPermission(ctx)
	if err != nil {
		logger.Logger.Warn("Failed to read notification permission", zap.Error(err))
		return false
	}
	if perm != model.PermissionGranted {
		return false
	}

	if err := n.os.NotifyOS(ctx, model.ReminderNotificationMessage{
		Type:  t,
		Title: NotificationTitle,
		Body:  message,
		Date:  date,
		Time:  clock,
	}); err != nil {
		logger.Logger.Warn("Failed to send OS notification", zap.Error(err))
		return false
	}
	return true
}

// safeAlert 提醒展示失败或 panic 都不影响引擎
func (n *Notifier) safeAlert(ctx context.Context, alert model.ReminderAlert) (err error) {
	if n.alerter == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("alerter panic: %v", r)
		}
	}()
	return n.alerter.Alert(ctx, alert)
}
