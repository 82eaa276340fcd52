package schedule

// 提醒调度器：按固定间隔轮询提醒设置，当前时间与设置的 HH:MM 完全相等时提醒一次

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"BoostMe/internal/model"
	"BoostMe/pkg/logger"
	"BoostMe/pkg/metrics"
	"BoostMe/utils"
)

// ReminderStore 调度器只依赖的存储读写
type ReminderStore interface {
	GetReminderSettings(ctx context.Context) (model.ReminderSettings, bool, error)
	GetLastTrigger(ctx context.Context) (*model.ReminderTrigger, error)
	SetLastTrigger(ctx context.Context, t model.ReminderTrigger) error
}

// Deliverer 由 Notifier 实现
type Deliverer interface {
	Deliver(ctx context.Context, t model.ReminderType, date, clock string) bool
}

type ReminderEngine struct {
	store    ReminderStore
	notifier Deliverer
	interval time.Duration
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger

	// checkMu 保证定时检查与重启时的立即检查不会交错
	checkMu sync.Mutex

	loopMu sync.Mutex
	base   context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReminderEngine(store ReminderStore, notifier Deliverer, interval time.Duration, loc *time.Location) *ReminderEngine {
	if interval <= 0 {
		interval = time.Minute
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReminderEngine{
		store:    store,
		notifier: notifier,
		interval: interval,
		loc:      loc,
		now:      time.Now,
		logger:   logger.Named("reminder"),
	}
}

// SetClock 测试时注入时钟
func (e *ReminderEngine) SetClock(now func() time.Time) {
	e.now = now
}

// CheckAndTrigger 返回本次是否发出了提醒，任何读取失败都按未开启处理
func (e *ReminderEngine) CheckAndTrigger(ctx context.Context) bool {
	e.checkMu.Lock()
	defer e.checkMu.Unlock()

	settings, ok, err := e.store.GetReminderSettings(ctx)
	if err != nil {
		e.logger.Warn("Failed to read reminder settings", zap.Error(err))
		return false
	}
	if !ok || !settings.Enabled || settings.Time == "" {
		return false
	}

	hour, minute, err := utils.ParseClock(settings.Time)
	if err != nil {
		e.logger.Warn("Malformed reminder time, skipping", zap.String("time", settings.Time))
		return false
	}

	now := e.now().In(e.loc)
	if now.Hour() != hour || now.Minute() != minute {
		return false
	}

	today := utils.DateKey(now, e.loc)
	last, err := e.store.GetLastTrigger(ctx)
	if err != nil {
		e.logger.Warn("Failed to read last reminder trigger", zap.Error(err))
		return false
	}
	// 旧格式只有日期，当天已提醒过
	if last != nil && last.Date == today && (last.Time == settings.Time || last.Time == "") {
		return false
	}

	osDelivered := e.notifier.Deliver(ctx, settings.Type, today, settings.Time)

	if err := e.store.SetLastTrigger(ctx, model.ReminderTrigger{Date: today, Time: settings.Time}); err != nil {
		e.logger.Error("Failed to save last reminder trigger", zap.Error(err))
	}

	metrics.GetMetrics().RecordReminderFired(ctx, string(settings.Type), osDelivered)
	e.logger.Info("Reminder fired",
		zap.String("type", string(settings.Type)),
		zap.String("date", today),
		zap.String("time", settings.Time),
		zap.Bool("os_notification", osDelivered),
	)
	return true
}

// Start 先停止旧的循环，立即检查一次，然后按间隔轮询。可重复调用。
// ctx 决定轮询循环的生命周期。
func (e *ReminderEngine) Start(ctx context.Context) {
	e.loopMu.Lock()
	defer e.loopMu.Unlock()

	e.base = ctx
	e.startLocked(ctx)
}

func (e *ReminderEngine) startLocked(ctx context.Context) {
	e.stopLocked()

	e.CheckAndTrigger(ctx)

	loopCtx, cancel := context.WithCancel(e.base)
	done := make(chan struct{})
	e.cancel = cancel
	e.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				e.CheckAndTrigger(loopCtx)
			}
		}
	}()

	e.logger.Info("Reminder engine started", zap.Duration("interval", e.interval))
}

// Stop 停止轮询并等待当前检查结束
func (e *ReminderEngine) Stop() {
	e.loopMu.Lock()
	defer e.loopMu.Unlock()
	e.stopLocked()
}

func (e *ReminderEngine) stopLocked() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
	e.cancel = nil
	e.done = nil
}

// Restart 设置保存或数据重置后调用。ctx 只用于立即检查，
// 新循环沿用 Start 时的生命周期，未 Start 过时不随 ctx 取消。
func (e *ReminderEngine) Restart(ctx context.Context) {
	e.loopMu.Lock()
	defer e.loopMu.Unlock()

	if e.base == nil {
		e.base = context.WithoutCancel(ctx)
	}
	e.startLocked(ctx)
}

// Running 是否有轮询循环在运行
func (e *ReminderEngine) Running() bool {
	e.loopMu.Lock()
	defer e.loopMu.Unlock()
	return e.cancel != nil
}
