package service

import (
	"context"
	"sync"
	"time"

	"BoostMe/internal/coach"
	"BoostMe/internal/model"
	"BoostMe/internal/repository"
	"BoostMe/utils"
)

// ReminderRestarter 由 schedule.ReminderEngine 实现
type ReminderRestarter interface {
	Restart(ctx context.Context)
}

// AlertDrainer 由 schedule.Inbox 实现
type AlertDrainer interface {
	Drain() []model.ReminderAlert
}

// Deps 服务层共享的依赖，启动时由 Setup 注入
type Deps struct {
	Repo      *repository.Repository
	Coach     *coach.Coach
	Reminders ReminderRestarter
	Alerts    AlertDrainer
	// CanNotifyOS 是否配置了系统通知通道，决定权限申请结果
	CanNotifyOS bool
	Location    *time.Location
	Now         func() time.Time
}

var (
	deps   Deps
	depsMu sync.RWMutex
)

// Setup 必须在第一次访问任何服务之前调用
func Setup(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d.withDefaults()
}

func current() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	return d
}

// today 配置时区下的日历日期
func (d Deps) today() string {
	return utils.DateKey(d.Now(), d.Location)
}

type noopRestarter struct{}

func (noopRestarter) Restart(context.Context) {}

func (d Deps) restarter() ReminderRestarter {
	if d.Reminders == nil {
		return noopRestarter{}
	}
	return d.Reminders
}
