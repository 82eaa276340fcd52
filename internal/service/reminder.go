package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/errors"
	"BoostMe/pkg/logger"
	"BoostMe/utils"
)

const StatusReminderOff = "ปิดการแจ้งเตือนรายวันแล้ว"

func statusReminderOn(clock string) string {
	if clock == "" {
		clock = "—"
	}
	return fmt.Sprintf("ตั้งการแจ้งเตือนทุกวันเวลา %s เรียบร้อยแล้ว", clock)
}

type ReminderService struct {
	d Deps
}

var (
	reminderService *ReminderService
	reminderOnce    sync.Once
)

func Reminder() *ReminderService {
	reminderOnce.Do(func() {
		reminderService = NewReminderService(current())
	})

	return reminderService
}

func NewReminderService(d Deps) *ReminderService {
	return &ReminderService{d: d.withDefaults()}
}

func (s *ReminderService) Get(ctx context.Context) (*dto.ReminderResponse, error) {
	settings, _, err := s.d.Repo.GetReminderSettings(ctx)
	if err != nil {
		return nil, err
	}
	perm, err := s.d.Repo.GetPermission(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReminderResponse{Settings: settings, Permission: perm}, nil
}

// Save 开启提醒时申请一次通知权限，保存后重启提醒引擎
func (s *ReminderService) Save(ctx context.Context, req dto.SaveReminderRequest) (*dto.ReminderResponse, error) {
	settings := model.ReminderSettings{
		Enabled: req.Enabled,
		Time:    strings.TrimSpace(req.Time),
		Type:    model.ReminderType(strings.TrimSpace(req.Type)),
	}
	if settings.Type == "" {
		settings.Type = model.ReminderCheckIn
	}
	if !settings.Type.Valid() {
		return nil, errors.ReminderTypeInvalid
	}
	if (settings.Enabled || settings.Time != "") && !utils.ValidClock(settings.Time) {
		return nil, errors.ReminderTimeInvalid
	}

	perm, err := s.d.Repo.GetPermission(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Enabled && perm == model.PermissionDefault {
		perm = s.requestPermission(ctx)
	}

	if err := s.d.Repo.SaveReminderSettings(ctx, settings); err != nil {
		logger.Logger.Error("Failed to save reminder settings", zap.Error(err))
		return nil, errors.StoreFailure
	}
	s.d.restarter().Restart(ctx)

	status := StatusReminderOff
	if settings.Enabled {
		status = statusReminderOn(settings.Time)
	}
	return &dto.ReminderResponse{Settings: settings, Permission: perm, Status: status}, nil
}

// requestPermission 只在 default 状态下调用一次
func (s *ReminderService) requestPermission(ctx context.Context) model.NotificationPermission {
	perm := model.PermissionDenied
	if s.d.CanNotifyOS {
		perm = model.PermissionGranted
	}
	if err := s.d.Repo.SetPermission(ctx, perm); err != nil {
		logger.Logger.Warn("Failed to save notification permission", zap.Error(err))
	}
	logger.Logger.Info("Notification permission resolved", zap.String("permission", string(perm)))
	return perm
}

// Alerts 取出待展示的应用内提醒
func (s *ReminderService) Alerts() []model.ReminderAlert {
	if s.d.Alerts == nil {
		return []model.ReminderAlert{}
	}
	return s.d.Alerts.Drain()
}
