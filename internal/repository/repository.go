package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"BoostMe/internal/model"
	"BoostMe/internal/store"
	"BoostMe/pkg/logger"
)

// Repository 在键值存储之上提供类型化读写。
// 读取遇到损坏的 JSON 时按不存在处理并记录警告，不返回错误。
type Repository struct {
	store store.Store
}

func New(s store.Store) *Repository {
	return &Repository{store: s}
}

func (r *Repository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Logger.Warn("Malformed stored value, treating as absent",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, nil
	}
	return true, nil
}

func (r *Repository) setJSON(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.store.Set(ctx, key, string(b))
}

// ========== 资料 ==========

// GetProfile 未保存过资料时返回 nil
func (r *Repository) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var p model.UserProfile
	ok, err := r.getJSON(ctx, KeyProfile, &p)
	if err != nil || !ok {
		return nil, err
	}

	avatar, found, err := r.store.Get(ctx, KeyProfileImage)
	if err != nil {
		return nil, err
	}
	if found {
		p.Avatar = avatar
	}
	return &p, nil
}

// SaveProfile 头像单独存储，空头像不覆盖已有头像
func (r *Repository) SaveProfile(ctx context.Context, p model.UserProfile) error {
	avatar := p.Avatar
	p.Avatar = ""
	if err := r.setJSON(ctx, KeyProfile, p); err != nil {
		return err
	}
	if avatar != "" {
		return r.store.Set(ctx, KeyProfileImage, avatar)
	}
	return nil
}

// RemoveAvatar 删除单独存储的头像
func (r *Repository) RemoveAvatar(ctx context.Context) error {
	return r.store.Remove(ctx, KeyProfileImage)
}

// ========== 打卡日志 ==========

// GetLogs 按时间倒序
func (r *Repository) GetLogs(ctx context.Context) ([]model.CheckInRecord, error) {
	var logs []model.CheckInRecord
	if _, err := r.getJSON(ctx, KeyLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// PrependLog 新记录放在最前
func (r *Repository) PrependLog(ctx context.Context, rec model.CheckInRecord) ([]model.CheckInRecord, error) {
	logs, err := r.GetLogs(ctx)
	if err != nil {
		return nil, err
	}
	logs = append([]model.CheckInRecord{rec}, logs...)
	if err := r.setJSON(ctx, KeyLogs, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ========== 任务 ==========

// GetMissions 该日期没有任务时 ok=false
func (r *Repository) GetMissions(ctx context.Context, date string) ([]model.DailyMission, bool, error) {
	var missions []model.DailyMission
	ok, err := r.getJSON(ctx, MissionsKey(date), &missions)
	return missions, ok, err
}

func (r *Repository) SaveMissions(ctx context.Context, date string, missions []model.DailyMission) error {
	return r.setJSON(ctx, MissionsKey(date), missions)
}

// GetTotalMissions 不存在或无法解析时为 0
func (r *Repository) GetTotalMissions(ctx context.Context) (int, error) {
	raw, ok, err := r.store.Get(ctx, KeyTotalMissions)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Logger.Warn("Malformed mission counter, treating as 0", zap.String("value", raw))
		return 0, nil
	}
	return max(n, 0), nil
}

func (r *Repository) SetTotalMissions(ctx context.Context, n int) error {
	return r.store.Set(ctx, KeyTotalMissions, strconv.Itoa(max(n, 0)))
}

// ========== 提醒 ==========

// GetReminderSettings 未设置或损坏时返回默认值，ok 表示是否读到有效设置
func (r *Repository) GetReminderSettings(ctx context.Context) (model.ReminderSettings, bool, error) {
	var s model.ReminderSettings
	ok, err := r.getJSON(ctx, KeyReminderSettings, &s)
	if err != nil || !ok {
		return model.DefaultReminderSettings(), false, err
	}
	return s, true, nil
}

func (r *Repository) SaveReminderSettings(ctx context.Context, s model.ReminderSettings) error {
	return r.setJSON(ctx, KeyReminderSettings, s)
}

// GetLastTrigger 兼容旧格式：值为纯日期字符串时只有 Date
func (r *Repository) GetLastTrigger(ctx context.Context) (*model.ReminderTrigger, error) {
	raw, ok, err := r.store.Get(ctx, KeyReminderLastFired)
	if err != nil || !ok {
		return nil, err
	}

	var t model.ReminderTrigger
	if err := json.Unmarshal([]byte(raw), &t); err == nil && t.Date != "" {
		return &t, nil
	}

	var legacy string
	if err := json.Unmarshal([]byte(raw), &legacy); err == nil && legacy != "" {
		return &model.ReminderTrigger{Date: legacy}, nil
	}
	if s := strings.TrimSpace(raw); s != "" && !strings.HasPrefix(s, "{") {
		return &model.ReminderTrigger{Date: s}, nil
	}
	return nil, nil
}

func (r *Repository) SetLastTrigger(ctx context.Context, t model.ReminderTrigger) error {
	return r.setJSON(ctx, KeyReminderLastFired, t)
}

// GetPermission 未记录时为 default
func (r *Repository) GetPermission(ctx context.Context) (model.NotificationPermission, error) {
	raw, ok, err := r.store.Get(ctx, KeyNotificationPermit)
	if err != nil || !ok {
		return model.PermissionDefault, err
	}
	switch p := model.NotificationPermission(raw); p {
	case model.PermissionGranted, model.PermissionDenied:
		return p, nil
	default:
		return model.PermissionDefault, nil
	}
}

func (r *Repository) SetPermission(ctx context.Context, p model.NotificationPermission) error {
	return r.store.Set(ctx, KeyNotificationPermit, string(p))
}

// Reset 清空所有本地数据
func (r *Repository) Reset(ctx context.Context) error {
	return r.store.Clear(ctx)
}
