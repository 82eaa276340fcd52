package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/errors"
)

func TestProfileSaveTrimsAndKeepsAvatar(t *testing.T) {
	e := newEnv(t)
	s := NewProfileService(e.deps)
	ctx := context.Background()

	p, err := s.Save(ctx, dto.SaveProfileRequest{Name: "  Nok ", Role: "designer", Avatar: "data:image/png;base64,AAA"})
	require.NoError(t, err)
	assert.Equal(t, "Nok", p.Name)
	assert.Equal(t, "data:image/png;base64,AAA", p.Avatar)

	p, err = s.Save(ctx, dto.SaveProfileRequest{Name: "Nok", Goal: "speak in meetings"})
	require.NoError(t, err)
	assert.Equal(t, "speak in meetings", p.Goal)
	assert.Equal(t, "data:image/png;base64,AAA", p.Avatar)
}

func TestProfileSaveRemovesAvatar(t *testing.T) {
	e := newEnv(t)
	s := NewProfileService(e.deps)
	ctx := context.Background()

	_, err := s.Save(ctx, dto.SaveProfileRequest{Name: "Nok", Avatar: "data:image/png;base64,AAA"})
	require.NoError(t, err)

	p, err := s.Save(ctx, dto.SaveProfileRequest{Name: "Nok", Avatar: "data:image/png;base64,BBB", RemoveAvatar: true})
	require.NoError(t, err)
	assert.Equal(t, "Nok", p.Name)
	assert.Empty(t, p.Avatar)

	p, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, p.Avatar)
}

func TestProfileGetEmpty(t *testing.T) {
	e := newEnv(t)
	p, err := NewProfileService(e.deps).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.UserProfile{}, p)
}

func TestResetBehavesAsFirstRun(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := NewProfileService(e.deps).Save(ctx, dto.SaveProfileRequest{Name: "Nok", Avatar: "img"})
	require.NoError(t, err)
	_, err = NewCheckInService(e.deps).Submit(ctx, dto.SubmitCheckInRequest{Score: 6, Mood: "tired"})
	require.NoError(t, err)
	_, err = NewMissionService(e.deps).Toggle(ctx, 1)
	require.NoError(t, err)
	_, err = NewReminderService(e.deps).Save(ctx, dto.SaveReminderRequest{Enabled: true, Time: "08:00", Type: "boost"})
	require.NoError(t, err)
	restartsBefore := e.restarts.count()

	require.NoError(t, NewProfileService(e.deps).Reset(ctx))
	assert.Equal(t, 0, e.st.Len())
	assert.Equal(t, restartsBefore+1, e.restarts.count())

	p, err := NewProfileService(e.deps).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.UserProfile{}, p)

	logs, err := NewCheckInService(e.deps).History(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)

	reminder, err := NewReminderService(e.deps).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultReminderSettings(), reminder.Settings)
	assert.Equal(t, model.PermissionDefault, reminder.Permission)

	stats, err := NewStatsService(e.deps).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.UserStats{}, stats)
}

func TestReminderSave(t *testing.T) {
	e := newEnv(t)
	s := NewReminderService(e.deps)
	ctx := context.Background()

	resp, err := s.Save(ctx, dto.SaveReminderRequest{Enabled: true, Time: "07:30", Type: "both"})
	require.NoError(t, err)
	assert.Equal(t, "ตั้งการแจ้งเตือนทุกวันเวลา 07:30 เรียบร้อยแล้ว", resp.Status)
	// 没有系统通知通道时权限被拒绝
	assert.Equal(t, model.PermissionDenied, resp.Permission)
	assert.Equal(t, 1, e.restarts.count())

	resp, err = s.Save(ctx, dto.SaveReminderRequest{Enabled: false, Time: "07:30", Type: "both"})
	require.NoError(t, err)
	assert.Equal(t, StatusReminderOff, resp.Status)
	assert.Equal(t, 2, e.restarts.count())

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, got.Settings.Enabled)
	assert.Equal(t, "07:30", got.Settings.Time)
}

func TestReminderPermissionRequestedOnce(t *testing.T) {
	e := newEnv(t)
	e.deps.CanNotifyOS = true
	s := NewReminderService(e.deps)
	ctx := context.Background()

	resp, err := s.Save(ctx, dto.SaveReminderRequest{Enabled: true, Time: "21:00"})
	require.NoError(t, err)
	assert.Equal(t, model.PermissionGranted, resp.Permission)
	assert.Equal(t, model.ReminderCheckIn, resp.Settings.Type)

	require.NoError(t, e.repo.SetPermission(ctx, model.PermissionDenied))
	resp, err = s.Save(ctx, dto.SaveReminderRequest{Enabled: true, Time: "21:00"})
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDenied, resp.Permission)
}

func TestReminderSaveValidation(t *testing.T) {
	e := newEnv(t)
	s := NewReminderService(e.deps)
	ctx := context.Background()

	_, err := s.Save(ctx, dto.SaveReminderRequest{Enabled: true, Time: "7pm"})
	assert.ErrorIs(t, err, errors.ReminderTimeInvalid)

	_, err = s.Save(ctx, dto.SaveReminderRequest{Enabled: true})
	assert.ErrorIs(t, err, errors.ReminderTimeInvalid)

	_, err = s.Save(ctx, dto.SaveReminderRequest{Enabled: true, Time: "07:00", Type: "weekly"})
	assert.ErrorIs(t, err, errors.ReminderTypeInvalid)

	assert.Equal(t, 0, e.restarts.count())
}

func TestReminderAlertsWithoutInbox(t *testing.T) {
	e := newEnv(t)
	alerts := NewReminderService(e.deps).Alerts()
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
