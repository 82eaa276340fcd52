package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/model"
	"BoostMe/internal/store"
)

func TestProfileAvatarStoredSeparately(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := New(s)

	p, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, repo.SaveProfile(ctx, model.UserProfile{Name: "Mali", Avatar: "data:image/png;base64,AAA"}))
	raw, ok, _ := s.Get(ctx, KeyProfile)
	require.True(t, ok)
	assert.NotContains(t, raw, "base64")

	// 空头像不覆盖
	require.NoError(t, repo.SaveProfile(ctx, model.UserProfile{Name: "Mali", Role: "student"}))
	p, err = repo.GetProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "student", p.Role)
	assert.Equal(t, "data:image/png;base64,AAA", p.Avatar)

	require.NoError(t, repo.RemoveAvatar(ctx))
	_, found, err := s.Get(ctx, KeyProfileImage)
	require.NoError(t, err)
	assert.False(t, found)
	p, err = repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Empty(t, p.Avatar)
	assert.Equal(t, "Mali", p.Name)
}

func TestLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := New(store.NewMemory())

	_, err := repo.PrependLog(ctx, model.CheckInRecord{ID: "1", Date: "2024-01-01", Score: 5})
	require.NoError(t, err)
	logs, err := repo.PrependLog(ctx, model.CheckInRecord{ID: "2", Date: "2024-01-02", Score: 8})
	require.NoError(t, err)

	require.Len(t, logs, 2)
	assert.Equal(t, "2", logs[0].ID)

	stored, err := repo.GetLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, logs, stored)
}

func TestMalformedValuesReadAsAbsent(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := New(s)

	require.NoError(t, s.Set(ctx, KeyLogs, "{not json"))
	require.NoError(t, s.Set(ctx, KeyReminderSettings, "oops"))
	require.NoError(t, s.Set(ctx, KeyTotalMissions, "abc"))
	require.NoError(t, s.Set(ctx, MissionsKey("2024-01-01"), "["))

	logs, err := repo.GetLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)

	settings, ok, err := repo.GetReminderSettings(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, model.DefaultReminderSettings(), settings)

	n, err := repo.GetTotalMissions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, ok, err = repo.GetMissions(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastTriggerFormats(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := New(s)

	got, err := repo.GetLastTrigger(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.SetLastTrigger(ctx, model.ReminderTrigger{Date: "2024-05-01", Time: "09:00"}))
	got, err = repo.GetLastTrigger(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.ReminderTrigger{Date: "2024-05-01", Time: "09:00"}, got)

	require.NoError(t, s.Set(ctx, KeyReminderLastFired, `"2024-05-02"`))
	got, err = repo.GetLastTrigger(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.ReminderTrigger{Date: "2024-05-02"}, got)

	require.NoError(t, s.Set(ctx, KeyReminderLastFired, `2024-05-03`))
	got, err = repo.GetLastTrigger(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-03", got.Date)
}

func TestCounterAndPermissionAndReset(t *testing.T) {
	ctx := context.Background()
	repo := New(store.NewMemory())

	require.NoError(t, repo.SetTotalMissions(ctx, -3))
	n, err := repo.GetTotalMissions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	perm, err := repo.GetPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDefault, perm)
	require.NoError(t, repo.SetPermission(ctx, model.PermissionGranted))

	require.NoError(t, repo.SaveProfile(ctx, model.UserProfile{Name: "A"}))
	require.NoError(t, repo.Reset(ctx))

	p, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
	perm, _ = repo.GetPermission(ctx)
	assert.Equal(t, model.PermissionDefault, perm)
}
