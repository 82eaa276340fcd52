package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/coach"
	"BoostMe/pkg/errors"
)

func TestMissionsSeededOnFirstRead(t *testing.T) {
	e := newEnv(t)
	s := NewMissionService(e.deps)

	view, err := s.Today(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Missions, 3)
	assert.Equal(t, int64(1), view.Missions[0].ID)
	assert.Equal(t, "2026-05-01", view.Date)

	_, ok, err := e.repo.GetMissions(context.Background(), "2026-05-01")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestToggleAdjustsCounter(t *testing.T) {
	e := newEnv(t)
	s := NewMissionService(e.deps)
	ctx := context.Background()

	view, err := s.Toggle(ctx, 2)
	require.NoError(t, err)
	assert.True(t, view.Missions[1].Completed)
	assert.Equal(t, 1, view.TotalCompleted)

	view, err = s.Toggle(ctx, 2)
	require.NoError(t, err)
	assert.False(t, view.Missions[1].Completed)
	assert.Equal(t, 0, view.TotalCompleted)
}

func TestToggleCounterFloorsAtZero(t *testing.T) {
	e := newEnv(t)
	s := NewMissionService(e.deps)
	ctx := context.Background()

	_, err := s.Toggle(ctx, 1)
	require.NoError(t, err)
	// 计数器被外部清零后取消完成不会变成负数
	require.NoError(t, e.repo.SetTotalMissions(ctx, 0))

	view, err := s.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalCompleted)
}

func TestToggleUnknownMission(t *testing.T) {
	e := newEnv(t)
	_, err := NewMissionService(e.deps).Toggle(context.Background(), 99)
	assert.ErrorIs(t, err, errors.MissionNotFound)
}

func TestRegenerateReplacesSet(t *testing.T) {
	e := newEnv(t)
	e.transport.replies[coach.ModeSuggest] = `{"missions":["a","b","c","d"]}`
	s := NewMissionService(e.deps)
	ctx := context.Background()

	_, err := s.Toggle(ctx, 1)
	require.NoError(t, err)

	view, err := s.Regenerate(ctx)
	require.NoError(t, err)
	require.Len(t, view.Missions, 4)
	for _, m := range view.Missions {
		assert.False(t, m.Completed)
	}
	// 替换任务不影响累计计数
	assert.Equal(t, 1, view.TotalCompleted)
}

func TestRegenerateFallback(t *testing.T) {
	e := newEnv(t)
	e.transport.err = assert.AnError

	view, err := NewMissionService(e.deps).Regenerate(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Missions, 3)
	assert.Equal(t, coach.FallbackMissionTexts[0], view.Missions[0].Text)
}
