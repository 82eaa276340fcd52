package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/coach"
	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/errors"
)

func TestSubmitCheckIn(t *testing.T) {
	e := newEnv(t)
	e.transport.replies[coach.ModeReflect] = "คุณทำได้ดีมาก"
	s := NewCheckInService(e.deps)
	ctx := context.Background()

	rec, err := s.Submit(ctx, dto.SubmitCheckInRequest{Score: 8, Mood: "confident", Note: "presented"})
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", rec.Date)
	assert.Equal(t, "คุณทำได้ดีมาก", rec.AIResponse)
	assert.NotEmpty(t, rec.ID)

	today, err := s.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, today)

	view, err := s.TodayView(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.MascotProud, view.Mascot.Mood)
}

func TestSubmitCheckInValidation(t *testing.T) {
	e := newEnv(t)
	s := NewCheckInService(e.deps)
	ctx := context.Background()

	_, err := s.Submit(ctx, dto.SubmitCheckInRequest{Score: 5})
	assert.ErrorIs(t, err, errors.CheckInMoodRequired)

	_, err = s.Submit(ctx, dto.SubmitCheckInRequest{Score: 5, Mood: "angry"})
	assert.ErrorIs(t, err, errors.CheckInMoodRequired)

	_, err = s.Submit(ctx, dto.SubmitCheckInRequest{Score: 11, Mood: "sad"})
	assert.ErrorIs(t, err, errors.CheckInScoreInvalid)

	// 校验失败不调用教练也不写入
	assert.Empty(t, e.transport.calls)
	assert.Equal(t, 0, e.st.Len())
}

func TestSubmitCheckInOncePerDay(t *testing.T) {
	e := newEnv(t)
	s := NewCheckInService(e.deps)
	ctx := context.Background()

	_, err := s.Submit(ctx, dto.SubmitCheckInRequest{Score: 3, Mood: "tired"})
	require.NoError(t, err)
	_, err = s.Submit(ctx, dto.SubmitCheckInRequest{Score: 9, Mood: "excited"})
	assert.ErrorIs(t, err, errors.CheckInAlreadyDone)

	e.now = e.now.AddDate(0, 0, 1)
	_, err = s.Submit(ctx, dto.SubmitCheckInRequest{Score: 9, Mood: "excited"})
	require.NoError(t, err)

	history, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-05-02", history[0].Date)
}

func TestSubmitCheckInReflectFallback(t *testing.T) {
	e := newEnv(t)
	e.transport.err = assert.AnError
	rec, err := NewCheckInService(e.deps).Submit(context.Background(), dto.SubmitCheckInRequest{Score: 2, Mood: "sad"})
	require.NoError(t, err)
	assert.Equal(t, coach.ReflectErrorFallback, rec.AIResponse)
}

func TestTodayFirstMatchWins(t *testing.T) {
	e := newEnv(t)
	e.seedLogs(t,
		model.CheckInRecord{ID: "b", Date: "2026-05-01", Score: 4},
		model.CheckInRecord{ID: "a", Date: "2026-05-01", Score: 9},
	)
	rec, err := NewCheckInService(e.deps).Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", rec.ID)
}

func TestHistoryEmpty(t *testing.T) {
	e := newEnv(t)
	history, err := NewCheckInService(e.deps).History(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
