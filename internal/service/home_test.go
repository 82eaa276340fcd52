package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/coach"
	"BoostMe/internal/mascot"
	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/errors"
)

func TestHomeFirstRun(t *testing.T) {
	e := newEnv(t)
	home, err := NewHomeService(e.deps).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mascot.DefaultGreetingName, home.Name)
	assert.Nil(t, home.Today)
	assert.Equal(t, model.MascotNeutral, home.Mascot.Mood)
}

func TestHomeAfterCheckIn(t *testing.T) {
	e := newEnv(t)
	e.seedLogs(t,
		model.CheckInRecord{ID: "1", Date: "2026-05-01", Score: 5},
		model.CheckInRecord{ID: "0", Date: "2026-04-30", Score: 9},
	)
	require.NoError(t, e.repo.SaveProfile(context.Background(), model.UserProfile{Name: "Fern"}))

	home, err := NewHomeService(e.deps).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Fern", home.Name)
	assert.Equal(t, model.MascotWorried, home.Mascot.Mood)
	assert.Equal(t, 7.0, home.Stats.AvgConfidence)
}

func TestCoachingService(t *testing.T) {
	e := newEnv(t)
	e.transport.replies[coach.ModeMotivation] = "Believe."
	e.transport.replies[coach.ModeSuggest] = `{"missions":["x"]}`
	s := NewCoachingService(e.deps)
	ctx := context.Background()

	assert.Equal(t, "Believe.", s.Motivate(ctx, " tired "))

	_, err := s.BreakDownTask(ctx, "  ")
	assert.ErrorIs(t, err, errors.InvalidRequest)

	reply, err := s.RelayReply(ctx, dto.RelayChatRequest{Mode: "suggest_activities"})
	require.NoError(t, err)
	assert.Equal(t, `{"missions":["x"]}`, reply)

	e.transport.err = assert.AnError
	_, err = s.RelayReply(ctx, dto.RelayChatRequest{Mode: "chat", Message: "hi"})
	assert.Error(t, err)
}
