package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/model"
)

func TestReflectFallbacks(t *testing.T) {
	ctx := context.Background()

	ft := &fakeTransport{replies: map[Mode]string{ModeReflect: "  คุณเก่งมาก  "}}
	assert.Equal(t, "คุณเก่งมาก", New(ft, nil).Reflect(ctx, nil, 7, "confident", ""))
	require.Len(t, ft.requests, 1)
	assert.Equal(t, 7, ft.requests[0].CheckIn.Score)

	empty := &fakeTransport{replies: map[Mode]string{}}
	assert.Equal(t, ReflectEmptyFallback, New(empty, nil).Reflect(ctx, nil, 7, "sad", ""))

	failing := &fakeTransport{err: errors.New("network down")}
	assert.Equal(t, ReflectErrorFallback, New(failing, nil).Reflect(ctx, nil, 3, "sad", "x"))
}

func TestSuggestActivitiesParsesMissions(t *testing.T) {
	ft := &fakeTransport{replies: map[Mode]string{
		ModeSuggest: "```json\n{\"missions\":[\"a\",\" \",\"b\"]}\n```",
	}}
	missions := New(ft, nil).SuggestActivities(context.Background(), &model.UserProfile{Name: "Fah"})

	require.Len(t, missions, 2)
	assert.Equal(t, "a", missions[0].Text)
	assert.Equal(t, "b", missions[1].Text)
	assert.NotEqual(t, missions[0].ID, missions[1].ID)
	assert.Equal(t, SuggestRequest, ft.requests[0].Message)
}

func TestSuggestActivitiesFallback(t *testing.T) {
	cases := map[string]*fakeTransport{
		"transport error": {err: errors.New("boom")},
		"malformed":       {replies: map[Mode]string{ModeSuggest: "not json"}},
		"empty array":     {replies: map[Mode]string{ModeSuggest: `{"missions":[]}`}},
	}
	for name, ft := range cases {
		t.Run(name, func(t *testing.T) {
			missions := New(ft, nil).SuggestActivities(context.Background(), nil)
			require.Len(t, missions, 3)

			seen := map[int64]bool{}
			for i, m := range missions {
				assert.Equal(t, FallbackMissionTexts[i], m.Text)
				assert.False(t, m.Completed)
				assert.False(t, seen[m.ID], "duplicate id")
				seen[m.ID] = true
			}
		})
	}
}

func TestChatStreamsFragmentsOnce(t *testing.T) {
	ft := &fakeTransport{chunks: []string{"สวัสดี", " ", "จ้า"}}
	c := New(ft, nil)
	history := []model.ChatMessage{{Role: model.RoleUser, Text: "hi"}}

	stream := c.Chat(context.Background(), "เครียดจัง", nil, history)

	var full strings.Builder
	for text, err := range stream {
		require.NoError(t, err)
		full.WriteString(text)
	}
	assert.Equal(t, "สวัสดี จ้า", full.String())
	assert.Equal(t, history, ft.requests[0].History)

	// 第二次消费直接报错，不再调用传输层
	var second error
	for _, err := range stream {
		second = err
	}
	assert.ErrorIs(t, second, ErrStreamConsumed)
	assert.Len(t, ft.requests, 1)
}

func TestChatStreamError(t *testing.T) {
	ft := &fakeTransport{chunks: []string{"part"}, err: errors.New("reset")}

	var got []string
	var gotErr error
	for text, err := range New(ft, nil).Chat(context.Background(), "x", nil, nil) {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, text)
	}
	assert.Equal(t, []string{"part"}, got)
	assert.EqualError(t, gotErr, "reset")
}

func TestOpenBreakerShortCircuits(t *testing.T) {
	ft := &fakeTransport{err: errors.New("down")}
	b := NewBreaker("coach", 1, time.Hour)
	c := New(ft, b)

	assert.Equal(t, ReflectErrorFallback, c.Reflect(context.Background(), nil, 5, "tired", ""))
	assert.Equal(t, StateOpen, b.State())

	assert.Equal(t, ReflectErrorFallback, c.Reflect(context.Background(), nil, 5, "tired", ""))
	assert.Len(t, ft.requests, 1)
}

func TestMotivate(t *testing.T) {
	ctx := context.Background()
	ok := &fakeTransport{replies: map[Mode]string{ModeMotivation: " Keep shining. \n"}}
	assert.Equal(t, "Keep shining.", New(ok, nil).Motivate(ctx, "tired"))

	empty := &fakeTransport{replies: map[Mode]string{}}
	assert.Equal(t, MotivationEmpty, New(empty, nil).Motivate(ctx, "tired"))

	failing := &fakeTransport{err: errors.New("x")}
	assert.Equal(t, MotivationFallback, New(failing, nil).Motivate(ctx, "tired"))
}

func TestBreakDownTask(t *testing.T) {
	ctx := context.Background()
	ft := &fakeTransport{replies: map[Mode]string{
		ModeTaskBreakdown: `[{"title":"Open laptop","description":"Start the editor","duration":"2 mins"}]`,
	}}
	steps, err := New(ft, nil).BreakDownTask(ctx, "write report")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "Open laptop", steps[0].Title)

	empty := &fakeTransport{replies: map[Mode]string{}}
	steps, err = New(empty, nil).BreakDownTask(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, steps)

	failing := &fakeTransport{err: errors.New("down")}
	_, err = New(failing, nil).BreakDownTask(ctx, "x")
	assert.ErrorIs(t, err, ErrTaskBreakdown)
	assert.Equal(t, "Failed to break down task. Please try again.", err.Error())
}
