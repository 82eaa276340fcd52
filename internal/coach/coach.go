// Package coach 组装教练提示词并通过可替换的传输方式调用生成式模型。
// 除任务拆解外，所有调用失败都转换为固定兜底内容，不向界面层抛错。
package coach

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"BoostMe/internal/model"
	bizerrors "BoostMe/pkg/errors"
	"BoostMe/pkg/logger"
	"BoostMe/pkg/metrics"
	"BoostMe/pkg/snowflake"
)

// 固定兜底文案
const (
	ReflectEmptyFallback = "เก่งมาก! สู้ต่อไปนะ เราอยู่ข้างๆ เสมอ"
	ReflectErrorFallback = "ไม่เป็นไรนะ วันพรุ่งนี้จะเป็นวันที่ดีกว่าเดิมแน่นอน"
	MotivationEmpty      = "You are stronger than you think."
	MotivationFallback   = "Keep going, you are doing great."
)

// FallbackMissionTexts 建议任务失败时的固定三项
var FallbackMissionTexts = []string{
	"ยิ้มให้ตัวเองในกระจก 1 นาที",
	"เขียนข้อดีของตัวเอง 3 ข้อ",
	"จัดโต๊ะทำงานให้เรียบร้อย",
}

var (
	ErrStreamConsumed = errors.New("coach: stream already consumed")
	// ErrTaskBreakdown 消息直接展示给用户
	ErrTaskBreakdown = bizerrors.TaskBreakdown
)

type Coach struct {
	transport Transport
	breaker   *Breaker
}

// New breaker 可为 nil
func New(t Transport, breaker *Breaker) *Coach {
	return &Coach{transport: t, breaker: breaker}
}

func (c *Coach) TransportName() string {
	return c.transport.Name()
}

func (c *Coach) allow() error {
	if c.breaker != nil && !c.breaker.Allow() {
		return ErrCircuitOpen
	}
	return nil
}

func (c *Coach) record(ctx context.Context, mode Mode, start time.Time, err error) {
	if c.breaker != nil && !errors.Is(err, ErrCircuitOpen) {
		c.breaker.Record(err)
	}
	metrics.GetMetrics().RecordCoachRequest(ctx, c.transport.Name(), string(mode), time.Since(start).Seconds(), err)
}

// Reply 原样返回模型文本，错误向上返回。relay 端点使用。
func (c *Coach) Reply(ctx context.Context, req Request) (string, error) {
	if err := c.allow(); err != nil {
		return "", err
	}
	start := time.Now()
	text, err := c.transport.Generate(ctx, req)
	c.record(ctx, req.Mode, start, err)
	return text, err
}

// Chat 返回惰性且只能消费一次的片段序列
func (c *Coach) Chat(ctx context.Context, message string, profile *model.UserProfile, history []model.ChatMessage) iter.Seq2[string, error] {
	req := Request{Mode: ModeChat, Message: message, Profile: profile, History: history}
	var used atomic.Bool

	return func(yield func(string, error) bool) {
		if used.Swap(true) {
			yield("", ErrStreamConsumed)
			return
		}
		if err := c.allow(); err != nil {
			yield("", err)
			return
		}

		start := time.Now()
		var streamErr error
		defer func() { c.record(ctx, ModeChat, start, streamErr) }()

		for text, err := range c.transport.Stream(ctx, req) {
			if err != nil {
				streamErr = err
				yield("", err)
				return
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

// Reflect 打卡后的简短回应，空回复与失败各有固定兜底
func (c *Coach) Reflect(ctx context.Context, profile *model.UserProfile, score int, mood, note string) string {
	text, err := c.Reply(ctx, Request{
		Mode:    ModeReflect,
		Profile: profile,
		CheckIn: &model.CheckInRecord{Score: score, Mood: mood, Note: note},
	})
	if err != nil {
		c.fallback(ctx, ModeReflect, err)
		return ReflectErrorFallback
	}
	if strings.TrimSpace(text) == "" {
		return ReflectEmptyFallback
	}
	return strings.TrimSpace(text)
}

// SuggestActivities 解析失败或为空时返回固定三项
func (c *Coach) SuggestActivities(ctx context.Context, profile *model.UserProfile) []model.DailyMission {
	text, err := c.Reply(ctx, Request{Mode: ModeSuggest, Message: SuggestRequest, Profile: profile})
	var texts []string
	if err == nil {
		texts, err = ParseMissions(text)
	}
	if err != nil {
		c.fallback(ctx, ModeSuggest, err)
		texts = FallbackMissionTexts
	}
	return NewMissions(texts)
}

// NewMissions 为每项分配唯一 ID，全部未完成
func NewMissions(texts []string) []model.DailyMission {
	out := make([]model.DailyMission, 0, len(texts))
	for _, t := range texts {
		out = append(out, model.DailyMission{ID: snowflake.NextID(), Text: t})
	}
	return out
}

// Motivate 一句话激励
func (c *Coach) Motivate(ctx context.Context, mood string) string {
	text, err := c.Reply(ctx, Request{Mode: ModeMotivation, Message: mood})
	if err != nil {
		c.fallback(ctx, ModeMotivation, err)
		return MotivationFallback
	}
	if text = strings.TrimSpace(text); text == "" {
		return MotivationEmpty
	}
	return text
}

// BreakDownTask 唯一向调用方返回错误的操作，界面显示行内提示
func (c *Coach) BreakDownTask(ctx context.Context, task string) ([]model.TaskStep, error) {
	text, err := c.Reply(ctx, Request{Mode: ModeTaskBreakdown, Message: task})
	if err != nil {
		logger.Logger.Warn("Task breakdown failed", zap.Error(err))
		return nil, ErrTaskBreakdown
	}
	steps, err := ParseTaskSteps(text)
	if err != nil {
		logger.Logger.Warn("Task breakdown returned malformed steps", zap.Error(err))
		return nil, ErrTaskBreakdown
	}
	return steps, nil
}

func (c *Coach) fallback(ctx context.Context, mode Mode, err error) {
	logger.Logger.Warn("Coach call failed, using fallback",
		zap.String("mode", string(mode)),
		zap.String("transport", c.transport.Name()),
		zap.Error(err),
	)
	metrics.GetMetrics().RecordCoachFallback(ctx, string(mode))
}
