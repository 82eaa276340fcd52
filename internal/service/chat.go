package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BoostMe/internal/mascot"
	"BoostMe/internal/model"
	"BoostMe/pkg/errors"
	"BoostMe/pkg/logger"
)

// 会话固定文案
const (
	ChatGreeting = "สวัสดี! เราคือ BoostMe เพื่อนคู่คิดของคุณ"
	ChatCleared  = "ล้างประวัติคุยแล้ว เริ่มต้นใหม่กัน! วันนี้อยากคุยเรื่องอะไร?"
	ChatApology  = "ขออภัย ตอนนี้มีปัญหาในการเชื่อมต่อ ลองใหม่อีกครั้งนะ"

	chatIntroMascot   = "วันนี้มีเรื่องอะไรไม่สบายใจ หรืออยากให้ช่วยเติมไฟเรื่องไหน บอกเราได้เลยนะ 😊"
	chatClearedMascot = "เริ่มต้นใหม่แล้ว! วันนี้มีอะไรให้เราช่วยไหม?"
)

// RenderFunc 每收到一个片段后以当前完整回复回调
type RenderFunc func(msg model.ChatMessage)

// ChatService 单个内存会话，同一时间只允许一条消息在发送中
type ChatService struct {
	d Deps

	mu       sync.Mutex
	messages []model.ChatMessage
	// turns 成功的问答，作为下一次调用的历史
	turns  []model.ChatMessage
	mascot model.MascotState
	busy   bool
	// gen 每次清空或重置会话时递增，旧会话的发送不再写回
	gen uint64
}

var (
	chatService *ChatService
	chatOnce    sync.Once
)

func Chat() *ChatService {
	chatOnce.Do(func() {
		chatService = NewChatService(current())
	})

	return chatService
}

func NewChatService(d Deps) *ChatService {
	s := &ChatService{d: d.withDefaults()}
	s.resetLocked(ChatGreeting, model.MascotState{Mood: model.MascotNeutral, Message: chatIntroMascot})
	return s
}

func (s *ChatService) newMessage(role model.ChatRole, text string) model.ChatMessage {
	return model.ChatMessage{ID: uuid.NewString(), Role: role, Text: text, Timestamp: s.d.Now()}
}

func (s *ChatService) resetLocked(greeting string, state model.MascotState) {
	s.messages = []model.ChatMessage{s.newMessage(model.RoleModel, greeting)}
	s.turns = nil
	s.mascot = state
	s.gen++
}

// Snapshot 当前消息列表与吉祥物状态的副本
func (s *ChatService) Snapshot() ([]model.ChatMessage, model.MascotState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.messages...), s.mascot
}

// Clear 开始新会话，发送中时拒绝
func (s *ChatService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return errors.ChatBusy
	}
	s.resetLocked(ChatCleared, model.MascotState{Mood: model.MascotNeutral, Message: chatClearedMascot})
	return nil
}

// Reset 数据重置时调用，不等待发送中的消息，其后续片段被丢弃
func (s *ChatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(ChatGreeting, model.MascotState{Mood: model.MascotNeutral, Message: chatIntroMascot})
}

// Send 追加用户消息并把流式片段合并成一条回复。
// 失败时追加一条道歉消息，不返回错误。
func (s *ChatService) Send(ctx context.Context, text string, render RenderFunc) ([]model.ChatMessage, model.MascotState, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.MascotState{}, errors.ChatEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, model.MascotState{}, errors.ChatBusy
	}
	s.busy = true
	userMsg := s.newMessage(model.RoleUser, text)
	s.messages = append(s.messages, userMsg)
	s.mascot = mascot.FromChatText(text)
	history := append([]model.ChatMessage(nil), s.turns...)
	gen := s.gen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	profile, err := s.d.Repo.GetProfile(ctx)
	if err != nil {
		logger.Logger.Warn("Failed to load profile for chat", zap.Error(err))
	}

	replyIdx := -1
	var full strings.Builder
	var streamErr error

	for fragment, err := range s.d.Coach.Chat(ctx, text, profile, history) {
		if err != nil {
			streamErr = err
			break
		}
		full.WriteString(fragment)

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			continue
		}
		if replyIdx < 0 {
			s.messages = append(s.messages, s.newMessage(model.RoleModel, ""))
			replyIdx = len(s.messages) - 1
		}
		s.messages[replyIdx].Text = full.String()
		current := s.messages[replyIdx]
		s.mu.Unlock()

		if render != nil {
			render(current)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		logger.Logger.Info("Chat session was reset during send, dropping reply")
		return append([]model.ChatMessage(nil), s.messages...), s.mascot, nil
	}

	if streamErr != nil {
		logger.Logger.Error("Chat error", zap.Error(streamErr))
		s.messages = append(s.messages, s.newMessage(model.RoleModel, ChatApology))
	} else {
		if replyIdx < 0 {
			s.messages = append(s.messages, s.newMessage(model.RoleModel, ""))
			replyIdx = len(s.messages) - 1
		}
		s.turns = append(s.turns, userMsg, s.messages[replyIdx])
	}

	return append([]model.ChatMessage(nil), s.messages...), s.mascot, nil
}
