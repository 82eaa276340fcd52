// Package mascot 把打卡分数或聊天内容映射为吉祥物表情和文案。
package mascot

import (
	"strings"

	"BoostMe/internal/model"
)

const DefaultGreetingName = "เพื่อนรัก"

var messages = map[model.MascotMood]string{
	model.MascotProud:   "สุดยอดเลย! วันนี้คุณดูมั่นใจมาก ภูมิใจในตัวเองด้วยนะ ✨",
	model.MascotHappy:   "วันนี้คุณทำได้ดีเลย ลองเก็บโมเมนต์ดี ๆ แบบนี้ไว้อีกนะ 💛",
	model.MascotWorried: "ดูเหมือนวันนี้จะมีอะไรให้กังวลนิดหน่อย เราอยู่ตรงนี้เป็นเพื่อนคุณนะ 🤍",
	model.MascotLow:     "ไม่เป็นไรเลย วันที่ไม่มั่นใจก็มีได้ เรามาเริ่มจากก้าวเล็ก ๆ ไปด้วยกันนะ 🌧️➡️☀️",
	model.MascotNeutral: "วันนี้รู้สึกยังไง มาลองเช็กอินกับเราได้นะ 🌱",
}

// MoodForScore ≥8 proud, 6–7 happy, 4–5 worried, 其余 low
func MoodForScore(score int) model.MascotMood {
	switch {
	case score >= 8:
		return model.MascotProud
	case score >= 6:
		return model.MascotHappy
	case score >= 4:
		return model.MascotWorried
	default:
		return model.MascotLow
	}
}

// FromCheckIn 当天没有打卡记录时为 neutral
func FromCheckIn(rec *model.CheckInRecord) model.MascotState {
	mood := model.MascotNeutral
	if rec != nil {
		mood = MoodForScore(rec.Score)
	}
	return model.MascotState{Mood: mood, Message: messages[mood]}
}

// Message 返回表情对应的固定文案
func Message(mood model.MascotMood) string {
	return messages[mood]
}

var (
	worriedWords = []string{"เครียด", "กังวล", "กลัว"}
	happyWords   = []string{"ดีใจ", "ภูมิใจ"}
)

// FromChatText 聊天界面根据用户输入的关键词快速切换表情
func FromChatText(text string) model.MascotState {
	switch {
	case containsAny(text, worriedWords):
		return model.MascotState{Mood: model.MascotWorried, Message: "โอเค เราได้ยินที่คุณรู้สึกนะ มาลองคุยกันดู 🫶"}
	case containsAny(text, happyWords):
		return model.MascotState{Mood: model.MascotHappy, Message: "เย้ ดีใจกับคุณด้วยจริง ๆ เลย! 🎉"}
	default:
		return model.MascotState{Mood: model.MascotNeutral, Message: "เล่าให้เราฟังได้นะ เราพร้อมฟังอยู่เสมอ 🌿"}
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// GreetingName 资料没有名字时使用默认称呼
func GreetingName(p *model.UserProfile) string {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return DefaultGreetingName
	}
	return strings.TrimSpace(p.Name)
}
