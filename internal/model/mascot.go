package model

// MascotMood 吉祥物表情
type MascotMood string

const (
	MascotProud   MascotMood = "proud"
	MascotHappy   MascotMood = "happy"
	MascotWorried MascotMood = "worried"
	MascotLow     MascotMood = "low"
	MascotNeutral MascotMood = "neutral"
)

// MascotState 表情与配套文案
type MascotState struct {
	Mood    MascotMood `json:"mood"`
	Message string     `json:"message"`
}
