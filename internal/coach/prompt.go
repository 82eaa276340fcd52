package coach

import (
	"fmt"
	"strings"

	"BoostMe/internal/model"
	"BoostMe/pkg/genai"
)

const persona = `You are BoostMe Coach, a warm best-friend style confidence coach.
Your tone is emotionally safe, friendly, supportive, and non-judgmental.
Your primary goals:
- increase confidence
- help user feel understood
- give simple emotional guidance
- offer small actionable steps

You must always connect your advice to the user's personal profile.`

const (
	profilePlaceholder = "-"
	noProfile          = "No profile data provided."

	// SuggestRequest suggest_activities 模式固定的用户请求
	SuggestRequest = "ช่วยแนะนำกิจกรรมรายวัน 3–5 ข้อที่เหมาะกับฉันวันนี้หน่อย"
)

var modeInstructions = map[Mode]string{
	ModeChat: `Mode: Chat
Task:
- Respond naturally like a supportive best friend
- Reference user's role and goal
- Offer 1-2 practical actions`,
	ModeReflect: `Mode: Emotional Reflection
Task:
- Reflect the user's emotions
- Validate feelings
- Offer emotional insight and simple next steps`,
	ModeSuggest: `Mode: Suggest Daily Activities
Task:
- Provide 3-5 short confidence-boosting activities
- Must match user's role, goal, and emotional context
- Keep tone warm and friendly`,
}

// Prompt 组装好的提示词：System 为系统指令，User 为最后一轮用户内容
type Prompt struct {
	System string
	User   string
	Schema *genai.Schema
}

// Text 单段文本形式，供不支持系统指令的调用方使用
func (p Prompt) Text() string {
	if p.System == "" {
		return p.User
	}
	return p.System + "\n\n" + p.User
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return profilePlaceholder
	}
	return s
}

// ProfileBlock 资料缺失的字段使用占位符
func ProfileBlock(p *model.UserProfile) string {
	if p == nil {
		return noProfile
	}
	return fmt.Sprintf("User Profile:\n- Name: %s\n- Role: %s\n- Confidence Goal: %s\n- Note: %s",
		orPlaceholder(p.Name), orPlaceholder(p.Role), orPlaceholder(p.Goal), orPlaceholder(p.Note))
}

// BuildPrompt 人设 + 资料 + 模式说明 + 语言要求，用户内容放在最后
func BuildPrompt(req Request, locale string) Prompt {
	if locale == "" {
		locale = "Thai"
	}

	switch req.Mode {
	case ModeMotivation:
		return Prompt{User: fmt.Sprintf(`Generate a short, powerful motivational quote or affirmation for someone feeling "%s".
Limit to one sentence, under 20 words.
Make it inspiring and uplifting.`, req.Message)}
	case ModeTaskBreakdown:
		return Prompt{
			User: fmt.Sprintf(`Break down the following task into 3 to 6 actionable, concrete steps.
Task: "%s".
Make the steps specific and easy to start.`, req.Message),
			Schema: taskStepsSchema,
		}
	}

	mode := req.Mode
	if _, ok := modeInstructions[mode]; !ok {
		mode = ModeChat
	}
	system := strings.Join([]string{
		persona,
		ProfileBlock(req.Profile),
		modeInstructions[mode],
		"Respond in " + locale + ".",
	}, "\n\n")

	var user string
	var schema *genai.Schema
	switch mode {
	case ModeReflect:
		ci := req.CheckIn
		if ci == nil {
			// relay 调用方可能只传 message
			user = fmt.Sprintf("User says: \"%s\"", req.Message)
			break
		}
		user = fmt.Sprintf("User Check-in:\n- Confidence Score: %d/10\n- Mood: %s\n- Note: \"%s\"\n\nReply shortly (max 2 sentences).",
			ci.Score, ci.Mood, ci.Note)
	case ModeSuggest:
		request := req.Message
		if strings.TrimSpace(request) == "" {
			request = SuggestRequest
		}
		user = fmt.Sprintf("User Request: %s\n\nIMPORTANT: Return response ONLY as a JSON object with a \"missions\" array of strings.", request)
		schema = missionsSchema
	default:
		user = fmt.Sprintf("User says: \"%s\"", req.Message)
	}

	return Prompt{System: system, User: user, Schema: schema}
}

var missionsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"missions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"missions"},
}

var taskStepsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString, Description: "A short title for the step"},
			"description": {Type: genai.TypeString, Description: "One sentence explaining what to do"},
			"duration":    {Type: genai.TypeString, Description: "Estimated time (e.g., '10 mins')"},
		},
		Required: []string{"title", "description", "duration"},
	},
}
