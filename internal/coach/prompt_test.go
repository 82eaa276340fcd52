package coach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/model"
)

func TestProfileBlockPlaceholders(t *testing.T) {
	assert.Equal(t, "No profile data provided.", ProfileBlock(nil))

	block := ProfileBlock(&model.UserProfile{Name: "Ploy", Goal: " speak up "})
	assert.Contains(t, block, "- Name: Ploy")
	assert.Contains(t, block, "- Role: -")
	assert.Contains(t, block, "- Confidence Goal: speak up")
	assert.Contains(t, block, "- Note: -")
}

func TestBuildPromptChat(t *testing.T) {
	p := BuildPrompt(Request{Mode: ModeChat, Message: "วันนี้เหนื่อย"}, "Thai")

	assert.True(t, strings.HasPrefix(p.System, "You are BoostMe Coach"))
	assert.Contains(t, p.System, "Mode: Chat")
	assert.True(t, strings.HasSuffix(p.System, "Respond in Thai."))
	assert.Equal(t, `User says: "วันนี้เหนื่อย"`, p.User)
	assert.Nil(t, p.Schema)
	// 用户内容在最后
	assert.True(t, strings.HasSuffix(p.Text(), p.User))
}

func TestBuildPromptUnknownModeFallsBackToChat(t *testing.T) {
	p := BuildPrompt(Request{Mode: ParseMode("poetry"), Message: "x"}, "")
	assert.Contains(t, p.System, "Mode: Chat")
	assert.Contains(t, p.System, "Respond in Thai.")
}

func TestBuildPromptReflect(t *testing.T) {
	p := BuildPrompt(Request{
		Mode:    ModeReflect,
		CheckIn: &model.CheckInRecord{Score: 4, Mood: "worried", Note: "สอบพรุ่งนี้"},
	}, "Thai")

	assert.Contains(t, p.System, "Mode: Emotional Reflection")
	assert.Contains(t, p.User, "Confidence Score: 4/10")
	assert.Contains(t, p.User, "Mood: worried")
	assert.Contains(t, p.User, `Note: "สอบพรุ่งนี้"`)
	assert.Contains(t, p.User, "max 2 sentences")
}

func TestBuildPromptSuggestHasSchema(t *testing.T) {
	p := BuildPrompt(Request{Mode: ModeSuggest}, "English")

	assert.Contains(t, p.System, "Mode: Suggest Daily Activities")
	assert.Contains(t, p.System, "Respond in English.")
	assert.Contains(t, p.User, SuggestRequest)
	require.NotNil(t, p.Schema)
	assert.Equal(t, "ARRAY", p.Schema.Properties["missions"].Type)
}

func TestBuildPromptTaskBreakdown(t *testing.T) {
	p := BuildPrompt(Request{Mode: ModeTaskBreakdown, Message: "clean room"}, "Thai")
	assert.Empty(t, p.System)
	assert.Contains(t, p.User, `Task: "clean room"`)
	require.NotNil(t, p.Schema)
	assert.Equal(t, []string{"title", "description", "duration"}, p.Schema.Items.Required)
}

func TestParseMissions(t *testing.T) {
	got, err := ParseMissions(`{"missions":["ดื่มน้ำ","ยืดตัว"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ดื่มน้ำ", "ยืดตัว"}, got)

	_, err = ParseMissions(`{"missions":[]}`)
	assert.ErrorIs(t, err, ErrNoMissions)

	_, err = ParseMissions(`{}`)
	assert.ErrorIs(t, err, ErrNoMissions)

	_, err = ParseMissions(`missions: a, b`)
	assert.Error(t, err)
}

func TestBuildPromptReflectWithoutCheckIn(t *testing.T) {
	p := BuildPrompt(Request{Mode: ModeReflect, Message: "เหนื่อยมาก"}, "Thai")
	assert.Contains(t, p.System, "Mode: Emotional Reflection")
	assert.Equal(t, `User says: "เหนื่อยมาก"`, p.User)
}
