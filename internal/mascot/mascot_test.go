package mascot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BoostMe/internal/model"
)

func TestMoodForScoreTiers(t *testing.T) {
	cases := map[int]model.MascotMood{
		10: model.MascotProud,
		8:  model.MascotProud,
		7:  model.MascotHappy,
		6:  model.MascotHappy,
		5:  model.MascotWorried,
		4:  model.MascotWorried,
		3:  model.MascotLow,
		1:  model.MascotLow,
	}
	for score, want := range cases {
		assert.Equal(t, want, MoodForScore(score), "score %d", score)
	}
}

func TestFromCheckIn(t *testing.T) {
	state := FromCheckIn(nil)
	assert.Equal(t, model.MascotNeutral, state.Mood)
	assert.Equal(t, "วันนี้รู้สึกยังไง มาลองเช็กอินกับเราได้นะ 🌱", state.Message)

	state = FromCheckIn(&model.CheckInRecord{Score: 9})
	assert.Equal(t, model.MascotProud, state.Mood)
	assert.NotEmpty(t, state.Message)
}

func TestFromChatText(t *testing.T) {
	assert.Equal(t, model.MascotWorried, FromChatText("วันนี้เครียดมาก").Mood)
	assert.Equal(t, model.MascotHappy, FromChatText("ภูมิใจในตัวเอง").Mood)
	assert.Equal(t, model.MascotNeutral, FromChatText("hello").Mood)
}

func TestGreetingName(t *testing.T) {
	assert.Equal(t, DefaultGreetingName, GreetingName(nil))
	assert.Equal(t, DefaultGreetingName, GreetingName(&model.UserProfile{Name: "  "}))
	assert.Equal(t, "Nok", GreetingName(&model.UserProfile{Name: " Nok "}))
}
