package coach

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoostMe/internal/model"
	"BoostMe/internal/model/dto"
	"BoostMe/pkg/genai"
)

type fakeGenerator struct {
	model string
	body  *genai.Request
	reply string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, body *genai.Request) (*genai.Response, error) {
	f.model, f.body = model, body
	return &genai.Response{Candidates: []genai.Candidate{{Content: genai.Text("model", f.reply)}}}, nil
}

func (f *fakeGenerator) StreamGenerateContent(_ context.Context, model string, body *genai.Request) iter.Seq2[string, error] {
	f.model, f.body = model, body
	return func(yield func(string, error) bool) {
		yield(f.reply, nil)
	}
}

func TestDirectTransportChatHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "โอเค"}
	d := NewDirectTransport(gen, "gemini-2.5-flash", "Thai")

	text, err := d.Generate(context.Background(), Request{
		Mode:    ModeChat,
		Message: "ช่วยด้วย",
		History: []model.ChatMessage{
			{Role: model.RoleUser, Text: "hi"},
			{Role: model.RoleModel, Text: "hello"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "โอเค", text)
	assert.Equal(t, "gemini-2.5-flash", gen.model)

	require.Len(t, gen.body.Contents, 3)
	assert.Equal(t, "user", gen.body.Contents[0].Role)
	assert.Equal(t, "model", gen.body.Contents[1].Role)
	assert.Equal(t, `User says: "ช่วยด้วย"`, gen.body.Contents[2].Parts[0].Text)
	require.NotNil(t, gen.body.SystemInstruction)
	assert.Nil(t, gen.body.GenerationConfig)
}

func TestDirectTransportSuggestUsesSchema(t *testing.T) {
	gen := &fakeGenerator{reply: `{"missions":["a"]}`}
	d := NewDirectTransport(gen, "m", "Thai")

	_, err := d.Generate(context.Background(), Request{
		Mode:    ModeSuggest,
		History: []model.ChatMessage{{Role: model.RoleUser, Text: "ignored"}},
	})
	require.NoError(t, err)
	require.Len(t, gen.body.Contents, 1)
	require.NotNil(t, gen.body.GenerationConfig)
	assert.Equal(t, "application/json", gen.body.GenerationConfig.ResponseMIMEType)
}

func TestRelayTransportGenerate(t *testing.T) {
	var got dto.RelayChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"สู้ๆ"}`))
	}))
	defer srv.Close()

	rt, err := NewRelayTransport(srv.URL+"/", time.Second)
	require.NoError(t, err)

	reply, err := rt.Generate(context.Background(), Request{
		Mode:    ModeReflect,
		Profile: &model.UserProfile{Name: "Mint"},
		CheckIn: &model.CheckInRecord{Score: 8, Mood: "happy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "สู้ๆ", reply)
	assert.Equal(t, "reflect", got.Mode)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "Mint", got.Profile.Name)
	require.NotNil(t, got.CheckIn)
	assert.Equal(t, 8, got.CheckIn.Score)
}

func TestRelayTransportErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Gemini error"}`))
	}))
	defer srv.Close()

	rt, err := NewRelayTransport(srv.URL, time.Second)
	require.NoError(t, err)

	var streamErr error
	for _, err := range rt.Stream(context.Background(), Request{Mode: ModeChat, Message: "x"}) {
		streamErr = err
	}
	assert.EqualError(t, streamErr, "relay: Gemini error (status 500)")
}
