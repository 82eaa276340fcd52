package coach

import (
	"context"
	"iter"

	"BoostMe/internal/model"
	"BoostMe/pkg/genai"
)

// Generator 由 genai.Client 实现
type Generator interface {
	GenerateContent(ctx context.Context, model string, body *genai.Request) (*genai.Response, error)
	StreamGenerateContent(ctx context.Context, model string, body *genai.Request) iter.Seq2[string, error]
}

// DirectTransport 本进程持有密钥直接调用模型
type DirectTransport struct {
	client Generator
	model  string
	locale string
}

func NewDirectTransport(client Generator, modelName, locale string) *DirectTransport {
	return &DirectTransport{client: client, model: modelName, locale: locale}
}

func (d *DirectTransport) Name() string { return "direct" }

// buildRequest 历史消息作为多轮内容，本次用户内容放在最后
func (d *DirectTransport) buildRequest(req Request) *genai.Request {
	prompt := BuildPrompt(req, d.locale)

	contents := make([]genai.Content, 0, len(req.History)+1)
	if req.Mode == ModeChat {
		for _, m := range req.History {
			role := "user"
			if m.Role == model.RoleModel {
				role = "model"
			}
			contents = append(contents, genai.Text(role, m.Text))
		}
	}
	contents = append(contents, genai.Text("user", prompt.User))

	body := &genai.Request{Contents: contents}
	if prompt.System != "" {
		sys := genai.Text("", prompt.System)
		body.SystemInstruction = &sys
	}
	if prompt.Schema != nil {
		body.GenerationConfig = &genai.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   prompt.Schema,
		}
	}
	return body
}

func (d *DirectTransport) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := d.client.GenerateContent(ctx, d.model, d.buildRequest(req))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (d *DirectTransport) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return d.client.StreamGenerateContent(ctx, d.model, d.buildRequest(req))
}
