package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"BoostMe/internal/model/dto"
)

// RelayTransport 经 relay 的 POST /chat 调用模型，本进程不持有密钥
type RelayTransport struct {
	endpoint string
	timeout  time.Duration
	hc       *client.Client
}

func NewRelayTransport(baseURL string, timeout time.Duration) (*RelayTransport, error) {
	hc, err := client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithDialTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("relay: create client: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RelayTransport{
		endpoint: strings.TrimRight(baseURL, "/") + "/chat",
		timeout:  timeout,
		hc:       hc,
	}, nil
}

func (r *RelayTransport) Name() string { return "relay" }

func (r *RelayTransport) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(dto.RelayChatRequest{
		Message: req.Message,
		Profile: req.Profile,
		Mode:    string(req.Mode),
		History: req.History,
		CheckIn: req.CheckIn,
	})
	if err != nil {
		return "", fmt.Errorf("relay: marshal request: %w", err)
	}

	hreq := protocol.AcquireRequest()
	defer protocol.ReleaseRequest(hreq)
	hresp := protocol.AcquireResponse()
	defer protocol.ReleaseResponse(hresp)

	hreq.SetMethod(consts.MethodPost)
	hreq.SetRequestURI(r.endpoint)
	hreq.Header.SetContentTypeBytes([]byte("application/json"))
	hreq.SetBody(payload)

	if err := r.hc.DoTimeout(ctx, hreq, hresp, r.timeout); err != nil {
		return "", fmt.Errorf("relay: request failed: %w", err)
	}

	if hresp.StatusCode() != http.StatusOK {
		var failure dto.RelayErrorResponse
		_ = json.Unmarshal(hresp.Body(), &failure)
		if failure.Error == "" {
			failure.Error = http.StatusText(hresp.StatusCode())
		}
		return "", fmt.Errorf("relay: %s (status %d)", failure.Error, hresp.StatusCode())
	}

	var out dto.RelayChatResponse
	if err := json.Unmarshal(hresp.Body(), &out); err != nil {
		return "", fmt.Errorf("relay: decode response: %w", err)
	}
	return out.Reply, nil
}

// Stream relay 不支持流式，整段回复作为唯一片段
func (r *RelayTransport) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		reply, err := r.Generate(ctx, req)
		if err != nil {
			yield("", err)
			return
		}
		yield(reply, nil)
	}
}
