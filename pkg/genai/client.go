// Package genai 是 Gemini generateContent REST 接口的最小客户端。
package genai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var (
	ErrNoAPIKey      = errors.New("genai: API key not configured")
	ErrEmptyResponse = errors.New("genai: empty response")
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	hc      *client.Client
	stream  *client.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	// 标准网络库才支持 TLS
	hc, err := client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithDialTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("genai: create client: %w", err)
	}
	stream, err := client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithDialTimeout(5*time.Second),
		client.WithClientReadTimeout(cfg.Timeout),
		client.WithResponseBodyStream(true),
	)
	if err != nil {
		return nil, fmt.Errorf("genai: create stream client: %w", err)
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		hc:      hc,
		stream:  stream,
	}, nil
}

func (c *Client) newRequest(url string, body *Request) (*protocol.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("genai: marshal request: %w", err)
	}
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(url)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.SetBody(payload)
	return req, nil
}

// GenerateContent 非流式调用
func (c *Client) GenerateContent(ctx context.Context, model string, body *Request) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	req, err := c.newRequest(fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model), body)
	if err != nil {
		return nil, err
	}
	defer protocol.ReleaseRequest(req)
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseResponse(resp)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if err := c.hc.DoTimeout(ctx, req, resp, timeout); err != nil {
		return nil, fmt.Errorf("genai: request failed: %w", err)
	}

	return decodeResponse(resp.StatusCode(), resp.Body())
}

func decodeResponse(status int, raw []byte) (*Response, error) {
	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		if status != http.StatusOK {
			return nil, &APIError{Code: status, Status: http.StatusText(status), Message: string(bytes.TrimSpace(raw))}
		}
		return nil, fmt.Errorf("genai: decode response: %w", err)
	}
	if out.Error != nil {
		return nil, out.Error
	}
	if status != http.StatusOK {
		return nil, &APIError{Code: status, Status: http.StatusText(status)}
	}
	if len(out.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}
	return &out, nil
}

// StreamGenerateContent 通过 SSE 逐块返回文本。序列惰性执行，遇到错误后结束。
func (c *Client) StreamGenerateContent(ctx context.Context, model string, body *Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if c.apiKey == "" {
			yield("", ErrNoAPIKey)
			return
		}

		req, err := c.newRequest(fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", c.baseURL, model), body)
		if err != nil {
			yield("", err)
			return
		}
		defer protocol.ReleaseRequest(req)
		resp := protocol.AcquireResponse()
		defer protocol.ReleaseResponse(resp)

		if err := c.stream.Do(ctx, req, resp); err != nil {
			yield("", fmt.Errorf("genai: stream request failed: %w", err))
			return
		}
		defer resp.CloseBodyStream()

		if resp.StatusCode() != http.StatusOK {
			_, err := decodeResponse(resp.StatusCode(), resp.Body())
			if err == nil {
				err = &APIError{Code: resp.StatusCode(), Status: http.StatusText(resp.StatusCode())}
			}
			yield("", err)
			return
		}

		scanner := bufio.NewScanner(resp.BodyStream())
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			if ctx.Err() != nil {
				yield("", ctx.Err())
				return
			}
			data, ok := strings.CutPrefix(scanner.Text(), "data:")
			if !ok {
				continue
			}
			var chunk Response
			if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &chunk); err != nil {
				yield("", fmt.Errorf("genai: decode stream chunk: %w", err))
				return
			}
			if chunk.Error != nil {
				yield("", chunk.Error)
				return
			}
			if text := chunk.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("genai: read stream: %w", err))
		}
	}
}
