package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"BoostMe/internal/model"
	"BoostMe/pkg/logger"
)

const (
	secretHeader           = "X-BoostMe-Secret"
	notificationDurationMs = 8000
)

// WebhookPayload 桌面托盘程序接收的通知体
type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// WebhookDeliverer 把通知 POST 给本机托盘程序
type WebhookDeliverer struct {
	url    string
	secret string
	hc     *client.Client
}

func NewWebhookDeliverer(url, secret string) (*WebhookDeliverer, error) {
	hc, err := client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithDialTimeout(3*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("webhook: create client: %w", err)
	}
	return &WebhookDeliverer{url: url, secret: secret, hc: hc}, nil
}

func (d *WebhookDeliverer) Deliver(ctx context.Context, msg model.ReminderNotificationMessage) error {
	body, err := json.Marshal(WebhookPayload{
		Title:      msg.Title,
		Text:       msg.Body,
		DurationMs: notificationDurationMs,
	})
	if err != nil {
		return err
	}

	req := protocol.AcquireRequest()
	defer protocol.ReleaseRequest(req)
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseResponse(resp)

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(d.url)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	if d.secret != "" {
		req.Header.Set(secretHeader, d.secret)
	}
	req.SetBody(body)

	if err := d.hc.DoTimeout(ctx, req, resp, 5*time.Second); err != nil {
		return fmt.Errorf("webhook: request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("notification failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// LogDeliverer 未配置托盘程序时只记录日志
type LogDeliverer struct{}

func (LogDeliverer) Deliver(_ context.Context, msg model.ReminderNotificationMessage) error {
	logger.Logger.Info("Reminder notification",
		zap.String("title", msg.Title),
		zap.String("body", msg.Body),
		zap.String("date", msg.Date),
		zap.String("time", msg.Time),
	)
	return nil
}
