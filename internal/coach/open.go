package coach

import (
	"fmt"

	"BoostMe/config"
	"BoostMe/pkg/genai"
)

// NewDirectFromConfig 使用 GEMINI_API_KEY 直连模型，relay 进程固定使用
func NewDirectFromConfig() (*DirectTransport, error) {
	client, err := genai.New(genai.Config{
		APIKey:  config.Cfg.ProviderAPIKey(),
		BaseURL: config.Cfg.GeminiBaseURL,
		Timeout: config.Cfg.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	return NewDirectTransport(client, config.Cfg.GeminiModel, config.Cfg.CoachLocale), nil
}

// FromConfig 按 COACH_TRANSPORT 选择传输方式并加上熔断
func FromConfig() (*Coach, error) {
	var (
		t   Transport
		err error
	)
	switch config.Cfg.CoachTransport {
	case "relay":
		t, err = NewRelayTransport(config.Cfg.RelayURL, config.Cfg.RequestTimeout)
	default:
		t, err = NewDirectFromConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("coach transport: %w", err)
	}

	breaker := NewBreaker("coach-"+t.Name(), config.Cfg.BreakerMaxFailures, config.Cfg.BreakerResetTimeout)
	return New(t, breaker), nil
}
