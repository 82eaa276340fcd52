package coach

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"BoostMe/pkg/logger"
)

// BreakerState 熔断器状态
type BreakerState int

const (
	StateClosed   BreakerState = iota // 正常调用
	StateOpen                         // 熔断中，直接走兜底
	StateHalfOpen                     // 放行一次探测
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrCircuitOpen = errors.New("coach: circuit breaker is open")

// Breaker 模型调用熔断器：连续失败 maxFailures 次后熔断，resetTimeout 后半开探测
type Breaker struct {
	name         string
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time

	mu           sync.Mutex
	state        BreakerState
	failures     int
	lastFailTime time.Time
	probing      bool
}

func NewBreaker(name string, maxFailures int, resetTimeout time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	return &Breaker{
		name:         name,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
	}
}

// Allow 半开状态同一时间只放行一个探测请求
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateOpen:
		if b.now().Sub(b.lastFailTime) < b.resetTimeout {
			return false
		}
		b.state = StateHalfOpen
		logger.Logger.Info("Circuit breaker transitioned to half-open", zap.String("breaker", b.name))
		fallthrough
	case StateHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return false
	}
}

// Record 记录调用结果
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if err == nil {
		if b.state != StateClosed {
			logger.Logger.Info("Circuit breaker transitioned to closed", zap.String("breaker", b.name))
		}
		b.state = StateClosed
		b.failures = 0
		return
	}

	b.failures++
	b.lastFailTime = b.now()
	logger.Logger.Warn("Coach transport call failed",
		zap.String("breaker", b.name),
		zap.Int("failures", b.failures),
		zap.String("state", b.state.String()),
		zap.Error(err),
	)

	if b.state == StateHalfOpen || b.failures >= b.maxFailures {
		b.state = StateOpen
		logger.Logger.Warn("Circuit breaker transitioned to open",
			zap.String("breaker", b.name),
			zap.Duration("reset_timeout", b.resetTimeout),
		)
	}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
