package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 教练调用与提醒相关指标
type OTelMetrics struct {
	CoachRequestsTotal   metric.Int64Counter
	CoachRequestDuration metric.Float64Histogram
	CoachFallbacksTotal  metric.Int64Counter
	ReminderFiredTotal   metric.Int64Counter
}

var metrics *OTelMetrics

// InitMetrics 在全局 MeterProvider 设置后调用
func InitMetrics() error {
	meter := otel.Meter("boostme")
	m := &OTelMetrics{}
	var err error

	m.CoachRequestsTotal, err = meter.Int64Counter(
		"coach_requests_total",
		metric.WithDescription("Total number of coaching model requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	m.CoachRequestDuration, err = meter.Float64Histogram(
		"coach_request_duration_seconds",
		metric.WithDescription("Coaching model request latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	m.CoachFallbacksTotal, err = meter.Int64Counter(
		"coach_fallbacks_total",
		metric.WithDescription("Coaching replies replaced by a fixed fallback"),
		metric.WithUnit("{reply}"),
	)
	if err != nil {
		return err
	}

	m.ReminderFiredTotal, err = meter.Int64Counter(
		"reminder_fired_total",
		metric.WithDescription("Daily reminders delivered"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return err
	}

	metrics = m
	return nil
}

// GetMetrics 未初始化时返回 nil，所有 Record 方法对 nil 安全
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordCoachRequest 记录一次模型调用
func (m *OTelMetrics) RecordCoachRequest(ctx context.Context, transport, mode string, duration float64, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	attrs := metric.WithAttributes(
		attribute.String("transport", transport),
		attribute.String("mode", mode),
		attribute.String("status", status),
	)
	m.CoachRequestsTotal.Add(ctx, 1, attrs)
	m.CoachRequestDuration.Record(ctx, duration, attrs)
}

func (m *OTelMetrics) RecordCoachFallback(ctx context.Context, mode string) {
	if m == nil {
		return
	}
	m.CoachFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

func (m *OTelMetrics) RecordReminderFired(ctx context.Context, reminderType string, osDelivered bool) {
	if m == nil {
		return
	}
	m.ReminderFiredTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", reminderType),
		attribute.Bool("os_notification", osDelivered),
	))
}
