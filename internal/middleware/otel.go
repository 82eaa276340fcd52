package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// httpInstruments app 与 relay 共用的请求指标
type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
	respSize metric.Int64Histogram
}

var instruments *httpInstruments

// InitMetrics 未调用时 HTTPMetricsMiddleware 直接放行
func InitMetrics(meter metric.Meter) error {
	in := &httpInstruments{}
	var err error

	if in.requests, err = meter.Int64Counter(
		"boostme.http.requests",
		metric.WithDescription("HTTP requests by surface, route and status"),
		metric.WithUnit("{request}"),
	); err != nil {
		return err
	}

	// 模型调用可能要数秒，桶上限放宽到 30s
	if in.duration, err = meter.Float64Histogram(
		"boostme.http.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	); err != nil {
		return err
	}

	if in.inFlight, err = meter.Int64UpDownCounter(
		"boostme.http.in_flight",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}"),
	); err != nil {
		return err
	}

	if in.respSize, err = meter.Int64Histogram(
		"boostme.http.response.size",
		metric.WithDescription("Response body size"),
		metric.WithUnit("By"),
	); err != nil {
		return err
	}

	instruments = in
	return nil
}

// routeOf 用路由模板做标签，/v1/missions/:id/toggle 不会按 id 展开
func routeOf(c *app.RequestContext) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// HTTPMetricsMiddleware 记录请求指标，并给 hertz 追踪中间件创建的 span 补充业务属性。
// surface 区分 app 与 relay 两个进程。
func HTTPMetricsMiddleware(surface string) app.HandlerFunc {
	surfaceAttr := attribute.String("boostme.surface", surface)

	return func(ctx context.Context, c *app.RequestContext) {
		in := instruments
		if in == nil {
			c.Next(ctx)
			return
		}

		start := time.Now()
		in.inFlight.Add(ctx, 1, metric.WithAttributes(surfaceAttr))
		defer in.inFlight.Add(ctx, -1, metric.WithAttributes(surfaceAttr))

		route := routeOf(c)
		method := string(c.Method())

		span := trace.SpanFromContext(ctx)
		span.SetAttributes(surfaceAttr, semconv.HTTPRoute(route))
		if id := c.GetHeader("X-Request-ID"); len(id) > 0 {
			span.SetAttributes(attribute.String("http.request_id", strings.ToValidUTF8(string(id), "")))
		}

		c.Next(ctx)

		status := c.Response.StatusCode()
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
			if last := c.Errors.Last(); last != nil {
				span.RecordError(last)
			}
		}

		attrs := metric.WithAttributes(
			surfaceAttr,
			semconv.HTTPMethod(method),
			semconv.HTTPRoute(route),
			semconv.HTTPStatusCode(status),
		)
		in.requests.Add(ctx, 1, attrs)
		in.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		if n := len(c.Response.Body()); n > 0 {
			in.respSize.Record(ctx, int64(n), attrs)
		}
	}
}

// NewServerTracerConfig 返回 server 选项和配套的追踪中间件，两者需同时注册
func NewServerTracerConfig(opts ...hertztracing.Option) (config.Option, app.HandlerFunc) {
	tracer, cfg := hertztracing.NewServerTracer(opts...)
	return tracer, hertztracing.ServerMiddleware(cfg)
}
