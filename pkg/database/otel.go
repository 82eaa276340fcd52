// Package database 为 database/sql 上的本地存储提供链路追踪与指标。
package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "boostme.sqlite"

var (
	dbQueriesTotal  metric.Int64Counter
	dbQueryDuration metric.Float64Histogram
	metricsOnce     sync.Once
)

// initMetrics 第一次使用时从全局 MeterProvider 创建指标
func initMetrics() {
	meter := otel.Meter(instrumentationName)

	var err error
	dbQueriesTotal, err = meter.Int64Counter(
		"db.queries.total",
		metric.WithDescription("Total number of local store queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		otel.Handle(err)
	}

	dbQueryDuration, err = meter.Float64Histogram(
		"db.query.duration",
		metric.WithDescription("Local store query duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0),
	)
	if err != nil {
		otel.Handle(err)
	}
}

// Observe 开始一次存储操作的 span，返回的函数在操作结束时调用
//
//	ctx, done := database.Observe(ctx, "get", key)
//	defer func() { done(err) }()
func Observe(ctx context.Context, operation, key string) (context.Context, func(error)) {
	metricsOnce.Do(initMetrics)

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "sqlite."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemSqlite,
			semconv.DBOperation(operation),
			attribute.String("db.kv.key", key),
		),
	)
	start := time.Now()

	return ctx, func(err error) {
		defer span.End()

		status := "success"
		switch {
		case err == nil, errors.Is(err, sql.ErrNoRows):
			span.SetStatus(codes.Ok, "")
		default:
			status = "error"
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}

		labels := metric.WithAttributes(
			attribute.String("db.operation", operation),
			attribute.String("db.status", status),
		)
		if dbQueriesTotal != nil {
			dbQueriesTotal.Add(ctx, 1, labels)
		}
		if dbQueryDuration != nil {
			dbQueryDuration.Record(ctx, time.Since(start).Seconds(), labels)
		}
	}
}
