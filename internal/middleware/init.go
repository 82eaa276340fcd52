package middleware

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"BoostMe/pkg/logger"
)

// Init 初始化 HTTP 指标。未开启 OTel 时全局 MeterProvider 为 noop。
func Init() error {
	if err := InitMetrics(otel.Meter("boostme-http")); err != nil {
		logger.Logger.Error("Failed to initialize HTTP metrics", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
