package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"BoostMe/config"
	"BoostMe/internal/coach"
	"BoostMe/internal/middleware"
	"BoostMe/internal/router"
	"BoostMe/internal/service"
	"BoostMe/pkg/logger"
	"BoostMe/pkg/metrics"
	"BoostMe/storage/redis"
)

// relay 持有模型密钥，浏览器端通过 POST /chat 间接调用
func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if config.Cfg.ProviderAPIKey() == "" {
		logger.Logger.Warn("No provider API key configured, every relay request will fail")
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize metrics", zap.Error(err))
	}

	if config.Cfg.RateLimitEnabled {
		if err := redis.Init(); err != nil {
			logger.Logger.Warn("Redis unavailable, relay is not rate limited", zap.Error(err))
		}
		defer func() {
			if err := redis.Close(context.Background()); err != nil {
				logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	direct, err := coach.NewDirectFromConfig()
	if err != nil {
		logger.Logger.Fatal("Failed to initialize model client", zap.Error(err))
	}
	// relay 只转发，不做熔断，错误原样返回给调用方
	service.Setup(service.Deps{Coach: coach.New(direct, nil)})

	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.RelayPort)
	h := router.NewServer(addr)
	router.RegisterRelay(h)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown relay server", zap.Error(err))
		}
	}()

	logger.Logger.Info("Relay listening", zap.String("addr", addr), zap.String("model", config.Cfg.GeminiModel))

	h.Spin()

	logger.Logger.Info("Relay shutting down gracefully")
}
