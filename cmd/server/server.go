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
	"BoostMe/internal/model"
	"BoostMe/internal/queue"
	"BoostMe/internal/repository"
	"BoostMe/internal/router"
	"BoostMe/internal/schedule"
	"BoostMe/internal/service"
	"BoostMe/internal/store"
	"BoostMe/pkg/logger"
	"BoostMe/pkg/metrics"
	"BoostMe/pkg/otel"
	"BoostMe/pkg/snowflake"
	"BoostMe/storage"
	"BoostMe/storage/mq"
)

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

	shutdownOTel := otel.ShutdownFunc(otel.Noop)
	if config.Cfg.OTelEnabled {
		fn, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:    config.Cfg.ServiceName,
			ServiceVersion: "1.0.0",
			Environment:    config.Cfg.Environment,
			OTLPEndpoint:   config.Cfg.OTLPEndpoint,
			SampleRatio:    config.Cfg.OTelSampleRatio,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize OpenTelemetry, tracing disabled", zap.Error(err))
		} else {
			shutdownOTel = fn
		}
	}
	defer func() {
		if err := shutdownOTel(context.Background()); err != nil {
			logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize metrics", zap.Error(err))
	}

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	repo := repository.New(store.FromConfig())

	c, err := coach.FromConfig()
	if err != nil {
		logger.Logger.Fatal("Failed to initialize coach", zap.Error(err))
	}

	if p := model.NotificationPermission(config.Cfg.NotificationPermission); p == model.PermissionGranted || p == model.PermissionDenied {
		if err := repo.SetPermission(ctx, p); err != nil {
			logger.Logger.Warn("Failed to preset notification permission", zap.Error(err))
		}
	}

	// 系统通知经 MQ 交给 worker，MQ 不可用时只有应用内提醒
	inbox := schedule.NewInbox()
	var osNotifier schedule.OSNotifier
	if mq.Available() {
		osNotifier = queue.NewReminderPublisher()
	}
	notifier := schedule.NewNotifier(inbox, osNotifier, repo)

	loc := config.Cfg.Location()
	reminders := schedule.NewReminderEngine(repo, notifier, config.Cfg.ReminderInterval, loc)

	service.Setup(service.Deps{
		Repo:        repo,
		Coach:       c,
		Reminders:   reminders,
		Alerts:      inbox,
		CanNotifyOS: notifier.CanNotifyOS(),
		Location:    loc,
	})

	reminders.Start(ctx)
	defer reminders.Stop()

	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
		zap.String("store", config.Cfg.StoreDriver),
		zap.String("coach_transport", c.TransportName()),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	h := router.NewServer(addr)
	router.Register(h)

	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
