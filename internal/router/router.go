package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"

	"BoostMe/config"
	"BoostMe/internal/handler"
	"BoostMe/internal/middleware"
	"BoostMe/pkg/logger"
	"BoostMe/storage/redis"
)

// NewServer 开启 OTel 时挂上 hertz 链路追踪
func NewServer(addr string) *server.Hertz {
	opts := []hertzconfig.Option{server.WithHostPorts(addr)}
	var tracerMw app.HandlerFunc
	if config.Cfg.OTelEnabled {
		tracer, mw := middleware.NewServerTracerConfig()
		opts = append(opts, tracer)
		tracerMw = mw
	}

	h := server.New(opts...)
	if tracerMw != nil {
		h.Use(tracerMw)
	}
	return h
}

// Register 应用 API
func Register(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.HTTPMetricsMiddleware("app"))

	v1 := h.Group("/v1")
	v1.GET("/home", handler.GetHome)
	v1.GET("/stats", handler.GetStats)

	// 每日打卡
	checkIns := v1.Group("/check-ins")
	{
		checkIns.GET("/today", handler.GetTodayCheckIn)
		checkIns.POST("/today", handler.SubmitCheckIn)
		checkIns.GET("/history", handler.GetCheckInHistory)
	}

	// 每日任务
	missions := v1.Group("/missions")
	{
		missions.GET("/today", handler.GetTodayMissions)
		missions.POST("/suggest", handler.SuggestMissions)
		missions.POST("/:id/toggle", handler.ToggleMission)
	}

	// 资料与数据重置
	profile := v1.Group("/profile")
	{
		profile.GET("", handler.GetProfile)
		profile.PUT("", handler.SaveProfile)
		profile.DELETE("", handler.ResetProfile)
	}

	reminder := v1.Group("/reminder")
	{
		reminder.GET("", handler.GetReminder)
		reminder.PUT("", handler.SaveReminder)
		reminder.GET("/alerts", handler.GetReminderAlerts)
	}

	chat := v1.Group("/chat")
	{
		chat.GET("/messages", handler.GetChatMessages)
		chat.POST("/messages", handler.SendChatMessage)
		chat.DELETE("/messages", handler.ClearChat)
	}

	coach := v1.Group("/coach")
	{
		coach.POST("/motivation", handler.GetMotivation)
		coach.POST("/task-breakdown", handler.BreakDownTask)
	}
}

// RegisterRelay relay 进程只暴露 /chat，限流依赖 redis
func RegisterRelay(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.HTTPMetricsMiddleware("relay"))

	limited := config.Cfg.RateLimitEnabled && redis.Available()
	if config.Cfg.RateLimitEnabled && !limited {
		logger.Logger.Warn("Rate limit enabled but Redis is unavailable, relay is not rate limited")
	}

	handlers := []app.HandlerFunc{handler.RelayChat}
	if limited {
		cfg := middleware.RelayRateLimitConfig(config.Cfg.RateLimitRPS)
		cfg.OnLimited = handler.RelayRateLimited
		handlers = append([]app.HandlerFunc{middleware.RateLimitMiddleware(redis.Client(), cfg)}, handlers...)
	}

	h.POST("/chat", handlers...)
	h.POST("/api/chat", handlers...)
}
