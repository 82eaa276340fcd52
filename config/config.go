package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"boostme"`

	// 本地存储: memory, redis, sqlite
	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/boostme.db"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"boostme"`

	// RabbitMQ 配置，关闭时不投递系统通知
	MQEnabled        bool   `env:"MQ_ENABLED" envDefault:"false"`
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// 系统通知投递 (worker)，为空时只记录日志
	NotifyWebhookURL    string `env:"NOTIFY_WEBHOOK_URL" envDefault:""`
	NotifyWebhookSecret string `env:"NOTIFY_WEBHOOK_SECRET" envDefault:""`

	// 教练模型配置
	CoachTransport string        `env:"COACH_TRANSPORT" envDefault:"direct"` // direct, relay
	CoachLocale    string        `env:"COACH_LOCALE" envDefault:"Thai"`
	RelayURL       string        `env:"RELAY_URL" envDefault:"http://localhost:3000"`
	RelayPort      string        `env:"PORT" envDefault:"3000"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	FallbackAPIKey string        `env:"API_KEY"`
	GeminiModel    string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL  string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	RequestTimeout time.Duration `env:"COACH_REQUEST_TIMEOUT" envDefault:"30s"`

	// 熔断配置
	BreakerMaxFailures  int           `env:"BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerResetTimeout time.Duration `env:"BREAKER_RESET_TIMEOUT" envDefault:"30s"`

	// 提醒配置
	Timezone               string        `env:"TIMEZONE" envDefault:"Asia/Bangkok"`
	ReminderInterval       time.Duration `env:"REMINDER_INTERVAL" envDefault:"60s"`
	NotificationPermission string        `env:"NOTIFICATION_PERMISSION" envDefault:""` // 预设权限: granted, denied

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`
	LoggerMaxSizeMB  int    `env:"LOGGER_MAX_SIZE_MB" envDefault:"50"`
	LoggerMaxBackups int    `env:"LOGGER_MAX_BACKUPS" envDefault:"3"`

	// 链路追踪配置
	OTelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`

	// 速率限制配置 (relay)，依赖 redis
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"5"` // 每秒请求数
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	switch Cfg.StoreDriver {
	case "memory", "redis", "sqlite":
	default:
		log.Printf("WARN: unknown STORE_DRIVER %q, falling back to sqlite", Cfg.StoreDriver)
		Cfg.StoreDriver = "sqlite"
	}

	if Cfg.CoachTransport != "direct" && Cfg.CoachTransport != "relay" {
		log.Printf("WARN: unknown COACH_TRANSPORT %q, falling back to direct", Cfg.CoachTransport)
		Cfg.CoachTransport = "direct"
	}

	if Cfg.CoachTransport == "direct" && Cfg.ProviderAPIKey() == "" {
		log.Printf("WARN: GEMINI_API_KEY is not set, coach replies will use fallbacks")
	}

	if Cfg.ReminderInterval <= 0 {
		Cfg.ReminderInterval = time.Minute
	}

	if _, err := time.LoadLocation(Cfg.Timezone); err != nil {
		log.Printf("WARN: invalid TIMEZONE %q: %v, using Local", Cfg.Timezone, err)
		Cfg.Timezone = "Local"
	}
}

// ProviderAPIKey GEMINI_API_KEY 优先，API_KEY 兜底
func (c *Config) ProviderAPIKey() string {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.FallbackAPIKey
}

// Location 返回提醒与打卡使用的日历时区
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
