package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"BoostMe/config"
)

var (
	// Logger 在 Init 之前为 Nop，测试和工具代码可直接使用
	Logger   = zap.NewNop()
	logClose io.Closer
)

var hlogLevels = map[zapcore.Level]hlog.Level{
	zapcore.DebugLevel: hlog.LevelDebug,
	zapcore.InfoLevel:  hlog.LevelInfo,
	zapcore.WarnLevel:  hlog.LevelWarn,
	zapcore.ErrorLevel: hlog.LevelError,
}

// Init 按配置创建全局 logger 并接管 hertz 的 hlog。
// 日志文件不可写时退回 stdout。
func Init() {
	level := zap.NewAtomicLevelAt(ParseLevel(config.Cfg.LoggerLevel))

	ws, fileErr := buildWriteSyncer(config.Cfg.LoggerOutputPath)

	hzLogger := hertzzap.NewLogger(
		hertzzap.WithCoreEnc(buildEncoder(useConsole())),
		hertzzap.WithCoreWs(ws),
		hertzzap.WithCoreLevel(level),
		hertzzap.WithZapOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
			zap.Fields(
				zap.String("service", config.Cfg.ServiceName),
				zap.String("env", config.Cfg.Environment),
			),
		),
	)
	hlog.SetLogger(hzLogger)
	hlog.SetLevel(hlogLevel(level.Level()))

	Logger = hzLogger.Logger()
	if fileErr != nil {
		Logger.Warn("Log file unavailable, writing to stdout",
			zap.String("path", config.Cfg.LoggerOutputPath),
			zap.Error(fileErr),
		)
	}
	Logger.Debug("Logger ready",
		zap.Stringer("level", level.Level()),
		zap.String("output", config.Cfg.LoggerOutputPath),
	)
}

// Named 带组件名的子 logger，调用时取当前的全局 Logger
func Named(component string) *zap.Logger {
	return Logger.Named(component)
}

func Sync() {
	_ = Logger.Sync()
	if logClose != nil {
		_ = logClose.Close()
		logClose = nil
	}
}

// ParseLevel 无法识别时为 info
func ParseLevel(text string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(text)))
	if err != nil || lvl > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return lvl
}

func hlogLevel(l zapcore.Level) hlog.Level {
	if hl, ok := hlogLevels[l]; ok {
		return hl
	}
	return hlog.LevelInfo
}

func useConsole() bool {
	return config.Cfg.IsDevelopment() || strings.EqualFold(config.Cfg.LoggerFormat, "text")
}

func buildEncoder(console bool) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder

	if console {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

// buildWriteSyncer 文件输出由 lumberjack 按大小滚动，开发环境同时输出到 stdout
func buildWriteSyncer(path string) (zapcore.WriteSyncer, error) {
	if path == "" || strings.EqualFold(path, "stdout") {
		return zapcore.AddSync(os.Stdout), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zapcore.AddSync(os.Stdout), fmt.Errorf("create log dir: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.Cfg.LoggerMaxSizeMB,
		MaxBackups: config.Cfg.LoggerMaxBackups,
		Compress:   true,
	}
	logClose = rotator

	if config.Cfg.IsDevelopment() {
		return zapcore.NewMultiWriteSyncer(zapcore.AddSync(rotator), zapcore.AddSync(os.Stdout)), nil
	}
	return zapcore.AddSync(rotator), nil
}
