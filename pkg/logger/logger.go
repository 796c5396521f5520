package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tripplanner/internal/config"
)

// New builds the process logger. Development or text format gets a colored console encoder.
func New(cfg *config.Config) *zap.Logger {
	level := zap.NewAtomicLevelAt(parseZapLevel(cfg.LoggerLevel))

	core := zapcore.NewCore(buildEncoder(cfg), zapcore.AddSync(os.Stdout), level)
	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	logger.Info("Logger initialized successfully",
		zap.String("level", strings.ToUpper(cfg.LoggerLevel)),
		zap.String("format", cfg.LoggerFormat),
		zap.String("environment", cfg.Environment),
	)
	return logger
}

func buildEncoder(cfg *config.Config) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	isText := cfg.IsDevelopment() || strings.EqualFold(cfg.LoggerFormat, "text")
	if isText {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func parseZapLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
