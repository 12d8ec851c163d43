package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New 创建一个新的 zap logger 实例
// level: 日志级别 (debug, info, warn, error)
func New(level string) (*zap.Logger, error) {
	return NewWithCallerSkip(level, 0)
}

// NewWithCallerSkip 创建一个新的 zap logger 实例，并设置 caller skip
func NewWithCallerSkip(level string, skip int) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	// transform 的输出可能写到 stdout，日志统一走 stderr
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableCaller = false

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if skip > 0 {
		logger = logger.WithOptions(zap.AddCallerSkip(skip))
	}

	return logger, nil
}

// NewWithFile 创建同时写 stderr 和滚动日志文件的 logger
// file 为空时等同于 New
func NewWithFile(level, file string) (*zap.Logger, error) {
	if file == "" {
		return New(level)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := zap.NewAtomicLevelAt(ParseLevel(level))
	rotate := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    5, // megabytes
		MaxBackups: 5,
		MaxAge:     7, // days
		LocalTime:  true,
		Compress:   true,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(os.Stderr), lvl),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotate), lvl),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// ParseLevel 把配置中的字符串转换为 zap 级别，未知值回退到 info
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// WithCallerSkip 为现有的 logger 添加 caller skip
func WithCallerSkip(logger *zap.Logger, skip int) *zap.Logger {
	if logger == nil || skip <= 0 {
		return logger
	}
	return logger.WithOptions(zap.AddCallerSkip(skip))
}
