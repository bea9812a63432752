package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogDir = "logs"

var (
	logger   *zap.Logger
	logLevel = zap.NewAtomicLevel()
)

// NewLogger 创建写入 logs/<serviceName>.log 并同时输出到控制台的 logger
func NewLogger(serviceName string) *zap.Logger {
	return NewLoggerWithDir(defaultLogDir, serviceName)
}

// NewLoggerWithDir 与 NewLogger 相同，但可以指定日志目录
func NewLoggerWithDir(logDir, serviceName string) *zap.Logger {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		panic(err)
	}

	logFile := filepath.Join(logDir, serviceName+".log")

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.LevelKey = "level"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	// 使用lumberjack进行日志轮转
	var writer io.Writer = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}

	fileCore := zapcore.NewCore(jsonEncoder, zapcore.AddSync(writer), logLevel)
	// 控制台跟随同一个 level，命令行工具里 debug 也能直接看到
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(os.Stderr), logLevel)

	logger = zap.New(zapcore.NewTee(fileCore, consoleCore), zap.AddCaller()).
		With(zap.String("service", serviceName))
	return logger
}

func SetLogLevel(level string) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return
	}
	if logLevel.Level() == zapLevel {
		return
	}
	logLevel.SetLevel(zapLevel)
	if logger != nil {
		logger.Info("Log level set to", zap.String("level", level))
	}
}

func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()

	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// NewLoggerWithTrace 只有在 ctx 中存在有效 span 时才附加 trace 字段
func NewLoggerWithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if span := SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		return logger.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return logger
}
