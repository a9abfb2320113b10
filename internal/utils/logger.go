package utils

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// NewLogger builds the JSON zap logger used by the whole service.
func NewLogger(level string) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil || strings.TrimSpace(level) == "" {
		_ = lvl.UnmarshalText([]byte(defaultLogLevel))
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	cfg := zap.Config{
		Level:             lvl,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(logger *zap.Logger, requestID, module, action, message string, fields ...zap.Field) {
	if logger == nil {
		return
	}
	base := []zap.Field{
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	}
	logger.Info(message, append(base, fields...)...)
}
