package utils

import (
	"invitation_backend/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = newLogger(zapcore.InfoLevel)

// InitLogger rebuilds the package logger once the config is parsed, so
// DEBUG=true lowers the level.
func InitLogger() {
	if config.Config.Debug {
		Logger = newLogger(zapcore.DebugLevel)
	}
}

func newLogger(level zapcore.Level) *zap.Logger {
	logger, _ := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}.Build()
	return logger
}
