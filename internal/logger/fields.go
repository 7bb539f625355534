package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by every package.
const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldSession  = "session_id"
	FieldStep     = "step"
)

// Pairs turns alternating keys and values into string fields. Keys and values
// are trimmed; a pair with either side empty is dropped, as is a trailing key.
func Pairs(kv ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, value := strings.TrimSpace(kv[i]), strings.TrimSpace(kv[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describes the model backend.
func CommonFields(provider, model string) []zap.Field {
	return Pairs(FieldProvider, provider, FieldModel, model)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// SessionFields identifies an intake session and its current step.
func SessionFields(sessionID, step string) []zap.Field {
	return Pairs(FieldSession, sessionID, FieldStep, step)
}
