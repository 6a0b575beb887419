package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

func NewLogger(level string) (*Logger, error) {
	config := zap.NewProductionConfig()

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{logger}, nil
}

// WithOp scopes the logger to one command invocation, tagging every entry
// with the command name and a fresh operation id for correlation.
func (l *Logger) WithOp(op string) *zap.Logger {
	return l.With(
		zap.String("op", op),
		zap.String("op_id", uuid.New().String()),
	)
}

// Nop returns a disabled logger for components that do not need output.
func Nop() *Logger {
	return &Logger{zap.NewNop()}
}
