package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"leave-agent/internal/application/port/output"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ output.LoggerPort = (*ZapLogger)(nil)

// ZapLogger writes every level as JSON to a per-run file under log/ and
// mirrors warnings and errors to stderr so a console user sees problems
// without tailing the file.
type ZapLogger struct {
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

func New(logDir string) (*ZapLogger, error) {
	if logDir == "" {
		logDir = "log"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("agent-%s.log", time.Now().Format("20060102-150405"))
	file, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(file),
		zapcore.DebugLevel,
	)
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		zapcore.WarnLevel,
	)

	base := zap.New(zapcore.NewTee(fileCore, consoleCore))
	return &ZapLogger{sugar: base.Sugar(), base: base}, nil
}

// NewNop returns a logger that discards everything. Tests use it.
func NewNop() *ZapLogger {
	base := zap.NewNop()
	return &ZapLogger{sugar: base.Sugar(), base: base}
}

func (l *ZapLogger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapLogger) WithField(key string, value any) output.LoggerPort {
	return &ZapLogger{sugar: l.sugar.With(key, value), base: l.base}
}

func (l *ZapLogger) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &ZapLogger{sugar: l.sugar.With(args...), base: l.base}
}

func (l *ZapLogger) Close() error {
	return l.base.Sync()
}
