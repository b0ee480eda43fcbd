package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/apurva-sri/Bolio-chatWeb/config"
)

// Logger wraps slog. The zero value logs through slog's default handler,
// so tests can pass logger.Logger{} without any setup.
type Logger struct {
	l *slog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	level := parseLevel(cfg.LoggerMode.Level)

	var handler slog.Handler
	if cfg.LoggerMode.Prod {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return &Logger{l: slog.New(handler)}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (lg *Logger) logger() *slog.Logger {
	if lg.l == nil {
		return slog.Default()
	}
	return lg.l
}

func (lg Logger) Debug(msg string, args ...any) { lg.logger().Debug(msg, args...) }
func (lg Logger) Info(msg string, args ...any)  { lg.logger().Info(msg, args...) }
func (lg Logger) Warn(msg string, args ...any)  { lg.logger().Warn(msg, args...) }
func (lg Logger) Error(msg string, args ...any) { lg.logger().Error(msg, args...) }

func (lg Logger) Debugf(format string, args ...any) { lg.logger().Debug(fmt.Sprintf(format, args...)) }
func (lg Logger) Infof(format string, args ...any)  { lg.logger().Info(fmt.Sprintf(format, args...)) }
func (lg Logger) Warnf(format string, args ...any)  { lg.logger().Warn(fmt.Sprintf(format, args...)) }
func (lg Logger) Errorf(format string, args ...any) { lg.logger().Error(fmt.Sprintf(format, args...)) }
