// Package diag собирает структурированный логгер процесса.
package diag

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NewLogger строит логгер по уровню и формату из конфигурации и пишет в stderr.
func NewLogger(level, format string) *log.Logger {
	return New(os.Stderr, level, format)
}

// New строит логгер поверх произвольного writer'а.
func New(w io.Writer, level, format string) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(ParseLevel(level))

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	default:
		l.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return l
}

// ParseLevel переводит строку уровня в log.Level; неизвестное значение даёт info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Discard возвращает логгер, который ничего не пишет.
func Discard() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	l.SetLevel(log.PanicLevel)
	return log.NewEntry(l)
}
