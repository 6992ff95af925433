package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/refaktor/fwrapgen/textutils"
)

type LogLevel int

const (
	DEBUG LogLevel = -1
	INFO  LogLevel = 0
	WARN  LogLevel = 1
	ERROR LogLevel = 2
	FATAL LogLevel = 99
)

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		panic(fmt.Sprintf("invalid log level: %v", int(l)))
	}
}

// Logger writes human-readable messages through a zap console logger.
// Multi-line messages start on their own line and are indented.
type Logger struct {
	Prefix   string
	MinLevel LogLevel

	z *zap.Logger
}

// NewLogger returns a Logger writing to w. The same zap logger is handed
// to the library packages with Zap.
func NewLogger(w io.Writer, prefix string, minLevel LogLevel) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		minLevel.zapLevel(),
	)
	return &Logger{
		Prefix:   prefix,
		MinLevel: minLevel,
		z:        zap.New(core),
	}
}

func (l *Logger) Zap() *zap.Logger {
	return l.z
}

func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if l.z == nil || level < l.MinLevel {
		return
	}
	var b strings.Builder
	if l.Prefix != "" {
		b.WriteString(l.Prefix)
		b.WriteString(":")
	}
	s := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	if strings.Contains(s, "\n") {
		b.WriteString("\n")
		s = textutils.IndentString(s, "  ", 1)
	} else if l.Prefix != "" {
		b.WriteString(" ")
	}
	b.WriteString(s)

	msg := b.String()
	switch level {
	case DEBUG:
		l.z.Debug(msg)
	case INFO:
		l.z.Info(msg)
	case WARN:
		l.z.Warn(msg)
	case ERROR:
		l.z.Error(msg)
	case FATAL:
		l.z.Fatal(msg)
	default:
		panic(fmt.Sprintf("invalid log level: %v", int(level)))
	}
}

func (l *Logger) Sync() {
	_ = l.z.Sync()
}
