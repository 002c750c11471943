package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// ParseLevel đọc level từ chuỗi cấu hình, mặc định là InfoLevel
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
	With(key string, value interface{}) Logger
}

// DefaultLogger implement Logger bằng zerolog
type DefaultLogger struct {
	zl zerolog.Logger
}

// NewDefaultLogger tạo logger ghi ra stderr. Console writer dùng cho dev,
// các môi trường khác ghi JSON.
func NewDefaultLogger(level Level, pretty bool) *DefaultLogger {
	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return NewWithWriter(out, level)
}

// NewWithWriter tạo logger ghi ra writer bất kỳ
func NewWithWriter(w io.Writer, level Level) *DefaultLogger {
	zl := zerolog.New(w).Level(toZerolog(level)).With().Timestamp().Logger()
	return &DefaultLogger{zl: zl}
}

// Nop discards everything.
func Nop() *DefaultLogger {
	return &DefaultLogger{zl: zerolog.Nop()}
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Debug log debug
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// With trả về logger con gắn thêm một field
func (l *DefaultLogger) With(key string, value interface{}) Logger {
	return &DefaultLogger{zl: l.zl.With().Interface(key, value).Logger()}
}
