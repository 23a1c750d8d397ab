package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case Debug:
		return logrus.DebugLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// LogrusLogger implementa Logger sobre logrus.
type LogrusLogger struct {
	entry *logrus.Entry
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// File: si viene, además de stdout se escribe a este archivo con rotación.
	File string

	// Output reemplaza stdout (tests).
	Output io.Writer
}

func New(opts Options) Logger {
	l := logrus.New()
	l.SetLevel(opts.Level.logrus())

	switch opts.Format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if f := strings.TrimSpace(opts.File); f != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   f,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // días
			Compress:   true,
		})
	}
	l.SetOutput(out)

	entry := logrus.NewEntry(l)
	if app := strings.TrimSpace(opts.App); app != "" {
		entry = entry.WithField("app", app)
	}
	return &LogrusLogger{entry: entry}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - LOG_FILE=/ruta/al/archivo.log (opcional)
// - APP_NAME=nicu-progress (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
		File:   os.Getenv("LOG_FILE"),
	})
}

// Nop descarta todo. Útil en tests.
func Nop() Logger {
	return New(Options{Level: Error, Output: io.Discard})
}

func (l *LogrusLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &LogrusLogger{entry: l.entry.WithFields(clean(fields))}
}

func (l *LogrusLogger) Debug(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, fields map[string]any) {
	l.entry.WithFields(clean(fields)).Error(msg)
}

// clean descarta keys vacías.
func clean(fields map[string]any) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
