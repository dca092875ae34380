package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus entry to Logger.
type LogrusLogger struct {
	entry *logrus.Entry
}

var _ Logger = (*LogrusLogger)(nil)

func NewLogrus(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// New builds a logrus-backed logger writing to out. level is a logrus level
// name; format is "json" or "text".
func New(out io.Writer, level, format string) (*LogrusLogger, error) {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l.SetLevel(lvl)

	switch format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return NewLogrus(l), nil
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewLogrus(l)
}

func (l *LogrusLogger) Debug(msg string, args ...any) { l.withArgs(args).Debug(msg) }
func (l *LogrusLogger) Info(msg string, args ...any)  { l.withArgs(args).Info(msg) }
func (l *LogrusLogger) Warn(msg string, args ...any)  { l.withArgs(args).Warn(msg) }
func (l *LogrusLogger) Error(msg string, args ...any) { l.withArgs(args).Error(msg) }

func (l *LogrusLogger) With(args ...any) Logger {
	return &LogrusLogger{entry: l.withArgs(args)}
}

func (l *LogrusLogger) withArgs(args []any) *logrus.Entry {
	if len(args) == 0 {
		return l.entry
	}
	return l.entry.WithFields(fields(args))
}

// fields pairs up args. A dangling key is kept under "!BADKEY", matching
// log/slog's convention.
func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		f[key] = args[i+1]
	}
	return f
}
