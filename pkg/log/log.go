package log

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the logging capability used by the goals
type Log interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)
	IsDebugEnabled() bool
}

// Level selects the minimum level a Log emits
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel converts a level name into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level: %s", s)
	}
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Logrus adapts a logrus logger to Log
type Logrus struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrus creates a Log writing through logger
func NewLogrus(logger *logrus.Logger) *Logrus {
	if logger == nil {
		logger = logrus.New()
	}

	return &Logrus{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// NewLogger creates a logrus logger configured for CLI output
func NewLogger(level Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level.logrusLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	return logger
}

// WithGoal tags every entry with the running goal
func (l *Logrus) WithGoal(goal string) *Logrus {
	return &Logrus{
		logger: l.logger,
		entry:  l.entry.WithField("goal", goal),
	}
}

func (l *Logrus) Debug(message string) { l.entry.Debug(message) }
func (l *Logrus) Info(message string)  { l.entry.Info(message) }
func (l *Logrus) Warn(message string)  { l.entry.Warn(message) }
func (l *Logrus) Error(message string) { l.entry.Error(message) }

// IsDebugEnabled reports whether debug entries are emitted
func (l *Logrus) IsDebugEnabled() bool {
	return l.logger.IsLevelEnabled(logrus.DebugLevel)
}

// Discard returns a Log that drops everything
func Discard() Log {
	return discard{}
}

type discard struct{}

func (discard) Debug(string)        {}
func (discard) Info(string)         {}
func (discard) Warn(string)         {}
func (discard) Error(string)        {}
func (discard) IsDebugEnabled() bool { return false }

// At returns a function logging at the given level through l
func At(l Log, level Level) func(string) {
	switch level {
	case LevelDebug:
		return l.Debug
	case LevelWarn:
		return l.Warn
	case LevelError:
		return l.Error
	default:
		return l.Info
	}
}
