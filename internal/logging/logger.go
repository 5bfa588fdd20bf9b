// Package logging тонкий фасад над logrus с printf-стилем и логгерами
// по компонентам.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) logrus() logrus.Level {
	switch l {
	case TRACE:
		return logrus.TraceLevel
	case DEBUG:
		return logrus.DebugLevel
	case WARN:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ParseLevel разбирает уровень из строки ("debug", "INFO", ...).
// Неизвестное значение даёт INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Options настройки логгера по умолчанию
type Options struct {
	Level  string // trace|debug|info|warn|error, иначе LOG_LEVEL
	Format string // text|json, иначе LOG_FORMAT
	Dir    string // каталог для файла логов; пусто - только stdout
}

// Logger логгер компонента
type Logger struct {
	component string
	base      *logrus.Logger
	entry     *logrus.Entry
	file      *os.File
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = newLogger("", logrus.New(), nil)
)

func newLogger(component string, base *logrus.Logger, file *os.File) *Logger {
	entry := logrus.NewEntry(base)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return &Logger{component: component, base: base, entry: entry, file: file}
}

// NewLogger создаёт логгер компонента с выводом и форматом логгера по умолчанию
func NewLogger(component string) (*Logger, error) {
	if component == "" {
		return nil, fmt.Errorf("component name is empty")
	}
	def := Default()

	base := logrus.New()
	base.SetOutput(def.base.Out)
	base.SetFormatter(def.base.Formatter)
	base.SetLevel(def.base.GetLevel())
	return newLogger(component, base, nil), nil
}

// InitDefaultLogger настраивает логгер по умолчанию
func InitDefaultLogger(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}

	base := logrus.New()
	base.SetLevel(ParseLevel(level).logrus())
	if strings.ToLower(format) == "json" {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	var file *os.File
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return fmt.Errorf("ошибка создания директории %s: %w", opts.Dir, err)
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		filename := filepath.Join(opts.Dir, fmt.Sprintf("levelgen_%s.log", timestamp))

		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("ошибка создания файла логов: %w", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}
	base.SetOutput(out)

	defaultMu.Lock()
	prev := defaultLogger
	defaultLogger = newLogger("", base, file)
	defaultMu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// CloseDefaultLogger закрывает файл логгера по умолчанию
func CloseDefaultLogger() {
	_ = Default().Close()
	_ = GetLoggerManager().CloseAll()
}

// Default логгер по умолчанию
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetOutput перенаправляет вывод логгера по умолчанию (используется в тестах)
func SetOutput(w io.Writer) {
	Default().base.SetOutput(w)
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Component имя компонента
func (l *Logger) Component() string { return l.component }

// SetLevel меняет минимальный уровень
func (l *Logger) SetLevel(level LogLevel) { l.base.SetLevel(level.logrus()) }

// Level текущий минимальный уровень
func (l *Logger) Level() LogLevel {
	switch l.base.GetLevel() {
	case logrus.TraceLevel:
		return TRACE
	case logrus.DebugLevel:
		return DEBUG
	case logrus.WarnLevel:
		return WARN
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return ERROR
	default:
		return INFO
	}
}

// WithField возвращает логгер с дополнительным полем
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{component: l.component, base: l.base, entry: l.entry.WithField(key, value)}
}

func (l *Logger) Trace(format string, args ...interface{}) { l.entry.Tracef(format, args...) }

func (l *Logger) Debug(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l *Logger) Info(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *Logger) Warn(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *Logger) Error(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Trace логирует сообщение уровня TRACE
func Trace(format string, args ...interface{}) { Default().Trace(format, args...) }

// Debug логирует сообщение уровня DEBUG
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }

// Info логирует сообщение уровня INFO
func Info(format string, args ...interface{}) { Default().Info(format, args...) }

// Warn логирует сообщение уровня WARN
func Warn(format string, args ...interface{}) { Default().Warn(format, args...) }

// Error логирует сообщение уровня ERROR
func Error(format string, args ...interface{}) { Default().Error(format, args...) }
