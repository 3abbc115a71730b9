package libpack_logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LEVEL_DEBUG = iota
	LEVEL_INFO
	LEVEL_WARN
	LEVEL_ERROR
	LEVEL_FATAL
)

const defaultMinLevel = LEVEL_INFO

var LevelNames = map[int]string{
	LEVEL_DEBUG: "debug",
	LEVEL_INFO:  "info",
	LEVEL_WARN:  "warn",
	LEVEL_ERROR: "error",
	LEVEL_FATAL: "fatal",
}

// zerolog levels share the ordering of the LEVEL_* constants.
var zerologLevels = map[int]zerolog.Level{
	LEVEL_DEBUG: zerolog.DebugLevel,
	LEVEL_INFO:  zerolog.InfoLevel,
	LEVEL_WARN:  zerolog.WarnLevel,
	LEVEL_ERROR: zerolog.ErrorLevel,
	LEVEL_FATAL: zerolog.FatalLevel,
}

type LogMessage struct {
	Pairs   map[string]any
	Message string
}

func (m *LogMessage) String() string {
	return m.Message
}

type Logger struct {
	output      io.Writer
	zl          zerolog.Logger
	mu          sync.RWMutex
	minLogLevel int
	showCaller  bool
}

func New() *Logger {
	l := &Logger{
		output:      os.Stdout,
		minLogLevel: defaultMinLevel,
	}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	l.zl = zerolog.New(l.output).With().Timestamp().Logger()
}

func (l *Logger) SetOutput(output io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = output
	l.rebuild()
	return l
}

func (l *Logger) SetMinLogLevel(level int) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := LevelNames[level]; !ok {
		level = defaultMinLevel
	}
	l.minLogLevel = level
	return l
}

func (l *Logger) SetShowCaller(show bool) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showCaller = show
	return l
}

// GetLogLevel maps a LOG_LEVEL style string onto a LEVEL_* constant.
func GetLogLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LEVEL_DEBUG
	case "info":
		return LEVEL_INFO
	case "warn", "warning":
		return LEVEL_WARN
	case "error":
		return LEVEL_ERROR
	case "fatal", "critical":
		return LEVEL_FATAL
	default:
		return defaultMinLevel
	}
}

func (l *Logger) shouldLog(level int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.minLogLevel
}

func (l *Logger) log(level int, m *LogMessage) {
	if m == nil || !l.shouldLog(level) {
		return
	}

	l.mu.RLock()
	zl := l.zl
	showCaller := l.showCaller
	l.mu.RUnlock()

	event := zl.WithLevel(zerologLevels[level])
	if showCaller {
		event.Str("caller", getCaller(3))
	}
	for k, val := range m.Pairs {
		switch v := val.(type) {
		case string:
			event.Str(k, v)
		case int:
			event.Int(k, v)
		case int64:
			event.Int64(k, v)
		case float64:
			event.Float64(k, v)
		case bool:
			event.Bool(k, v)
		case error:
			event.Str(k, v.Error())
		default:
			event.Interface(k, v)
		}
	}
	event.Msg(m.Message)
}

func getCaller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func (l *Logger) Debug(m *LogMessage) {
	l.log(LEVEL_DEBUG, m)
}

func (l *Logger) Info(m *LogMessage) {
	l.log(LEVEL_INFO, m)
}

func (l *Logger) Warn(m *LogMessage) {
	l.log(LEVEL_WARN, m)
}

// alias Warning to Warn
func (l *Logger) Warning(m *LogMessage) {
	l.log(LEVEL_WARN, m)
}

func (l *Logger) Error(m *LogMessage) {
	l.log(LEVEL_ERROR, m)
}

// Fatal logs at fatal level. It does not exit the process.
func (l *Logger) Fatal(m *LogMessage) {
	l.log(LEVEL_FATAL, m)
}

// alias Critical to Fatal
func (l *Logger) Critical(m *LogMessage) {
	l.log(LEVEL_FATAL, m)
}
