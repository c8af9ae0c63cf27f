package utils

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode    bool
	SilentMode   bool
	CurrentLevel LogLevel = LevelWarn
	// ShowRaylibInfo lets raylib's INFO chatter through at WARN level.
	ShowRaylibInfo bool
	ShowDebugUI    bool
)

const ansiReset = "\033[0m"

// levelStyles holds the flag name and ANSI color of each level.
var levelStyles = [...]struct {
	name  string
	color string
}{
	LevelDebug: {"DEBUG", "\033[36m"},
	LevelInfo:  {"INFO", "\033[34m"},
	LevelWarn:  {"WARN", "\033[33m"},
	LevelError: {"ERROR", "\033[31m"},
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelStyles[l].name
}

// ParseLevel maps a -log-level flag value to a LogLevel. Unknown names keep WARN.
func ParseLevel(name string) LogLevel {
	name = strings.ToUpper(strings.TrimSpace(name))
	for l, style := range levelStyles {
		if style.name == name {
			return LogLevel(l)
		}
	}
	return LevelWarn
}

// SetOutput redirects log lines, e.g. away from a terminal owned by tcell.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// logf prints one line prefixed with the colored level and an optional
// source tag such as RAYLIB.
func logf(level LogLevel, tag, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	style := levelStyles[level]
	prefix := fmt.Sprintf("%s[%s]%s ", style.color, style.name, ansiReset)
	if tag != "" {
		prefix += "\033[35m[" + tag + "]" + ansiReset + " "
	}
	log.Printf(prefix+format, v...)
}

func Info(format string, v ...interface{})  { logf(LevelInfo, "", format, v...) }
func Debug(format string, v ...interface{}) { logf(LevelDebug, "", format, v...) }
func Warn(format string, v ...interface{})  { logf(LevelWarn, "", format, v...) }
func Error(format string, v ...interface{}) { logf(LevelError, "", format, v...) }

// raylibLevel maps raylib's TraceLogLevel (LOG_TRACE = 1 .. LOG_FATAL = 6)
// onto ours.
func raylibLevel(level int) (LogLevel, bool) {
	switch {
	case level == 1 || level == 2:
		return LevelDebug, true
	case level == 3 && ShowRaylibInfo:
		return LevelWarn, true
	case level == 3:
		return LevelInfo, true
	case level == 4:
		return LevelWarn, true
	case level == 5 || level == 6:
		return LevelError, true
	}
	return 0, false
}

// RaylibLogCallback forwards raylib trace logs into the leveled logger.
func RaylibLogCallback(level int, text string) {
	if l, ok := raylibLevel(level); ok {
		logf(l, "RAYLIB", "%s", text)
	}
}
