package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel parses DEBUG, INFO, WARN, WARNING or ERROR, case-insensitively.
// Anything else yields INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogLevelFromEnv reads SPANSEEK_LOG_LEVEL, then LOG_LEVEL. Default INFO.
func GetLogLevelFromEnv() slog.Level {
	level := os.Getenv("SPANSEEK_LOG_LEVEL")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return ParseLogLevel(level)
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}
