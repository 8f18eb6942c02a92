package slogobs

import (
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is one line per record with JSON attributes:
	// 2026-10-19 10:40:35 DEBUG element matched → {"element.tag":"card"}
	FormatCompact Format = "compact"

	// FormatJSON is one JSON object per record:
	// {"time":"2026-10-19T10:40:35","level":"DEBUG","msg":"element matched","element.tag":"card"}
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown names yield FormatCompact.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv reads SPANSEEK_LOG_FORMAT, then LOG_FORMAT.
func GetFormatFromEnv() Format {
	if format := os.Getenv("SPANSEEK_LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	return FormatCompact
}

func (f Format) String() string {
	return string(f)
}
