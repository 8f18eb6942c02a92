package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultPreviewLength is used by [Preview] when maxLen is not positive.
const DefaultPreviewLength = 80

// JSONToString serialises object to JSON, indented with two spaces when
// indent is true. A marshalling failure is rendered as a JSON error object so
// the result is always printable.
func JSONToString(object any, indent ...bool) string {
	var encoded []byte
	var err error
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(object, "", "  ")
	} else {
		encoded, err = json.Marshal(object)
	}
	if err != nil {
		return JSONToString(map[string]string{"error": "failed to marshal to JSON: " + err.Error()})
	}
	return string(encoded)
}

// Preview collapses runs of whitespace in s to single spaces and cuts the
// result to at most maxLen runes, marking the cut with "…" and the original
// byte length.
func Preview(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultPreviewLength
	}
	flat := strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(flat) <= maxLen {
		return flat
	}

	cut := 0
	for i := range flat {
		if maxLen == 0 {
			cut = i
			break
		}
		maxLen--
	}
	return fmt.Sprintf("%s… (%d bytes)", flat[:cut], len(s))
}
