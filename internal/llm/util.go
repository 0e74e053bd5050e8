// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock recovers the JSON payload from a model response. LLMs wrap
// JSON in ```json ... ``` blocks or surround it with conversational text even
// when instructed not to; both wrappers are stripped. When no complete JSON
// value can be found the (trimmed) input is returned unchanged so callers
// surface the unmarshal error.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		// Handle generic ``` ... ``` blocks
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Strip preamble and trailing commentary around the first complete
	// JSON object or array.
	if start := strings.IndexAny(text, "{["); start >= 0 {
		var value string
		if text[start] == '{' {
			value = extractJSONObject(text[start:])
		} else {
			value = extractJSONArray(text[start:])
		}
		if value != "" {
			return value
		}
	}

	return text
}

// extractJSONObject returns the first complete JSON object in text, or ""
// when text does not start with one. Braces inside string literals are
// ignored while matching.
func extractJSONObject(text string) string {
	return extractDelimited(text, '{', '}')
}

// extractJSONArray returns the first complete JSON array in text, or ""
// when text does not start with one.
func extractJSONArray(text string) string {
	return extractDelimited(text, '[', ']')
}

func extractDelimited(text string, open, closing byte) string {
	text = strings.TrimSpace(text)
	if text == "" || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
