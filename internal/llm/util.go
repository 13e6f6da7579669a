// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// CleanJSONBlock extracts the JSON payload from an LLM response.
// LLMs often wrap JSON in ```json ... ``` blocks, prepend conversational
// preamble, or append trailing commentary even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
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
		return strings.TrimSpace(text)
	}

	// No fences: strip preamble/trailing commentary around the first
	// balanced JSON object or array.
	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")

	if objStart >= 0 && (arrStart < 0 || objStart < arrStart) {
		if extracted := extractJSONObject(text[objStart:]); extracted != "" {
			return extracted
		}
	}
	if arrStart >= 0 {
		if extracted := extractJSONArray(text[arrStart:]); extracted != "" {
			return extracted
		}
	}

	return text
}

// StripTrailingCommas removes commas that directly precede a closing brace
// or bracket, a common malformation in LLM-generated JSON.
func StripTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}

// extractJSONObject returns the first balanced {...} object at the start of
// text, respecting string literals and escapes. Returns "" if unbalanced.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the first balanced [...] array at the start of
// text. Returns "" if unbalanced.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Skip structural characters inside strings
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
