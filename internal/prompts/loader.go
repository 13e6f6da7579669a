// Package prompts loads the LLM prompt templates compiled into the binary.
// Each embedded JSON file maps prompt keys to template strings with
// {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

// Parsed files are cached; the embedded contents never change at runtime.
var (
	mu     sync.RWMutex
	parsed = make(map[string]map[string]string)
)

// Get returns the prompt stored under key in the given file, e.g.
// Get("parsing.json", "parse-resume").
func Get(filename, key string) (string, error) {
	prompts, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts required at initialization time; it panics
// when the file or key is missing.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching entry are left in place.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, fmt.Sprintf("{{.%s}}", key), value)
	}
	return out
}

func load(filename string) (map[string]string, error) {
	mu.RLock()
	prompts, ok := parsed[filename]
	mu.RUnlock()
	if ok {
		return prompts, nil
	}

	data, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	mu.Lock()
	parsed[filename] = prompts
	mu.Unlock()
	return prompts, nil
}
