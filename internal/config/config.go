// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"` // Path to resume file (txt/pdf/docx/html)
	Job    string `json:"job,omitempty"`    // Path to job description text file

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Output      string `json:"output,omitempty"`       // Path to write the enhanced resume text

	// Matching thresholds. The numeric values are empirical tuning
	// constants, not correctness requirements.
	DedupThreshold     float64 `json:"dedup_threshold,omitempty"`     // Keyword clustering similarity cutoff
	MatchThreshold     float64 `json:"match_threshold,omitempty"`     // Bullet-keyword similarity cutoff
	SkillThreshold     float64 `json:"skill_threshold,omitempty"`     // Near-duplicate cutoff vs declared skills
	CategoryConfidence float64 `json:"category_confidence,omitempty"` // Below this, categorization asks the model
	RelevanceThreshold float64 `json:"relevance_threshold,omitempty"` // Minimum relevance for skill candidates

	// Limits
	MaxPerBullet   int `json:"max_per_bullet,omitempty"`   // Keywords offered per bullet
	MaxKeywordUses int `json:"max_keyword_uses,omitempty"` // Per-resume budget for one keyword
	SkillLimit     int `json:"skill_limit,omitempty"`      // Global cap on selected skills
	Concurrency    int `json:"concurrency,omitempty"`      // Bound on parallel outbound calls
}

// Defaults returns the default configuration values.
func Defaults() Config {
	return Config{
		DedupThreshold:     0.92,
		MatchThreshold:     0.75,
		SkillThreshold:     0.85,
		CategoryConfidence: 0.6,
		RelevanceThreshold: 0.5,
		MaxPerBullet:       3,
		MaxKeywordUses:     2,
		SkillLimit:         25,
		Concurrency:        4,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"dedup_threshold":     c.DedupThreshold,
		"match_threshold":     c.MatchThreshold,
		"skill_threshold":     c.SkillThreshold,
		"category_confidence": c.CategoryConfidence,
		"relevance_threshold": c.RelevanceThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("config error: '%s' must be between 0 and 1", name)
		}
	}

	if c.MaxPerBullet < 0 {
		return fmt.Errorf("config error: 'max_per_bullet' must be non-negative")
	}
	if c.MaxKeywordUses < 0 {
		return fmt.Errorf("config error: 'max_keyword_uses' must be non-negative")
	}
	if c.SkillLimit < 0 {
		return fmt.Errorf("config error: 'skill_limit' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	if result.DedupThreshold == 0 {
		result.DedupThreshold = defaults.DedupThreshold
	}
	if result.MatchThreshold == 0 {
		result.MatchThreshold = defaults.MatchThreshold
	}
	if result.SkillThreshold == 0 {
		result.SkillThreshold = defaults.SkillThreshold
	}
	if result.CategoryConfidence == 0 {
		result.CategoryConfidence = defaults.CategoryConfidence
	}
	if result.RelevanceThreshold == 0 {
		result.RelevanceThreshold = defaults.RelevanceThreshold
	}

	if result.MaxPerBullet == 0 {
		result.MaxPerBullet = defaults.MaxPerBullet
	}
	if result.MaxKeywordUses == 0 {
		result.MaxKeywordUses = defaults.MaxKeywordUses
	}
	if result.SkillLimit == 0 {
		result.SkillLimit = defaults.SkillLimit
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	if defaults.Verbose {
		result.Verbose = true
	}

	return result
}
