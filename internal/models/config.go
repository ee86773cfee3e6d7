package models

import "time"

// Config holds configuration for an analysis run.
type Config struct {
	// Root directory to analyze.
	Root string

	// Output settings
	OutputFormat string // "terminal", "json"
	OutputFile   string // Optional output file path

	// Behavior settings
	Enrich  bool // Query registries for latest versions and advisories
	DeepGit bool // List remote branches and HEAD containment per remote

	// Cache settings
	CacheTTL time.Duration
	NoCache  bool

	// Network settings
	Timeout       time.Duration // Per registry request, shorter than the run
	MaxConcurrent int           // Fan-out cap across registry requests
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Root:          ".",
		OutputFormat:  "terminal",
		Enrich:        false,
		DeepGit:       false,
		CacheTTL:      24 * time.Hour,
		Timeout:       15 * time.Second,
		MaxConcurrent: 8,
	}
}
