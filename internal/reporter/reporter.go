// Package reporter renders analysis results for output.
package reporter

import "github.com/reposniff/reposniff/internal/sniffer"

// Reporter is the interface for output formatters
type Reporter interface {
	// Report renders the analysis result.
	Report(result *sniffer.Result) ([]byte, error)
}

// Get returns a reporter for the specified format
func Get(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	default:
		return &TerminalReporter{}
	}
}
