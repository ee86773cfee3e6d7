package reporter

import (
	"encoding/json"

	"github.com/reposniff/reposniff/internal/sniffer"
)

// JSONReporter outputs the analysis result in JSON format
type JSONReporter struct{}

// Report marshals the result. The structure serializes directly so the
// JSON shape tracks the models.
func (r *JSONReporter) Report(result *sniffer.Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
