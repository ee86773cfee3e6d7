package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/reposniff/reposniff/internal/models"
)

const osvQueryURL = "https://api.osv.dev/v1/query"

// AdvisoryClient queries the OSV vulnerability database.
type AdvisoryClient struct {
	http *retryablehttp.Client
}

// NewAdvisoryClient creates an OSV advisory client.
func NewAdvisoryClient(opts Options) *AdvisoryClient {
	return &AdvisoryClient{http: newHTTPClient(opts)}
}

// osvEcosystem maps a package manager family to OSV's ecosystem label.
func osvEcosystem(pm models.PackageManager) string {
	switch pm.Family() {
	case models.Cargo:
		return "crates.io"
	case models.Npm:
		return "npm"
	case models.Pip:
		return "PyPI"
	case models.Bundler:
		return "RubyGems"
	case models.Composer:
		return "Packagist"
	case models.GoMod:
		return "Go"
	case models.Maven:
		return "Maven"
	}
	return ""
}

type osvQuery struct {
	Package struct {
		Name      string `json:"name"`
		Ecosystem string `json:"ecosystem"`
	} `json:"package"`
	Version string `json:"version,omitempty"`
}

type osvResponse struct {
	Vulns []struct {
		ID               string `json:"id"`
		Summary          string `json:"summary"`
		DatabaseSpecific struct {
			Severity string `json:"severity"`
		} `json:"database_specific"`
		References []struct {
			Type string `json:"type"`
			URL  string `json:"url"`
		} `json:"references"`
		Affected []struct {
			Ranges []struct {
				Events []struct {
					Fixed string `json:"fixed"`
				} `json:"events"`
			} `json:"ranges"`
		} `json:"affected"`
	} `json:"vulns"`
}

// Advisories returns published vulnerabilities affecting the
// dependency's resolved version. A dependency without a resolved
// version, or from an ecosystem OSV does not index, yields none.
func (c *AdvisoryClient) Advisories(ctx context.Context, dep models.Dependency) ([]models.SecurityAdvisory, error) {
	eco := osvEcosystem(dep.Manager)
	if eco == "" || dep.ResolvedVersion == "" {
		return nil, nil
	}

	var query osvQuery
	query.Package.Name = dep.Name
	query.Package.Ecosystem = eco
	query.Version = dep.ResolvedVersion

	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, osvQueryURL, bytes.NewReader(body))
	if err != nil {
		return nil, &models.RegistryError{Registry: osvQueryURL, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.RegistryError{Registry: osvQueryURL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.RegistryError{Registry: osvQueryURL, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed osvResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &models.RegistryError{Registry: osvQueryURL, Message: err.Error()}
	}

	advisories := make([]models.SecurityAdvisory, 0, len(parsed.Vulns))
	for _, v := range parsed.Vulns {
		adv := models.SecurityAdvisory{
			ID:       v.ID,
			Title:    v.Summary,
			Severity: parseSeverity(v.DatabaseSpecific.Severity),
		}
		for _, ref := range v.References {
			if ref.Type == "ADVISORY" {
				adv.URL = ref.URL
				break
			}
		}
		for _, aff := range v.Affected {
			for _, r := range aff.Ranges {
				for _, e := range r.Events {
					if e.Fixed != "" {
						adv.PatchedVersions = e.Fixed
					}
				}
			}
		}
		advisories = append(advisories, adv)
	}
	return advisories, nil
}

func parseSeverity(s string) models.AdvisorySeverity {
	switch strings.ToUpper(s) {
	case "LOW":
		return models.SeverityLow
	case "MODERATE", "MEDIUM":
		return models.SeverityModerate
	case "HIGH":
		return models.SeverityHigh
	case "CRITICAL":
		return models.SeverityCritical
	}
	return models.SeverityUnknown
}
