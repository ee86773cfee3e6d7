package parsers

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/reposniff/reposniff/internal/models"
)

// ComposerParser parses composer.json manifests.
type ComposerParser struct{}

type composerJSON struct {
	Name       string            `json:"name"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

// Parse extracts dependencies from composer.json content. Platform
// requirements (php, ext-*, lib-*) are not packages and are skipped.
func (p *ComposerParser) Parse(path string, content []byte) ([]models.Dependency, error) {
	var manifest composerJSON
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, parseError(path, err.Error())
	}

	var deps []models.Dependency
	deps = append(deps, composerSection(manifest.Require, models.KindRuntime)...)
	deps = append(deps, composerSection(manifest.RequireDev, models.KindDev)...)
	return deps, nil
}

func composerSection(section map[string]string, kind models.DependencyKind) []models.Dependency {
	names := make([]string, 0, len(section))
	for name := range section {
		if isPlatformRequirement(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]models.Dependency, 0, len(names))
	for _, name := range names {
		deps = append(deps, models.Dependency{
			Name:        name,
			Kind:        kind,
			Manager:     models.Composer,
			Requirement: section[name],
		})
	}
	return deps
}

func isPlatformRequirement(name string) bool {
	return name == "php" ||
		strings.HasPrefix(name, "ext-") ||
		strings.HasPrefix(name, "lib-")
}
