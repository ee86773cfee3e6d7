package parsers

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/reposniff/reposniff/internal/models"
)

// CargoParser parses Cargo.toml manifests.
type CargoParser struct{}

// cargoManifest mirrors the sections of Cargo.toml we read. Dependency
// values are either a bare version string or a detail table.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies      map[string]interface{} `toml:"dependencies"`
	DevDependencies   map[string]interface{} `toml:"dev-dependencies"`
	BuildDependencies map[string]interface{} `toml:"build-dependencies"`
}

// Parse extracts dependencies from Cargo.toml content.
func (p *CargoParser) Parse(path string, content []byte) ([]models.Dependency, error) {
	var manifest cargoManifest
	if err := toml.Unmarshal(content, &manifest); err != nil {
		return nil, parseError(path, err.Error())
	}

	var deps []models.Dependency
	deps = append(deps, cargoSection(manifest.Dependencies, models.KindRuntime)...)
	deps = append(deps, cargoSection(manifest.DevDependencies, models.KindDev)...)
	deps = append(deps, cargoSection(manifest.BuildDependencies, models.KindBuild)...)
	return deps, nil
}

func cargoSection(section map[string]interface{}, kind models.DependencyKind) []models.Dependency {
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]models.Dependency, 0, len(section))
	for _, name := range names {
		deps = append(deps, cargoDependency(name, section[name], kind))
	}
	return deps
}

func cargoDependency(name string, value interface{}, kind models.DependencyKind) models.Dependency {
	dep := models.Dependency{Name: name, Kind: kind, Manager: models.Cargo}

	switch v := value.(type) {
	case string:
		dep.Requirement = v
	case map[string]interface{}:
		if ver, ok := v["version"].(string); ok {
			dep.Requirement = ver
		}
		if git, ok := v["git"].(string); ok {
			dep.Meta.GitURL = git
		}
		if p, ok := v["path"].(string); ok {
			dep.Meta.Path = p
		}
		if ws, ok := v["workspace"].(bool); ok && ws {
			dep.Meta.Workspace = true
		}
		if reg, ok := v["registry"].(string); ok {
			dep.Meta.Registry = reg
		}
		// `serde_v1 = { package = "serde", ... }`: the table key is the
		// local alias, `package` names the real crate.
		if real, ok := v["package"].(string); ok {
			dep.Meta.AliasOf = real
		}
		if opt, ok := v["optional"].(bool); ok && opt {
			dep.Kind = models.KindOptional
		}
		if features, ok := v["features"].([]interface{}); ok {
			for _, f := range features {
				if s, ok := f.(string); ok {
					dep.Meta.Features = append(dep.Meta.Features, s)
				}
			}
		}
	}
	return dep
}
