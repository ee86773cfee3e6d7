package parsers

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/reposniff/reposniff/internal/models"
)

// PythonParser parses pyproject.toml (PEP 621 and poetry tables) and
// requirements.txt. Manager identifies the refined variant (pip,
// poetry, pdm, uv).
type PythonParser struct {
	Manager models.PackageManager
}

type pyproject struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	DependencyGroups map[string][]interface{} `toml:"dependency-groups"`
	Tool             struct {
		Poetry struct {
			Dependencies map[string]interface{} `toml:"dependencies"`
			Group        map[string]struct {
				Dependencies map[string]interface{} `toml:"dependencies"`
			} `toml:"group"`
			DevDependencies map[string]interface{} `toml:"dev-dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Parse dispatches on the manifest filename.
func (p *PythonParser) Parse(path string, content []byte) ([]models.Dependency, error) {
	if filepath.Base(path) == "requirements.txt" {
		return p.parseRequirements(content), nil
	}
	return p.parsePyproject(path, content)
}

func (p *PythonParser) parsePyproject(path string, content []byte) ([]models.Dependency, error) {
	var manifest pyproject
	if err := toml.Unmarshal(content, &manifest); err != nil {
		return nil, parseError(path, err.Error())
	}

	var deps []models.Dependency
	for _, spec := range manifest.Project.Dependencies {
		deps = append(deps, p.fromSpecifier(spec, models.KindRuntime))
	}

	for _, extra := range sortedKeys(manifest.Project.OptionalDependencies) {
		for _, spec := range manifest.Project.OptionalDependencies[extra] {
			dep := p.fromSpecifier(spec, models.KindOptional)
			dep.Meta.Features = []string{extra}
			deps = append(deps, dep)
		}
	}

	// PEP 735 dependency groups hold dev tooling. Entries are either
	// specifier strings or {include-group} tables.
	for _, group := range sortedKeys(manifest.DependencyGroups) {
		for _, entry := range manifest.DependencyGroups[group] {
			if spec, ok := entry.(string); ok {
				deps = append(deps, p.fromSpecifier(spec, models.KindDev))
			}
		}
	}

	deps = append(deps, p.poetrySection(manifest.Tool.Poetry.Dependencies, models.KindRuntime)...)
	deps = append(deps, p.poetrySection(manifest.Tool.Poetry.DevDependencies, models.KindDev)...)
	for _, group := range sortedKeys(manifest.Tool.Poetry.Group) {
		kind := models.KindDev
		if group == "main" {
			kind = models.KindRuntime
		}
		deps = append(deps, p.poetrySection(manifest.Tool.Poetry.Group[group].Dependencies, kind)...)
	}
	return deps, nil
}

// pySpecRe splits "requests[security]>=2.28,<3" into name, extras, and
// constraint. Environment markers after ";" are dropped.
var pySpecRe = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(\[[^\]]*\])?\s*(.*)$`)

func (p *PythonParser) fromSpecifier(spec string, kind models.DependencyKind) models.Dependency {
	if i := strings.Index(spec, ";"); i >= 0 {
		spec = spec[:i]
	}
	spec = strings.TrimSpace(spec)

	dep := models.Dependency{Kind: kind, Manager: p.Manager}
	m := pySpecRe.FindStringSubmatch(spec)
	if m == nil {
		dep.Name = spec
		return dep
	}
	dep.Name = m[1]
	if extras := strings.Trim(m[2], "[]"); extras != "" {
		for _, e := range strings.Split(extras, ",") {
			dep.Meta.Features = append(dep.Meta.Features, strings.TrimSpace(e))
		}
	}
	dep.Requirement = strings.TrimSpace(m[3])
	return dep
}

func (p *PythonParser) poetrySection(section map[string]interface{}, kind models.DependencyKind) []models.Dependency {
	var deps []models.Dependency
	for _, name := range sortedKeys(section) {
		if name == "python" {
			continue // interpreter constraint, not a package
		}
		dep := models.Dependency{Name: name, Kind: kind, Manager: p.Manager}
		switch v := section[name].(type) {
		case string:
			dep.Requirement = v
		case map[string]interface{}:
			if ver, ok := v["version"].(string); ok {
				dep.Requirement = ver
			}
			if git, ok := v["git"].(string); ok {
				dep.Meta.GitURL = git
			}
			if path, ok := v["path"].(string); ok {
				dep.Meta.Path = path
			}
			if opt, ok := v["optional"].(bool); ok && opt {
				dep.Kind = models.KindOptional
			}
			if extras, ok := v["extras"].([]interface{}); ok {
				for _, e := range extras {
					if s, ok := e.(string); ok {
						dep.Meta.Features = append(dep.Meta.Features, s)
					}
				}
			}
		}
		deps = append(deps, dep)
	}
	return deps
}

// parseRequirements reads a requirements.txt line by line. Comment
// lines, blank lines, pip flags, and non-package references (URLs,
// editable installs, nested -r includes) are skipped.
func (p *PythonParser) parseRequirements(content []byte) []models.Dependency {
	var deps []models.Dependency
	for _, line := range strings.Split(string(content), "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") || strings.Contains(line, "://") {
			continue
		}
		deps = append(deps, p.fromSpecifier(line, models.KindRuntime))
	}
	return deps
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
