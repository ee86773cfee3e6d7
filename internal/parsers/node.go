package parsers

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/reposniff/reposniff/internal/models"
)

// NodeParser parses package.json. Manager identifies the refined
// variant (npm, pnpm, yarn, bun) stamped on every dependency.
type NodeParser struct {
	Manager models.PackageManager
}

type packageJSON struct {
	Name                 string            `json:"name"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// Parse extracts dependencies from package.json content.
func (p *NodeParser) Parse(path string, content []byte) ([]models.Dependency, error) {
	var pkg packageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, parseError(path, err.Error())
	}

	var deps []models.Dependency
	deps = append(deps, p.section(pkg.Dependencies, models.KindRuntime)...)
	deps = append(deps, p.section(pkg.DevDependencies, models.KindDev)...)
	deps = append(deps, p.section(pkg.PeerDependencies, models.KindPeer)...)
	deps = append(deps, p.section(pkg.OptionalDependencies, models.KindOptional)...)
	return deps, nil
}

func (p *NodeParser) section(section map[string]string, kind models.DependencyKind) []models.Dependency {
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]models.Dependency, 0, len(section))
	for _, name := range names {
		deps = append(deps, p.dependency(name, section[name], kind))
	}
	return deps
}

func (p *NodeParser) dependency(name, spec string, kind models.DependencyKind) models.Dependency {
	dep := models.Dependency{Name: name, Kind: kind, Manager: p.Manager, Requirement: spec}

	switch {
	case strings.HasPrefix(spec, "workspace:"):
		dep.Meta.Workspace = true
		dep.Requirement = strings.TrimPrefix(spec, "workspace:")
	case strings.HasPrefix(spec, "npm:"):
		// "alias": "npm:real-pkg@^1.0.0"
		rest := strings.TrimPrefix(spec, "npm:")
		if at := strings.LastIndex(rest, "@"); at > 0 {
			dep.Meta.AliasOf = rest[:at]
			dep.Requirement = rest[at+1:]
		} else {
			dep.Meta.AliasOf = rest
			dep.Requirement = "*"
		}
	case strings.HasPrefix(spec, "file:") || strings.HasPrefix(spec, "link:"):
		dep.Meta.Path = spec[strings.Index(spec, ":")+1:]
	case isNodeGitSpec(spec):
		dep.Meta.GitURL = spec
	}
	return dep
}

func isNodeGitSpec(spec string) bool {
	for _, prefix := range []string{"git://", "git+ssh://", "git+https://", "github:", "gitlab:", "bitbucket:"} {
		if strings.HasPrefix(spec, prefix) {
			return true
		}
	}
	// Bare "owner/repo" github shorthand.
	return strings.Count(spec, "/") == 1 && !strings.ContainsAny(spec, "<>=^~*")
}
