package detect

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/reposniff/reposniff/internal/models"
)

// monorepoCheck probes for one workspace tooling at the root and
// returns its declared package patterns. ok is false when the marker is
// absent or lacks the required field.
type monorepoCheck struct {
	tool  models.MonorepoTool
	probe func(root string) (patterns []string, ok bool)
}

// Checks run in priority order: the first hit becomes the primary tool,
// but every tooling present is still enumerated, so a Cargo workspace
// embedding an npm workspace reports both.
var monorepoChecks = []monorepoCheck{
	{models.CargoWorkspace, probeCargoWorkspace},
	{models.NpmWorkspaces, probeNpmWorkspaces},
	{models.PnpmWorkspaces, probePnpmWorkspace},
	{models.Nx, probeMarkerFile("nx.json")},
	{models.Turborepo, probeMarkerFile("turbo.json")},
	{models.Lerna, probeLerna},
	{models.MavenModules, probeMavenModules},
	{models.GradleModules, probeGradleModules},
	{models.GoWorkspace, probeGoWork},
}

// Monorepo detects workspace structure at root. A workspace whose
// declared globs match nothing on disk still reports IsMonorepo=true
// with an empty package list: that signals misconfiguration, not the
// absence of a workspace.
func Monorepo(root string) (*models.MonorepoInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info := &models.MonorepoInfo{Root: absRoot, Packages: []models.PackageLocation{}}
	seen := make(map[string]bool)
	for _, check := range monorepoChecks {
		patterns, ok := check.probe(absRoot)
		if !ok {
			continue
		}
		info.IsMonorepo = true
		info.Tools = append(info.Tools, check.tool)
		for _, loc := range expandPatterns(absRoot, patterns) {
			if !seen[loc.Path] {
				seen[loc.Path] = true
				info.Packages = append(info.Packages, loc)
			}
		}
	}
	if len(info.Tools) > 0 {
		info.Tool = info.Tools[0]
	}
	sort.Slice(info.Packages, func(i, j int) bool {
		return info.Packages[i].Path < info.Packages[j].Path
	})
	return info, nil
}

func probeCargoWorkspace(root string) ([]string, bool) {
	var manifest struct {
		Workspace struct {
			Members []string `toml:"members"`
		} `toml:"workspace"`
	}
	data, err := os.ReadFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return nil, false
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, false
	}
	if len(manifest.Workspace.Members) == 0 {
		return nil, false
	}
	return manifest.Workspace.Members, true
}

func probeNpmWorkspaces(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, false
	}
	// "workspaces" is either an array of globs or an object with a
	// "packages" array (yarn's long form).
	var pkg struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil || len(pkg.Workspaces) == 0 {
		return nil, false
	}
	var globs []string
	if err := json.Unmarshal(pkg.Workspaces, &globs); err == nil {
		return globs, len(globs) > 0
	}
	var long struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(pkg.Workspaces, &long); err == nil {
		return long.Packages, len(long.Packages) > 0
	}
	return nil, false
}

func probePnpmWorkspace(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		return nil, false
	}
	var ws struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, false
	}
	return ws.Packages, len(ws.Packages) > 0
}

func probeLerna(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "lerna.json"))
	if err != nil {
		return nil, false
	}
	var cfg struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true // marker exists, config unreadable
	}
	return cfg.Packages, true
}

func probeMarkerFile(name string) func(string) ([]string, bool) {
	return func(root string) ([]string, bool) {
		// Marker-only tools delegate package enumeration to their
		// underlying npm/pnpm workspace config.
		return nil, fileExists(filepath.Join(root, name))
	}
}

func probeMavenModules(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "pom.xml"))
	if err != nil {
		return nil, false
	}
	var pom struct {
		Modules struct {
			Module []string `xml:"module"`
		} `xml:"modules"`
	}
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, false
	}
	return pom.Modules.Module, len(pom.Modules.Module) > 0
}

var gradleIncludeRe = regexp.MustCompile(`include\s*\(?\s*['"]([^'"]+)['"]`)

func probeGradleModules(root string) ([]string, bool) {
	for _, name := range []string{"settings.gradle", "settings.gradle.kts"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		var modules []string
		for _, m := range gradleIncludeRe.FindAllStringSubmatch(string(data), -1) {
			// Gradle paths use ":sub:project" notation.
			modules = append(modules, strings.ReplaceAll(strings.TrimPrefix(m[1], ":"), ":", "/"))
		}
		if len(modules) > 0 {
			return modules, true
		}
	}
	return nil, false
}

func probeGoWork(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "go.work"))
	if err != nil {
		return nil, false
	}
	var dirs []string
	inUse := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "use ("):
			inUse = true
		case inUse && line == ")":
			inUse = false
		case inUse && line != "":
			dirs = append(dirs, strings.TrimPrefix(line, "./"))
		case strings.HasPrefix(line, "use "):
			dirs = append(dirs, strings.TrimPrefix(strings.TrimPrefix(line, "use "), "./"))
		}
	}
	return dirs, len(dirs) > 0
}

// expandPatterns resolves declared package globs against the filesystem.
// Only existing directories survive; node_modules, target, and hidden
// directories are excluded even when a glob would reach them.
func expandPatterns(root string, patterns []string) []models.PackageLocation {
	var out []models.PackageLocation
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			continue // negations narrow other globs; ignored here
		}
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil {
			continue
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.IsDir() {
				continue
			}
			if excludedPath(root, m) {
				continue
			}
			rel, err := filepath.Rel(root, m)
			if err != nil {
				rel = filepath.Base(m)
			}
			out = append(out, models.PackageLocation{
				// Relative names keep two "lib" packages in different
				// subtrees distinguishable.
				Name: filepath.ToSlash(rel),
				Path: m,
			})
		}
	}
	return out
}

func excludedPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if skipDir(part) {
			return true
		}
	}
	return false
}
