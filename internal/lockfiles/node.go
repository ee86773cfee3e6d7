package lockfiles

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// readPackageLock reads package-lock.json across format versions.
// v2/v3 lockfiles carry a "packages" map keyed by node_modules path;
// v1 carries a nested "dependencies" tree.
func readPackageLock(content []byte) (lockedVersions, error) {
	var lock struct {
		Packages     map[string]struct{ Version string } `json:"packages"`
		Dependencies map[string]npmLegacyDep             `json:"dependencies"`
	}
	if err := json.Unmarshal(content, &lock); err != nil {
		return nil, err
	}

	locked := make(lockedVersions)
	for path, pkg := range lock.Packages {
		if path == "" {
			continue // root package entry
		}
		// "node_modules/a/node_modules/b" pins b; the last segment
		// after node_modules/ is the package name (scoped names keep
		// their slash).
		if i := strings.LastIndex(path, "node_modules/"); i >= 0 {
			locked.add(path[i+len("node_modules/"):], pkg.Version)
		}
	}
	flattenLegacy(lock.Dependencies, locked)
	return locked, nil
}

type npmLegacyDep struct {
	Version      string                  `json:"version"`
	Dependencies map[string]npmLegacyDep `json:"dependencies"`
}

func flattenLegacy(deps map[string]npmLegacyDep, locked lockedVersions) {
	for name, dep := range deps {
		locked.add(name, dep.Version)
		flattenLegacy(dep.Dependencies, locked)
	}
}

// pnpm keys its packages map "/name@version" (v6+) or "/name/version"
// (v5), with peer suffixes in parentheses.
var pnpmKeyRe = regexp.MustCompile(`^/?(@?[^@/]+(?:/[^@/]+)?)[@/]([^(/]+)`)

func readPnpmLock(content []byte) (lockedVersions, error) {
	var lock struct {
		Packages map[string]yaml.Node `yaml:"packages"`
	}
	if err := yaml.Unmarshal(content, &lock); err != nil {
		return nil, err
	}
	locked := make(lockedVersions, len(lock.Packages))
	for key := range lock.Packages {
		if m := pnpmKeyRe.FindStringSubmatch(key); m != nil {
			locked.add(m[1], strings.TrimSuffix(m[2], ")"))
		}
	}
	return locked, nil
}

var yarnVersionRe = regexp.MustCompile(`^\s{2}version:?\s+"?([^"\s]+)"?`)

// readYarnLock reads the classic yarn.lock text format and the berry
// YAML-ish variant. Entry headers are comma-separated "name@range"
// descriptors; the indented version line that follows pins them all.
func readYarnLock(content []byte) (lockedVersions, error) {
	locked := make(lockedVersions)
	var currentNames []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if m := yarnVersionRe.FindStringSubmatch(line); m != nil {
			for _, name := range currentNames {
				locked.add(name, m[1])
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		currentNames = currentNames[:0]
		for _, desc := range strings.Split(strings.TrimSuffix(line, ":"), ",") {
			desc = strings.Trim(strings.TrimSpace(desc), `"`)
			// "@scope/pkg@^1.0.0": the name ends at the last "@".
			if at := strings.LastIndex(desc, "@"); at > 0 {
				currentNames = append(currentNames, desc[:at])
			}
		}
	}
	return locked, nil
}
