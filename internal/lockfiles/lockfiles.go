// Package lockfiles reads ecosystem lockfiles and pins declared
// dependencies to the concrete versions the lockfile resolved. Reading
// is keyed by the lockfile's filename, so one resolver serves every
// ecosystem.
package lockfiles

import (
	"os"
	"path/filepath"

	"github.com/reposniff/reposniff/internal/models"
	"github.com/reposniff/reposniff/internal/vers"
)

// lockedVersions maps package name to every version the lockfile pinned
// for it. Flattened node trees legitimately hold several versions of
// one package.
type lockedVersions map[string][]string

type reader func(content []byte) (lockedVersions, error)

// readers is keyed by lockfile filename. bun.lockb is binary: its
// presence is recorded but no versions are read from it.
var readers = map[string]reader{
	"Cargo.lock":        readCargoLock,
	"package-lock.json": readPackageLock,
	"pnpm-lock.yaml":    readPnpmLock,
	"yarn.lock":         readYarnLock,
	"bun.lockb":         readOpaque,
	"poetry.lock":       readPoetryLock,
	"uv.lock":           readUvLock,
	"pdm.lock":          readPoetryLock,
	"composer.lock":     readComposerLock,
	"Gemfile.lock":      readGemfileLock,
}

// Apply annotates deps with resolved versions from the lockfile at
// lockPath. Dependencies absent from the lockfile are left unresolved.
// When several locked versions satisfy a requirement, the highest wins
// and the dependency is flagged ambiguous. A corrupt lockfile returns a
// *models.LockfileParseError and leaves deps untouched.
func Apply(lockPath string, deps []models.Dependency) error {
	base := filepath.Base(lockPath)
	if base == "go.sum" {
		applyGoSum(deps)
		return nil
	}
	read, ok := readers[base]
	if !ok {
		return nil
	}
	content, err := os.ReadFile(lockPath)
	if err != nil {
		return &models.LockfileParseError{Path: lockPath, Message: err.Error()}
	}
	locked, err := read(content)
	if err != nil {
		return &models.LockfileParseError{Path: lockPath, Message: err.Error()}
	}
	if locked == nil {
		return nil
	}

	for i := range deps {
		name := deps[i].Name
		if deps[i].Meta.AliasOf != "" {
			name = deps[i].Meta.AliasOf
		}
		versions := locked[name]
		switch len(versions) {
		case 0:
		case 1:
			deps[i].ResolvedVersion = versions[0]
		default:
			deps[i].ResolvedVersion, deps[i].ResolutionAmbiguous = tieBreak(deps[i], versions)
		}
	}
	return nil
}

// tieBreak picks among several locked versions: the highest satisfying
// the declared requirement, falling back to the highest overall when
// none satisfies it.
func tieBreak(dep models.Dependency, versions []string) (string, bool) {
	req := vers.Parse(dep.Requirement, dep.Manager)
	if best := req.LatestSatisfying(versions); best != "" {
		return best, true
	}
	any := vers.Parse("*", dep.Manager)
	if best := any.LatestSatisfying(versions); best != "" {
		return best, true
	}
	return versions[0], true
}

// readOpaque covers lockfiles whose presence matters but whose content
// is not read (binary bun.lockb).
func readOpaque([]byte) (lockedVersions, error) {
	return nil, nil
}

// applyGoSum pins module dependencies. go.mod requirements are already
// exact versions, so the presence of go.sum confirms them as resolved
// without reading its hash lines. Filesystem replacements stay
// unresolved.
func applyGoSum(deps []models.Dependency) {
	for i := range deps {
		if deps[i].Requirement == "" || deps[i].Meta.Path != "" {
			continue
		}
		deps[i].ResolvedVersion = deps[i].Requirement
	}
}

func (l lockedVersions) add(name, version string) {
	if name == "" || version == "" {
		return
	}
	for _, v := range l[name] {
		if v == version {
			return
		}
	}
	l[name] = append(l[name], version)
}
