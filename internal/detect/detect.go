// Package detect walks a source tree to locate package manifests and
// workspace structure. Detection is disk-bound and deterministic:
// directories are visited in lexical order so repeated runs over an
// unchanged tree produce identical results.
package detect

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/reposniff/reposniff/internal/models"
)

// DetectedManifest is one manifest found in the tree, tagged with its
// refined package manager.
type DetectedManifest struct {
	Manager models.PackageManager
	// Path is the manifest location relative to the scanned root.
	Path string
	// Dir is the absolute directory containing the manifest.
	Dir string
}

// Directories never descended into during detection.
var excludedDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
}

func skipDir(name string) bool {
	if excludedDirs[name] {
		return true
	}
	// Hidden directories (.git, .idea, ...) are never package roots.
	return strings.HasPrefix(name, ".") && name != "."
}

// probeOrder lists the generic manager probed per manifest, in priority
// order. Children (Pnpm, Poetry, ...) are reached through refinement,
// never probed directly.
var probeOrder = []models.PackageManager{
	models.Cargo,
	models.Npm,
	models.Pip,
	models.Bundler,
	models.Composer,
	models.GoMod,
	models.Maven,
	models.Gradle,
}

// PackageManagers walks root and returns every manifest found, with
// generic matches refined into their specific variant by sibling
// lockfiles. Multiple manifests in one directory each produce an
// independent entry. Unreadable subtrees are skipped and reported as
// diagnostics; only a failure at the root itself is an error.
func PackageManagers(root string) ([]DetectedManifest, []models.Diagnostic, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, err
	}

	var found []DetectedManifest
	var diagnostics []models.Diagnostic
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == absRoot {
				return err
			}
			rel, relErr := filepath.Rel(absRoot, p)
			if relErr != nil {
				rel = p
			}
			diagnostics = append(diagnostics, models.Diagnostic{Path: rel, Message: err.Error()})
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != absRoot && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		found = append(found, manifestsIn(absRoot, p)...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return found, diagnostics, nil
}

// manifestsIn probes one directory for manifests in priority order.
func manifestsIn(root, dir string) []DetectedManifest {
	var out []DetectedManifest
	for _, pm := range probeOrder {
		for _, name := range pm.ManifestFiles() {
			full := filepath.Join(dir, name)
			if !fileExists(full) {
				continue
			}
			refined := Refine(pm, dir)
			rel, err := filepath.Rel(root, full)
			if err != nil {
				rel = full
			}
			out = append(out, DetectedManifest{Manager: refined, Path: rel, Dir: dir})
			// One manifest per ecosystem per directory: pyproject.toml
			// beats requirements.txt when both are present.
			break
		}
	}
	return out
}

// Refine narrows a generic manager to the specific variant whose
// lockfile sits next to the manifest. Refinement must run before any
// parser or requirement-grammar selection, since those depend on the
// refined variant.
func Refine(pm models.PackageManager, dir string) models.PackageManager {
	for _, child := range models.AllPackageManagers {
		if child.Parent() != pm {
			continue
		}
		for _, lock := range child.LockfileFiles() {
			if fileExists(filepath.Join(dir, lock)) {
				return child
			}
		}
	}
	return pm
}

// LockfilePath returns the path of the first lockfile present for the
// manager in dir, or "" when none exists.
func LockfilePath(pm models.PackageManager, dir string) string {
	for _, lock := range pm.LockfileFiles() {
		full := filepath.Join(dir, lock)
		if fileExists(full) {
			return full
		}
	}
	return ""
}

// Managers deduplicates the managers in manifests, preserving first-seen
// order.
func Managers(manifests []DetectedManifest) []models.PackageManager {
	seen := make(map[models.PackageManager]bool)
	var out []models.PackageManager
	for _, m := range manifests {
		if !seen[m.Manager] {
			seen[m.Manager] = true
			out = append(out, m.Manager)
		}
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
