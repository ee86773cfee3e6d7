// Package parsers extracts typed dependency entries from package
// manifests. One parser exists per ecosystem family; refined variants
// (pnpm, poetry, ...) share their family's parser but stamp their own
// manager on every dependency.
package parsers

import (
	"github.com/reposniff/reposniff/internal/models"
)

// Parser extracts dependencies from manifest content. Parse failures
// return a *models.ManifestParseError scoped to the manifest path.
type Parser interface {
	Parse(path string, content []byte) ([]models.Dependency, error)
}

// For selects the parser for a package manager, or nil when the
// ecosystem has no parser yet (Gradle). Selection is keyed by family so
// Pnpm, Yarn, and Bun reuse the node parser with their own identity.
func For(pm models.PackageManager) Parser {
	switch pm.Family() {
	case models.Cargo:
		return &CargoParser{}
	case models.Npm:
		return &NodeParser{Manager: pm}
	case models.Pip:
		return &PythonParser{Manager: pm}
	case models.Bundler:
		return &GemfileParser{}
	case models.Composer:
		return &ComposerParser{}
	case models.Maven:
		return &MavenParser{}
	case models.GoMod:
		return &GoModParser{}
	default:
		return nil
	}
}

func parseError(path, message string) error {
	return &models.ManifestParseError{Path: path, Message: message}
}
