package parsers

import (
	"golang.org/x/mod/modfile"

	"github.com/reposniff/reposniff/internal/models"
)

// GoModParser parses go.mod files. Only direct requirements are
// reported; the indirect closure is resolution detail, not a declared
// dependency.
type GoModParser struct{}

// Parse extracts direct requirements from go.mod content.
func (p *GoModParser) Parse(path string, content []byte) ([]models.Dependency, error) {
	f, err := modfile.Parse(path, content, nil)
	if err != nil {
		return nil, parseError(path, err.Error())
	}

	replaced := make(map[string]string)
	for _, r := range f.Replace {
		// Filesystem replacements only; module-to-module replacements
		// still resolve through the proxy.
		if r.New.Version == "" {
			replaced[r.Old.Path] = r.New.Path
		}
	}

	var deps []models.Dependency
	for _, req := range f.Require {
		if req.Indirect {
			continue
		}
		dep := models.Dependency{
			Name:        req.Mod.Path,
			Kind:        models.KindRuntime,
			Manager:     models.GoMod,
			Requirement: req.Mod.Version,
		}
		if local, ok := replaced[req.Mod.Path]; ok {
			dep.Meta.Path = local
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
