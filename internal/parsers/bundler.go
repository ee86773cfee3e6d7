package parsers

import (
	"regexp"
	"strings"

	"github.com/reposniff/reposniff/internal/models"
)

// GemfileParser parses Gemfile declarations. Gemfiles are Ruby source,
// so parsing is line-oriented over the common `gem` call forms rather
// than a full evaluation.
type GemfileParser struct{}

var gemLineRe = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](.*)$`)
var gemOptRe = regexp.MustCompile(`(\w+):\s*['"]([^'"]+)['"]|:(\w+)\s*=>\s*['"]([^'"]+)['"]`)
var gemVersionRe = regexp.MustCompile(`['"]([~><=^!][^'"]*|\d[^'"]*)['"]`)

// Parse extracts gem declarations from Gemfile content. Gems declared
// inside `group :development` or `group :test` blocks become dev
// dependencies.
func (p *GemfileParser) Parse(path string, content []byte) ([]models.Dependency, error) {
	var deps []models.Dependency
	groupDepth := 0
	devGroup := false

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if i := strings.Index(trimmed, "#"); i >= 0 {
			trimmed = strings.TrimSpace(trimmed[:i])
		}

		if strings.HasPrefix(trimmed, "group ") {
			groupDepth++
			if strings.Contains(trimmed, ":development") || strings.Contains(trimmed, ":test") {
				devGroup = true
			}
			continue
		}
		if trimmed == "end" && groupDepth > 0 {
			groupDepth--
			if groupDepth == 0 {
				devGroup = false
			}
			continue
		}

		m := gemLineRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		dep := models.Dependency{Name: m[1], Kind: models.KindRuntime, Manager: models.Bundler}
		if devGroup {
			dep.Kind = models.KindDev
		}

		rest := m[2]
		var constraints []string
		for _, vm := range gemVersionRe.FindAllStringSubmatch(rest, -1) {
			constraints = append(constraints, vm[1])
		}
		// Both hash syntaxes: `git: "url"` and `:git => "url"`.
		for _, om := range gemOptRe.FindAllStringSubmatch(rest, -1) {
			key, val := om[1], om[2]
			if key == "" {
				key, val = om[3], om[4]
			}
			switch key {
			case "git", "github":
				dep.Meta.GitURL = val
			case "path":
				dep.Meta.Path = val
			case "require":
				// load-path option, not a version
			}
		}
		if dep.Meta.GitURL != "" || dep.Meta.Path != "" {
			// Option values matched by the version regex are not
			// constraints.
			constraints = filterGemConstraints(constraints, rest)
		}
		dep.Requirement = strings.Join(constraints, ", ")
		deps = append(deps, dep)
	}
	return deps, nil
}

// filterGemConstraints keeps only the positional version arguments that
// appear before the first option key.
func filterGemConstraints(constraints []string, rest string) []string {
	cutoff := len(rest)
	if i := strings.Index(rest, ":"); i >= 0 {
		cutoff = i
	}
	var out []string
	for _, c := range constraints {
		if i := strings.Index(rest, c); i >= 0 && i < cutoff {
			out = append(out, c)
		}
	}
	return out
}
