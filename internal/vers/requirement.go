// Package vers implements ecosystem-aware version requirement parsing
// and matching. Each ecosystem's constraint syntax is parsed with its
// own grammar; grammars are never cross-applied because operators like
// "~" carry different minimum-bump semantics between ecosystems.
package vers

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	goversion "github.com/hashicorp/go-version"
	gomodsemver "golang.org/x/mod/semver"

	"github.com/reposniff/reposniff/internal/models"
)

// Grammar tags the syntax family a requirement was parsed with.
type Grammar string

const (
	GrammarCargo    Grammar = "cargo"
	GrammarNpm      Grammar = "npm"
	GrammarPython   Grammar = "python"
	GrammarRuby     Grammar = "ruby"
	GrammarComposer Grammar = "composer"
	GrammarGoMod    Grammar = "gomod"
	GrammarExact    Grammar = "exact"
	// GrammarOther marks input no grammar could parse. Matches always
	// returns false and the requirement is excluded from update
	// classification.
	GrammarOther Grammar = "other"
)

// Requirement is a parsed version constraint bound to the grammar of
// its owning ecosystem.
type Requirement struct {
	Raw     string
	Grammar Grammar

	semverConstraint *semver.Constraints
	versionConstrs   goversion.Constraints
	exact            string
}

// grammarFor maps an ecosystem family to its requirement grammar.
func grammarFor(pm models.PackageManager) Grammar {
	switch pm.Family() {
	case models.Cargo:
		return GrammarCargo
	case models.Npm:
		return GrammarNpm
	case models.Pip:
		return GrammarPython
	case models.Bundler:
		return GrammarRuby
	case models.Composer:
		return GrammarComposer
	case models.GoMod:
		return GrammarGoMod
	default:
		return GrammarExact
	}
}

// Parse builds a Requirement for raw under the ecosystem's grammar.
// Parse never fails: input that the grammar rejects degrades to a
// GrammarOther requirement whose Matches always returns false.
func Parse(raw string, pm models.PackageManager) Requirement {
	raw = strings.TrimSpace(raw)
	req := Requirement{Raw: raw, Grammar: grammarFor(pm)}
	if raw == "" || raw == "*" {
		// Wildcard or absent requirement matches everything the
		// ecosystem can produce.
		if c, err := semver.NewConstraint("*"); err == nil {
			req.semverConstraint = c
			return req
		}
	}

	switch req.Grammar {
	case GrammarCargo:
		if c, err := semver.NewConstraint(cargoToRange(raw)); err == nil {
			req.semverConstraint = c
			return req
		}
	case GrammarNpm:
		if c, err := semver.NewConstraint(raw); err == nil {
			req.semverConstraint = c
			return req
		}
	case GrammarComposer:
		if c, err := semver.NewConstraint(composerToRange(raw)); err == nil {
			req.semverConstraint = c
			return req
		}
	case GrammarPython:
		if c, err := goversion.NewConstraint(pythonToRuby(raw)); err == nil {
			req.versionConstrs = c
			return req
		}
	case GrammarRuby:
		if c, err := goversion.NewConstraint(raw); err == nil {
			req.versionConstrs = c
			return req
		}
	case GrammarGoMod:
		if gomodsemver.IsValid(raw) {
			req.exact = raw
			return req
		}
	case GrammarExact:
		req.exact = raw
		return req
	}

	req.Grammar = GrammarOther
	return req
}

// Matches reports whether candidate satisfies the requirement under its
// grammar. GrammarOther never matches.
func (r Requirement) Matches(candidate string) bool {
	switch {
	case r.semverConstraint != nil:
		v, err := semver.NewVersion(candidate)
		if err != nil {
			return false
		}
		return r.semverConstraint.Check(v)
	case r.versionConstrs != nil:
		v, err := goversion.NewVersion(candidate)
		if err != nil {
			return false
		}
		return r.versionConstrs.Check(v)
	case r.Grammar == GrammarGoMod:
		return gomodsemver.Compare(r.exact, ensureV(candidate)) == 0
	case r.Grammar == GrammarExact:
		return r.exact == candidate
	}
	return false
}

// Parseable reports whether the requirement carries a usable grammar.
func (r Requirement) Parseable() bool {
	return r.Grammar != GrammarOther
}

// LatestSatisfying returns the highest version in versions that matches
// the requirement, or "" when none does.
func (r Requirement) LatestSatisfying(versions []string) string {
	best := ""
	var bestParsed *semver.Version
	for _, v := range versions {
		if !r.Matches(v) {
			continue
		}
		parsed, err := semver.NewVersion(v)
		if err != nil {
			// Lexical fallback keeps the pick deterministic for
			// non-semver version schemes.
			if v > best {
				best = v
			}
			continue
		}
		if bestParsed == nil || parsed.GreaterThan(bestParsed) {
			best = v
			bestParsed = parsed
		}
	}
	return best
}

// MinSatisfying returns the lowest version in versions that matches
// the requirement, or "" when none does.
func (r Requirement) MinSatisfying(versions []string) string {
	best := ""
	var bestParsed *semver.Version
	for _, v := range versions {
		if !r.Matches(v) {
			continue
		}
		parsed, err := semver.NewVersion(v)
		if err != nil {
			if best == "" || v < best {
				best = v
			}
			continue
		}
		if bestParsed == nil || parsed.LessThan(bestParsed) {
			best = v
			bestParsed = parsed
		}
	}
	return best
}

// cargoToRange rewrites a Cargo requirement into range syntax. Cargo's
// bare "1.2.3" is caret shorthand, unlike npm where a bare version is
// exact.
func cargoToRange(raw string) string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && p[0] >= '0' && p[0] <= '9' {
			p = "^" + p
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}

// composerToRange rewrites Composer operators into range syntax.
// Composer's two-segment tilde widens to the next major ("~1.2" is
// ">=1.2 <2.0"), while npm's stays within the minor.
func composerToRange(raw string) string {
	parts := strings.Split(raw, "||")
	for i, alt := range parts {
		terms := strings.Fields(strings.TrimSpace(alt))
		for j, t := range terms {
			if rest, ok := strings.CutPrefix(t, "~"); ok && strings.Count(rest, ".") == 1 {
				terms[j] = ">=" + rest + ".0, <" + nextMajor(rest)
			}
		}
		parts[i] = strings.Join(terms, " ")
	}
	return strings.Join(parts, " || ")
}

func nextMajor(v string) string {
	major := strings.SplitN(v, ".", 2)[0]
	sv, err := semver.NewVersion(major)
	if err != nil {
		return v
	}
	next := sv.IncMajor()
	return next.String()
}

// pythonToRuby rewrites PEP 440 specifiers into the pessimistic-operator
// syntax go-version understands. "~=1.2.3" is ">=1.2.3, <1.3.0", which
// is exactly ruby's "~> 1.2.3".
func pythonToRuby(raw string) string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		switch {
		case strings.HasPrefix(p, "~="):
			p = "~> " + strings.TrimSpace(p[2:])
		case strings.HasPrefix(p, "==="):
			p = "= " + strings.TrimSpace(p[3:])
		case strings.HasPrefix(p, "=="):
			v := strings.TrimSpace(p[2:])
			if rest, ok := strings.CutSuffix(v, ".*"); ok {
				p = "~> " + rest + ".0"
			} else {
				p = "= " + v
			}
		case p != "" && p[0] >= '0' && p[0] <= '9':
			p = "= " + p
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}

func ensureV(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
