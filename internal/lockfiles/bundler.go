package lockfiles

import (
	"regexp"
	"strings"
)

var gemLockEntryRe = regexp.MustCompile(`^    ([A-Za-z0-9_.-]+) \(([^)]+)\)$`)

// readGemfileLock reads Gemfile.lock. Resolved gems sit in the specs
// block at exactly four spaces of indentation; deeper indentation lists
// their transitive requirements.
func readGemfileLock(content []byte) (lockedVersions, error) {
	locked := make(lockedVersions)
	inSpecs := false
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "specs:" {
			inSpecs = true
			continue
		}
		if !strings.HasPrefix(line, " ") {
			inSpecs = false
			continue
		}
		if !inSpecs {
			continue
		}
		if m := gemLockEntryRe.FindStringSubmatch(line); m != nil {
			locked.add(m[1], m[2])
		}
	}
	return locked, nil
}
