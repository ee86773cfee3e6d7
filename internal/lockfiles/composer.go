package lockfiles

import (
	"encoding/json"
	"strings"
)

// readComposerLock reads composer.lock. Both the runtime and dev
// package lists pin versions; composer prefixes tagged versions with
// "v" which is stripped for comparison.
func readComposerLock(content []byte) (lockedVersions, error) {
	var lock struct {
		Packages    []composerLockPkg `json:"packages"`
		PackagesDev []composerLockPkg `json:"packages-dev"`
	}
	if err := json.Unmarshal(content, &lock); err != nil {
		return nil, err
	}
	locked := make(lockedVersions, len(lock.Packages)+len(lock.PackagesDev))
	for _, pkg := range append(lock.Packages, lock.PackagesDev...) {
		locked.add(pkg.Name, strings.TrimPrefix(pkg.Version, "v"))
	}
	return locked, nil
}

type composerLockPkg struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
