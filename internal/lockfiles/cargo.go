package lockfiles

import (
	"github.com/BurntSushi/toml"
)

// readCargoLock reads Cargo.lock. Every [[package]] entry, workspace
// members included, is recorded; application to declared dependencies
// filters the relevant ones.
func readCargoLock(content []byte) (lockedVersions, error) {
	var lock struct {
		Package []struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(content, &lock); err != nil {
		return nil, err
	}
	locked := make(lockedVersions, len(lock.Package))
	for _, pkg := range lock.Package {
		locked.add(pkg.Name, pkg.Version)
	}
	return locked, nil
}
