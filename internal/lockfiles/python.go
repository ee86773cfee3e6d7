package lockfiles

import (
	"github.com/BurntSushi/toml"
)

// readPoetryLock reads poetry.lock and pdm.lock, both TOML files with
// [[package]] entries.
func readPoetryLock(content []byte) (lockedVersions, error) {
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

// readUvLock reads uv.lock. Same [[package]] shape as poetry, kept
// separate because uv adds source tables the poetry reader must not
// trip over.
func readUvLock(content []byte) (lockedVersions, error) {
	return readPoetryLock(content)
}
