package models

import "fmt"

// NotARepositoryError is returned when git inspection finds no .git
// directory at or above the requested root.
type NotARepositoryError struct {
	Path string
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("not a git repository: %s", e.Path)
}

// ManifestParseError scopes a parse failure to one manifest. Sibling
// packages keep processing.
type ManifestParseError struct {
	Path    string
	Message string
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest %s: %s", e.Path, e.Message)
}

// LockfileParseError scopes a lockfile failure to one package; the
// package degrades to unresolved versions.
type LockfileParseError struct {
	Path    string
	Message string
}

func (e *LockfileParseError) Error() string {
	return fmt.Sprintf("failed to parse lockfile %s: %s", e.Path, e.Message)
}

// RegistryError scopes a registry failure to one dependency lookup.
type RegistryError struct {
	Registry string
	Message  string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry %s: %s", e.Registry, e.Message)
}

// UnsupportedPlatformError marks a feature unavailable on this platform
// or ecosystem.
type UnsupportedPlatformError struct {
	Feature string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform feature: %s", e.Feature)
}
