package models

// DependencyKind categorizes when a dependency is needed.
type DependencyKind string

const (
	KindRuntime  DependencyKind = "runtime"
	KindDev      DependencyKind = "dev"
	KindPeer     DependencyKind = "peer"
	KindOptional DependencyKind = "optional"
	KindBuild    DependencyKind = "build"
)

// DependencyMeta carries non-registry source facts about a dependency.
// A dependency with a git or path source, or one that is
// workspace-internal, is not eligible for registry enrichment.
type DependencyMeta struct {
	// Registry is a manifest-level registry override (e.g. a Cargo
	// alternative registry name). Empty for the default registry.
	Registry string `json:"registry,omitempty"`
	// GitURL is set when the dependency is sourced from a git repository.
	GitURL string `json:"git_url,omitempty"`
	// Path is set when the dependency is sourced from a local directory.
	Path string `json:"path,omitempty"`
	// Workspace marks workspace-internal references such as Cargo's
	// `workspace = true` or npm's "workspace:*".
	Workspace bool `json:"workspace,omitempty"`
	// Features lists enabled feature flags (Cargo) or extras (Python).
	Features []string `json:"features,omitempty"`
	// AliasOf records the real package behind an alias: the "real@1.0.0"
	// in npm's "pkg": "npm:real@1.0.0" or the `package =` rename in
	// Cargo. Aliases stay within one ecosystem.
	AliasOf string `json:"alias_of,omitempty"`
}

// Dependency is a single declared dependency of one package.
type Dependency struct {
	Name    string         `json:"name"`
	Kind    DependencyKind `json:"kind"`
	Manager PackageManager `json:"manager"`
	// Requirement is the raw version constraint from the manifest.
	Requirement string `json:"requirement"`
	// ResolvedVersion is the concrete version pinned by a lockfile, if
	// one exists and contains this dependency.
	ResolvedVersion string `json:"resolved_version,omitempty"`
	// ResolutionAmbiguous is set when the lockfile held several entries
	// satisfying the requirement and the resolver had to tie-break.
	ResolutionAmbiguous bool           `json:"resolution_ambiguous,omitempty"`
	Meta                DependencyMeta `json:"meta,omitempty"`
}

// RegistryEligible reports whether this dependency can be looked up in
// its ecosystem's registry.
func (d Dependency) RegistryEligible() bool {
	return d.Meta.GitURL == "" && d.Meta.Path == "" && !d.Meta.Workspace
}

// String returns a human-readable representation
func (d Dependency) String() string {
	return d.Name + "@" + d.Requirement
}

// UpdateStatus classifies the gap between a dependency's current
// version and the latest registry version.
type UpdateStatus string

const (
	UpToDate       UpdateStatus = "up_to_date"
	PatchAvailable UpdateStatus = "patch_available"
	MinorAvailable UpdateStatus = "minor_available"
	MajorAvailable UpdateStatus = "major_available"
	UnknownStatus  UpdateStatus = "unknown"
)

// Outdated reports whether the status indicates an available update.
func (s UpdateStatus) Outdated() bool {
	switch s {
	case PatchAvailable, MinorAvailable, MajorAvailable:
		return true
	}
	return false
}

// AdvisorySeverity orders security advisories from least to most severe.
type AdvisorySeverity int

const (
	SeverityUnknown AdvisorySeverity = iota
	SeverityLow
	SeverityModerate
	SeverityHigh
	SeverityCritical
)

func (s AdvisorySeverity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityModerate:
		return "moderate"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

// SecurityAdvisory is one published vulnerability affecting a dependency.
type SecurityAdvisory struct {
	ID              string           `json:"id"`
	Severity        AdvisorySeverity `json:"severity"`
	Title           string           `json:"title"`
	URL             string           `json:"url,omitempty"`
	PatchedVersions string           `json:"patched_versions,omitempty"`
}

// DependencyVersionInfo is a Dependency enriched with registry data.
type DependencyVersionInfo struct {
	Dependency
	LatestVersion string `json:"latest_version,omitempty"`
	// LatestSatisfying is the newest version that still satisfies the
	// declared requirement.
	LatestSatisfying string             `json:"latest_satisfying,omitempty"`
	UpdateStatus     UpdateStatus       `json:"update_status"`
	Advisories       []SecurityAdvisory `json:"advisories,omitempty"`
}

// Diagnostic records a scoped failure attached to a report entry rather
// than aborting the run.
type Diagnostic struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// PackageDependencies is the dependency set of one detected manifest.
// Every Dependency in Dependencies has the same Manager as the package.
type PackageDependencies struct {
	Name         string         `json:"name"`
	Path         string         `json:"path"`
	Manager      PackageManager `json:"manager"`
	HasLockfile  bool           `json:"has_lockfile"`
	Dependencies []Dependency   `json:"dependencies"`
	Diagnostics  []Diagnostic   `json:"diagnostics,omitempty"`
}

// DependencySummary aggregates counts across a whole report.
type DependencySummary struct {
	Total              int `json:"total"`
	Runtime            int `json:"runtime"`
	Dev                int `json:"dev"`
	Outdated           int `json:"outdated"`
	SecurityIssues     int `json:"security_issues"`
	UniqueDependencies int `json:"unique_dependencies"`
}

// DependencyReport is the complete result of one analysis run. Reports
// are constructed fresh per run and never mutated afterwards.
type DependencyReport struct {
	DetectedManagers []PackageManager        `json:"detected_managers"`
	Packages         []PackageDependencies   `json:"packages"`
	Enriched         []DependencyVersionInfo `json:"enriched,omitempty"`
	Summary          DependencySummary       `json:"summary"`
	Diagnostics      []Diagnostic            `json:"diagnostics,omitempty"`
}
