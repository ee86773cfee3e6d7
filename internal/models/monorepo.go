package models

// MonorepoTool identifies the workspace tooling managing a monorepo.
type MonorepoTool string

const (
	CargoWorkspace MonorepoTool = "cargo-workspace"
	NpmWorkspaces  MonorepoTool = "npm-workspaces"
	PnpmWorkspaces MonorepoTool = "pnpm-workspaces"
	YarnWorkspaces MonorepoTool = "yarn-workspaces"
	Nx             MonorepoTool = "nx"
	Turborepo      MonorepoTool = "turborepo"
	Lerna          MonorepoTool = "lerna"
	MavenModules   MonorepoTool = "maven-modules"
	GradleModules  MonorepoTool = "gradle-modules"
	GoWorkspace    MonorepoTool = "go-workspace"
)

// PackageLocation is one package inside a monorepo.
type PackageLocation struct {
	// Name is the path relative to the monorepo root, so two packages
	// both named "lib" in different subtrees stay distinguishable.
	Name string `json:"name"`
	Path string `json:"path"`
}

// MonorepoInfo describes detected workspace structure. IsMonorepo can be
// true with an empty Packages list: declared globs that match nothing on
// disk signal misconfiguration, not absence of a workspace.
type MonorepoInfo struct {
	IsMonorepo bool         `json:"is_monorepo"`
	Tool       MonorepoTool `json:"tool,omitempty"`
	// Tools lists every workspace tooling found at the root, in priority
	// order; Tool is always Tools[0] when non-empty.
	Tools    []MonorepoTool    `json:"tools,omitempty"`
	Root     string            `json:"root"`
	Packages []PackageLocation `json:"packages"`
}
