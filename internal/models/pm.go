package models

// PackageManager identifies a dependency ecosystem. The set is closed:
// values are defined here once and never constructed per-run.
type PackageManager string

const (
	Cargo    PackageManager = "cargo"
	Npm      PackageManager = "npm"
	Pnpm     PackageManager = "pnpm"
	Yarn     PackageManager = "yarn"
	Bun      PackageManager = "bun"
	Pip      PackageManager = "pip"
	Poetry   PackageManager = "poetry"
	Pdm      PackageManager = "pdm"
	Uv       PackageManager = "uv"
	Bundler  PackageManager = "bundler"
	Composer PackageManager = "composer"
	Maven    PackageManager = "maven"
	Gradle   PackageManager = "gradle"
	GoMod    PackageManager = "go"
)

// AllPackageManagers lists every supported ecosystem in detection
// priority order. Detection probes manifests in this order, so Cargo
// wins over package.json when both sit in one directory's output.
var AllPackageManagers = []PackageManager{
	Cargo, Npm, Pnpm, Yarn, Bun,
	Pip, Poetry, Pdm, Uv,
	Bundler, Composer, Maven, Gradle, GoMod,
}

// pmFacts is one row of the package manager table. The table is the
// single source of truth for ecosystem identity: no other package may
// hard-code manifest or lockfile filenames.
type pmFacts struct {
	language  string
	registry  string // empty means no queryable registry
	parent    PackageManager
	manifests []string
	lockfiles []string
}

var pmTable = map[PackageManager]pmFacts{
	Cargo: {
		language:  "Rust",
		registry:  "https://crates.io",
		manifests: []string{"Cargo.toml"},
		lockfiles: []string{"Cargo.lock"},
	},
	Npm: {
		language:  "JavaScript",
		registry:  "https://registry.npmjs.org",
		manifests: []string{"package.json"},
		lockfiles: []string{"package-lock.json", "npm-shrinkwrap.json"},
	},
	Pnpm: {
		language:  "JavaScript",
		registry:  "https://registry.npmjs.org",
		parent:    Npm,
		manifests: []string{"package.json"},
		lockfiles: []string{"pnpm-lock.yaml"},
	},
	Yarn: {
		language:  "JavaScript",
		registry:  "https://registry.npmjs.org",
		parent:    Npm,
		manifests: []string{"package.json"},
		lockfiles: []string{"yarn.lock"},
	},
	Bun: {
		language:  "JavaScript",
		registry:  "https://registry.npmjs.org",
		parent:    Npm,
		manifests: []string{"package.json"},
		lockfiles: []string{"bun.lockb", "bun.lock"},
	},
	Pip: {
		language:  "Python",
		registry:  "https://pypi.org",
		manifests: []string{"pyproject.toml", "requirements.txt"},
		lockfiles: []string{},
	},
	Poetry: {
		language:  "Python",
		registry:  "https://pypi.org",
		parent:    Pip,
		manifests: []string{"pyproject.toml"},
		lockfiles: []string{"poetry.lock"},
	},
	Pdm: {
		language:  "Python",
		registry:  "https://pypi.org",
		parent:    Pip,
		manifests: []string{"pyproject.toml"},
		lockfiles: []string{"pdm.lock"},
	},
	Uv: {
		language:  "Python",
		registry:  "https://pypi.org",
		parent:    Pip,
		manifests: []string{"pyproject.toml"},
		lockfiles: []string{"uv.lock"},
	},
	Bundler: {
		language:  "Ruby",
		registry:  "https://rubygems.org",
		manifests: []string{"Gemfile"},
		lockfiles: []string{"Gemfile.lock"},
	},
	Composer: {
		language:  "PHP",
		registry:  "https://repo.packagist.org",
		manifests: []string{"composer.json"},
		lockfiles: []string{"composer.lock"},
	},
	Maven: {
		language:  "Java",
		registry:  "https://repo1.maven.org/maven2",
		manifests: []string{"pom.xml"},
		lockfiles: []string{},
	},
	Gradle: {
		language:  "Java",
		manifests: []string{"build.gradle", "build.gradle.kts"},
		lockfiles: []string{"gradle.lockfile"},
	},
	GoMod: {
		language:  "Go",
		registry:  "https://proxy.golang.org",
		manifests: []string{"go.mod"},
		lockfiles: []string{"go.sum"},
	},
}

// PrimaryLanguage returns the language the ecosystem serves.
func (pm PackageManager) PrimaryLanguage() string {
	return pmTable[pm].language
}

// RegistryURL returns the ecosystem's public registry, or "" when the
// ecosystem has no queryable registry (Gradle).
func (pm PackageManager) RegistryURL() string {
	return pmTable[pm].registry
}

// Parent returns the generic ecosystem this manager refines, or "" for
// top-level managers. Pnpm/Yarn/Bun refine Npm; Poetry/Pdm/Uv refine Pip.
func (pm PackageManager) Parent() PackageManager {
	return pmTable[pm].parent
}

// ManifestFiles returns the manifest filenames for the ecosystem, in
// probe order.
func (pm PackageManager) ManifestFiles() []string {
	return pmTable[pm].manifests
}

// LockfileFiles returns the lockfile filenames for the ecosystem, in
// probe order.
func (pm PackageManager) LockfileFiles() []string {
	return pmTable[pm].lockfiles
}

// Known reports whether pm is one of the defined ecosystems.
func (pm PackageManager) Known() bool {
	_, ok := pmTable[pm]
	return ok
}

// Family returns the top-level ecosystem for grouping: pm itself when it
// has no parent, otherwise its parent.
func (pm PackageManager) Family() PackageManager {
	if p := pmTable[pm].parent; p != "" {
		return p
	}
	return pm
}
