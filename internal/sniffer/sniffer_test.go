package sniffer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposniff/reposniff/internal/models"
)

func testSniffer(root string) *Sniffer {
	config := models.DefaultConfig()
	config.Root = root
	return New(config, log.New(io.Discard))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestRunEmptyDirectory(t *testing.T) {
	result, err := testSniffer(t.TempDir()).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Report.DetectedManagers)
	assert.Empty(t, result.Report.Packages)
	assert.Zero(t, result.Report.Summary.Total)
	assert.False(t, result.Monorepo.IsMonorepo)
}

func TestRunSinglePackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"name": "app",
		"dependencies": {"express": "^4.18.0"},
		"devDependencies": {"vitest": "^1.0.0"}
	}`)
	writeFile(t, root, "package-lock.json", `{
		"lockfileVersion": 3,
		"packages": {
			"node_modules/express": {"version": "4.19.2"}
		}
	}`)

	result, err := testSniffer(root).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.PackageManager{models.Npm}, result.Report.DetectedManagers)
	require.Len(t, result.Report.Packages, 1)

	pkg := result.Report.Packages[0]
	assert.True(t, pkg.HasLockfile)
	require.Len(t, pkg.Dependencies, 2)
	assert.Equal(t, "express", pkg.Dependencies[0].Name)
	assert.Equal(t, "4.19.2", pkg.Dependencies[0].ResolvedVersion)
	assert.Empty(t, pkg.Dependencies[1].ResolvedVersion)

	summary := result.Report.Summary
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Runtime)
	assert.Equal(t, 1, summary.Dev)
	assert.Equal(t, 2, summary.UniqueDependencies)
}

func TestRunCorruptManifestIsScoped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", "{broken")
	writeFile(t, root, "api/Cargo.toml", "[package]\nname = \"api\"\n\n[dependencies]\nserde = \"1.0\"\n")

	result, err := testSniffer(root).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Report.Packages, 2)

	var broken, healthy models.PackageDependencies
	for _, pkg := range result.Report.Packages {
		if pkg.Manager == models.Npm {
			broken = pkg
		} else {
			healthy = pkg
		}
	}
	assert.NotEmpty(t, broken.Diagnostics)
	assert.Empty(t, broken.Dependencies)
	assert.Len(t, healthy.Dependencies, 1)
}

func TestRunUniqueCountSpansFamilies(t *testing.T) {
	// The same name under npm and pnpm counts once; under npm and
	// cargo it counts twice.
	root := t.TempDir()
	writeFile(t, root, "a/package.json", `{"dependencies": {"shared-name": "^1.0.0"}}`)
	writeFile(t, root, "b/package.json", `{"dependencies": {"shared-name": "^1.0.0"}}`)
	writeFile(t, root, "b/pnpm-lock.yaml", "lockfileVersion: '9.0'\n")
	writeFile(t, root, "c/Cargo.toml", "[dependencies]\nshared-name = \"1.0\"\n")

	result, err := testSniffer(root).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Report.Summary.Total)
	assert.Equal(t, 2, result.Report.Summary.UniqueDependencies)
}

func TestRunMonorepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"workspaces": ["packages/*"]}`)
	writeFile(t, root, "packages/a/package.json", `{"name": "a"}`)

	result, err := testSniffer(root).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Monorepo.IsMonorepo)
	assert.Equal(t, models.NpmWorkspaces, result.Monorepo.Tool)
	require.Len(t, result.Monorepo.Packages, 1)
}

func TestRunGradleDetectedButUnparsed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "build.gradle", "plugins { id 'java' }\n")

	result, err := testSniffer(root).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.PackageManager{models.Gradle}, result.Report.DetectedManagers)
	require.Len(t, result.Report.Packages, 1)
	assert.Empty(t, result.Report.Packages[0].Dependencies)
	assert.Empty(t, result.Report.Packages[0].Diagnostics)
}

func TestPackagesSortedByPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "zeta/go.mod", "module example.com/zeta\n")
	writeFile(t, root, "alpha/go.mod", "module example.com/alpha\n")

	result, err := testSniffer(root).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Report.Packages, 2)
	assert.Equal(t, "alpha", result.Report.Packages[0].Name)
	assert.Equal(t, "zeta", result.Report.Packages[1].Name)
}
