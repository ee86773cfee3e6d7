package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposniff/reposniff/internal/models"
)

func TestMonorepoNotDetected(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.False(t, info.IsMonorepo)
	assert.Empty(t, info.Packages)
}

func TestCargoWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"crates/*\"]\n")
	writeFile(t, root, "crates/core/Cargo.toml", "[package]\nname = \"core\"\n")
	writeFile(t, root, "crates/cli/Cargo.toml", "[package]\nname = \"cli\"\n")

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Equal(t, models.CargoWorkspace, info.Tool)
	require.Len(t, info.Packages, 2)
	assert.Equal(t, "crates/cli", info.Packages[0].Name)
	assert.Equal(t, "crates/core", info.Packages[1].Name)
}

func TestCargoWorkspaceAbsentMember(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"crate-a\", \"crate-b\"]\n")
	writeFile(t, root, "crate-a/Cargo.toml", "[package]\nname = \"crate-a\"\n")

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Equal(t, models.CargoWorkspace, info.Tool)
	require.Len(t, info.Packages, 1)
	assert.Equal(t, "crate-a", info.Packages[0].Name)
}

func TestNpmWorkspacesArrayForm(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"root","workspaces":["packages/*"]}`)
	writeFile(t, root, "packages/a/package.json", `{"name":"a"}`)

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Equal(t, models.NpmWorkspaces, info.Tool)
	require.Len(t, info.Packages, 1)
	assert.Equal(t, "packages/a", info.Packages[0].Name)
}

func TestNpmWorkspacesObjectForm(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"workspaces":{"packages":["apps/*"]}}`)
	writeFile(t, root, "apps/web/package.json", `{"name":"web"}`)

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	require.Len(t, info.Packages, 1)
	assert.Equal(t, "apps/web", info.Packages[0].Name)
}

func TestPnpmWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pnpm-workspace.yaml", "packages:\n  - \"libs/*\"\n")
	writeFile(t, root, "libs/util/package.json", `{"name":"util"}`)

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Equal(t, models.PnpmWorkspaces, info.Tool)
}

func TestEmptyGlobsStillMonorepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"workspaces":["packages/*"]}`)

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Empty(t, info.Packages)
}

func TestMultipleToolingsReported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"workspaces":["packages/*"]}`)
	writeFile(t, root, "turbo.json", `{}`)
	writeFile(t, root, "packages/a/package.json", `{"name":"a"}`)

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.Equal(t, models.NpmWorkspaces, info.Tool)
	assert.Contains(t, info.Tools, models.Turborepo)
}

func TestGoWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.work", "go 1.24\n\nuse (\n\t./svc\n\t./lib\n)\n")
	writeFile(t, root, "svc/go.mod", "module example.com/svc\n")
	writeFile(t, root, "lib/go.mod", "module example.com/lib\n")

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Equal(t, models.GoWorkspace, info.Tool)
	require.Len(t, info.Packages, 2)
	assert.Equal(t, "lib", info.Packages[0].Name)
	assert.Equal(t, "svc", info.Packages[1].Name)
}

func TestGradleModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "settings.gradle", "include ':app'\ninclude(':libs:core')\n")
	writeFile(t, root, "app/build.gradle", "")
	writeFile(t, root, "libs/core/build.gradle", "")

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Equal(t, models.GradleModules, info.Tool)
	require.Len(t, info.Packages, 2)
	assert.Equal(t, "app", info.Packages[0].Name)
	assert.Equal(t, "libs/core", info.Packages[1].Name)
}

func TestMavenModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pom.xml", `<project><modules><module>core</module><module>web</module></modules></project>`)
	writeFile(t, root, "core/pom.xml", "<project/>")
	writeFile(t, root, "web/pom.xml", "<project/>")

	info, err := Monorepo(root)
	require.NoError(t, err)
	assert.True(t, info.IsMonorepo)
	assert.Equal(t, models.MavenModules, info.Tool)
	require.Len(t, info.Packages, 2)
}
