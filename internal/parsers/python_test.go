package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposniff/reposniff/internal/models"
)

func TestPythonParsePEP621(t *testing.T) {
	manifest := `
[project]
name = "app"
dependencies = [
    "requests>=2.28,<3",
    "click~=8.1",
    "rich[jupyter]>=13.0 ; python_version >= '3.9'",
]

[project.optional-dependencies]
dev = ["pytest>=7.0"]

[dependency-groups]
lint = ["ruff==0.4.0"]
`
	parser := &PythonParser{Manager: models.Uv}
	deps, err := parser.Parse("pyproject.toml", []byte(manifest))
	require.NoError(t, err)
	require.Len(t, deps, 5)

	requests := findDep(t, deps, "requests")
	assert.Equal(t, ">=2.28,<3", requests.Requirement)
	assert.Equal(t, models.KindRuntime, requests.Kind)
	assert.Equal(t, models.Uv, requests.Manager)

	rich := findDep(t, deps, "rich")
	assert.Equal(t, []string{"jupyter"}, rich.Meta.Features)
	assert.Equal(t, ">=13.0", rich.Requirement)

	pytest := findDep(t, deps, "pytest")
	assert.Equal(t, models.KindOptional, pytest.Kind)
	assert.Equal(t, []string{"dev"}, pytest.Meta.Features)

	assert.Equal(t, models.KindDev, findDep(t, deps, "ruff").Kind)
}

func TestPythonParsePoetryTables(t *testing.T) {
	manifest := `
[tool.poetry.dependencies]
python = "^3.11"
django = "^5.0"
internal = { path = "../internal" }
experimental = { git = "https://github.com/org/experimental", optional = true }

[tool.poetry.group.dev.dependencies]
black = "^24.0"
`
	parser := &PythonParser{Manager: models.Poetry}
	deps, err := parser.Parse("pyproject.toml", []byte(manifest))
	require.NoError(t, err)

	// The python interpreter constraint is not a dependency.
	for _, d := range deps {
		assert.NotEqual(t, "python", d.Name)
	}
	require.Len(t, deps, 4)

	assert.Equal(t, "^5.0", findDep(t, deps, "django").Requirement)
	assert.Equal(t, "../internal", findDep(t, deps, "internal").Meta.Path)

	exp := findDep(t, deps, "experimental")
	assert.NotEmpty(t, exp.Meta.GitURL)
	assert.Equal(t, models.KindOptional, exp.Kind)

	assert.Equal(t, models.KindDev, findDep(t, deps, "black").Kind)
}

func TestPythonParseRequirementsTxt(t *testing.T) {
	content := `# pinned deps
requests==2.31.0
flask>=2.0  # inline comment
-r other.txt
-e .
https://example.com/pkg.tar.gz

numpy
`
	parser := &PythonParser{Manager: models.Pip}
	deps, err := parser.Parse("requirements.txt", []byte(content))
	require.NoError(t, err)
	require.Len(t, deps, 3)

	assert.Equal(t, "==2.31.0", findDep(t, deps, "requests").Requirement)
	assert.Equal(t, ">=2.0", findDep(t, deps, "flask").Requirement)
	assert.Empty(t, findDep(t, deps, "numpy").Requirement)
}

func TestPythonParseInvalidTOML(t *testing.T) {
	_, err := (&PythonParser{Manager: models.Pip}).Parse("pyproject.toml", []byte("[project\nbroken"))
	var parseErr *models.ManifestParseError
	assert.ErrorAs(t, err, &parseErr)
}
