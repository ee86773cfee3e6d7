package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposniff/reposniff/internal/models"
)

func TestGoModParse(t *testing.T) {
	manifest := `module example.com/app

go 1.24

require (
	github.com/spf13/cobra v1.10.2
	gopkg.in/yaml.v3 v3.0.1
)

require github.com/inconshreveable/mousetrap v1.1.0 // indirect

replace gopkg.in/yaml.v3 => ../yaml
`
	deps, err := (&GoModParser{}).Parse("go.mod", []byte(manifest))
	require.NoError(t, err)
	require.Len(t, deps, 2)

	cobra := findDep(t, deps, "github.com/spf13/cobra")
	assert.Equal(t, "v1.10.2", cobra.Requirement)
	assert.Equal(t, models.GoMod, cobra.Manager)

	yaml := findDep(t, deps, "gopkg.in/yaml.v3")
	assert.Equal(t, "../yaml", yaml.Meta.Path)
}

func TestComposerParse(t *testing.T) {
	manifest := `{
  "require": {
    "php": ">=8.1",
    "ext-json": "*",
    "symfony/console": "^6.4",
    "guzzlehttp/guzzle": "~7.8"
  },
  "require-dev": {
    "phpunit/phpunit": "^10.0"
  }
}`
	deps, err := (&ComposerParser{}).Parse("composer.json", []byte(manifest))
	require.NoError(t, err)
	require.Len(t, deps, 3)

	console := findDep(t, deps, "symfony/console")
	assert.Equal(t, "^6.4", console.Requirement)
	assert.Equal(t, models.KindRuntime, console.Kind)
	assert.Equal(t, models.KindDev, findDep(t, deps, "phpunit/phpunit").Kind)
}

func TestMavenParse(t *testing.T) {
	manifest := `<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>app</artifactId>
  <properties>
    <jackson.version>2.17.0</jackson.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>com.fasterxml.jackson.core</groupId>
      <artifactId>jackson-databind</artifactId>
      <version>${jackson.version}</version>
    </dependency>
    <dependency>
      <groupId>org.junit.jupiter</groupId>
      <artifactId>junit-jupiter</artifactId>
      <version>5.10.0</version>
      <scope>test</scope>
    </dependency>
    <dependency>
      <groupId>org.projectlombok</groupId>
      <artifactId>lombok</artifactId>
      <version>1.18.30</version>
      <optional>true</optional>
    </dependency>
  </dependencies>
</project>`
	deps, err := (&MavenParser{}).Parse("pom.xml", []byte(manifest))
	require.NoError(t, err)
	require.Len(t, deps, 3)

	jackson := findDep(t, deps, "com.fasterxml.jackson.core:jackson-databind")
	assert.Equal(t, "2.17.0", jackson.Requirement)
	assert.Equal(t, models.KindRuntime, jackson.Kind)

	assert.Equal(t, models.KindDev, findDep(t, deps, "org.junit.jupiter:junit-jupiter").Kind)
	assert.Equal(t, models.KindOptional, findDep(t, deps, "org.projectlombok:lombok").Kind)
}

func TestGemfileParse(t *testing.T) {
	content := `source "https://rubygems.org"

gem "rails", "~> 7.1.0"
gem "pg", ">= 1.1", "< 2.0"
gem "internal", path: "../internal"
gem "sidekiq-fork", git: "https://github.com/org/sidekiq"

group :development, :test do
  gem "rspec-rails"
end
`
	deps, err := (&GemfileParser{}).Parse("Gemfile", []byte(content))
	require.NoError(t, err)
	require.Len(t, deps, 5)

	rails := findDep(t, deps, "rails")
	assert.Equal(t, "~> 7.1.0", rails.Requirement)
	assert.Equal(t, models.KindRuntime, rails.Kind)

	pg := findDep(t, deps, "pg")
	assert.Equal(t, ">= 1.1, < 2.0", pg.Requirement)

	assert.Equal(t, "../internal", findDep(t, deps, "internal").Meta.Path)
	assert.Equal(t, "https://github.com/org/sidekiq", findDep(t, deps, "sidekiq-fork").Meta.GitURL)
	assert.Equal(t, models.KindDev, findDep(t, deps, "rspec-rails").Kind)
}

func TestForSelection(t *testing.T) {
	assert.IsType(t, &CargoParser{}, For(models.Cargo))
	assert.IsType(t, &NodeParser{}, For(models.Yarn))
	assert.IsType(t, &PythonParser{}, For(models.Pdm))
	assert.IsType(t, &GoModParser{}, For(models.GoMod))
	assert.Nil(t, For(models.Gradle))

	node := For(models.Bun).(*NodeParser)
	assert.Equal(t, models.Bun, node.Manager)
}
