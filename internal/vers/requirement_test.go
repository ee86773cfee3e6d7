package vers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reposniff/reposniff/internal/models"
)

func TestCargoBareVersionIsCaret(t *testing.T) {
	req := Parse("1.2.0", models.Cargo)
	assert.True(t, req.Parseable())
	assert.True(t, req.Matches("1.2.0"))
	assert.True(t, req.Matches("1.2.5"))
	assert.True(t, req.Matches("1.9.9"))
	assert.False(t, req.Matches("2.0.0"))
	assert.False(t, req.Matches("1.1.9"))
}

func TestCargoZeroMajorCaret(t *testing.T) {
	req := Parse("0.3.1", models.Cargo)
	assert.True(t, req.Matches("0.3.9"))
	assert.False(t, req.Matches("0.4.0"))
}

func TestNpmBareVersionIsExact(t *testing.T) {
	req := Parse("1.2.0", models.Npm)
	assert.True(t, req.Matches("1.2.0"))
	assert.False(t, req.Matches("1.2.5"))
}

func TestNpmTilde(t *testing.T) {
	req := Parse("~1.2.3", models.Npm)
	assert.True(t, req.Matches("1.2.9"))
	assert.False(t, req.Matches("1.3.0"))
}

func TestNpmCompoundRanges(t *testing.T) {
	req := Parse("^1.0.0 || ^2.0.0", models.Yarn)
	assert.True(t, req.Matches("1.5.0"))
	assert.True(t, req.Matches("2.3.0"))
	assert.False(t, req.Matches("3.0.0"))
}

func TestComposerTildeWidensToNextMajor(t *testing.T) {
	req := Parse("~1.2", models.Composer)
	assert.True(t, req.Matches("1.2.0"))
	assert.True(t, req.Matches("1.9.0"))
	assert.False(t, req.Matches("2.0.0"))

	// Three-segment tilde keeps npm semantics.
	req = Parse("~1.2.3", models.Composer)
	assert.True(t, req.Matches("1.2.9"))
	assert.False(t, req.Matches("1.3.0"))
}

func TestPythonCompatibleRelease(t *testing.T) {
	req := Parse("~=1.4.2", models.Pip)
	assert.True(t, req.Matches("1.4.2"))
	assert.True(t, req.Matches("1.4.9"))
	assert.False(t, req.Matches("1.5.0"))
}

func TestPythonWildcardEquality(t *testing.T) {
	req := Parse("==1.4.*", models.Poetry)
	assert.True(t, req.Matches("1.4.0"))
	assert.True(t, req.Matches("1.4.7"))
	assert.False(t, req.Matches("1.5.0"))
}

func TestPythonCompoundSpecifier(t *testing.T) {
	req := Parse(">=2.28,<3", models.Pip)
	assert.True(t, req.Matches("2.31.0"))
	assert.False(t, req.Matches("3.0.0"))
	assert.False(t, req.Matches("2.27.0"))
}

func TestRubyPessimisticOperator(t *testing.T) {
	req := Parse("~> 7.0", models.Bundler)
	assert.True(t, req.Matches("7.1.0"))
	assert.False(t, req.Matches("8.0.0"))
}

func TestGoModExact(t *testing.T) {
	req := Parse("v1.9.1", models.GoMod)
	assert.True(t, req.Parseable())
	assert.True(t, req.Matches("v1.9.1"))
	assert.False(t, req.Matches("v1.9.2"))
}

func TestWildcardMatchesEverything(t *testing.T) {
	req := Parse("*", models.Npm)
	assert.True(t, req.Matches("0.0.1"))
	assert.True(t, req.Matches("99.0.0"))
}

func TestUnparseableDegradesToOther(t *testing.T) {
	req := Parse("not a version", models.Npm)
	assert.Equal(t, GrammarOther, req.Grammar)
	assert.False(t, req.Parseable())
	assert.False(t, req.Matches("1.0.0"))
}

func TestLatestSatisfyingPicksHighest(t *testing.T) {
	req := Parse("^1.0.0", models.Npm)
	got := req.LatestSatisfying([]string{"1.0.0", "1.4.2", "2.0.0", "1.2.0"})
	assert.Equal(t, "1.4.2", got)
}

func TestLatestSatisfyingNoneMatches(t *testing.T) {
	req := Parse("^3.0.0", models.Npm)
	assert.Empty(t, req.LatestSatisfying([]string{"1.0.0", "2.0.0"}))
}

func TestMinSatisfyingPicksLowest(t *testing.T) {
	req := Parse("^1.0.0", models.Npm)
	got := req.MinSatisfying([]string{"1.4.2", "1.0.0", "2.0.0", "1.2.0"})
	assert.Equal(t, "1.0.0", got)
}

func TestMinSatisfyingNoneMatches(t *testing.T) {
	req := Parse("^3.0.0", models.Npm)
	assert.Empty(t, req.MinSatisfying([]string{"1.0.0", "2.0.0"}))
}

func TestClassify(t *testing.T) {
	req := Parse("^1.2.0", models.Npm)
	assert.Equal(t, models.UpToDate, Classify(req, "1.2.3", "1.2.3"))
	assert.Equal(t, models.PatchAvailable, Classify(req, "1.2.3", "1.2.4"))
	assert.Equal(t, models.MinorAvailable, Classify(req, "1.2.3", "1.3.0"))
	assert.Equal(t, models.MajorAvailable, Classify(req, "1.2.3", "2.0.0"))
}

func TestClassifyUnknownOnMissingData(t *testing.T) {
	req := Parse("^1.0.0", models.Npm)
	assert.Equal(t, models.UnknownStatus, Classify(req, "", "1.0.0"))
	assert.Equal(t, models.UnknownStatus, Classify(req, "1.0.0", ""))
	assert.Equal(t, models.UnknownStatus, Classify(Parse("garbage", models.Npm), "1.0.0", "2.0.0"))
}
