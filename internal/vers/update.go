package vers

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/reposniff/reposniff/internal/models"
)

// Classify compares the version a package currently has (its resolved
// version, or the lowest satisfying version when no lockfile pinned one)
// against the latest registry version. Unparseable input on either side
// yields UnknownStatus rather than a guess.
func Classify(req Requirement, current, latest string) models.UpdateStatus {
	if !req.Parseable() || current == "" || latest == "" {
		return models.UnknownStatus
	}

	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return models.UnknownStatus
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return models.UnknownStatus
	}

	if !lat.GreaterThan(cur) {
		return models.UpToDate
	}
	switch {
	case lat.Major() > cur.Major():
		return models.MajorAvailable
	case lat.Minor() > cur.Minor():
		return models.MinorAvailable
	default:
		return models.PatchAvailable
	}
}
