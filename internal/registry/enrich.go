package registry

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/reposniff/reposniff/internal/models"
	"github.com/reposniff/reposniff/internal/vers"
)

// Enricher fans dependency lookups out to registry clients with a
// bounded degree of concurrency. Lookup failures degrade the affected
// dependency to UnknownStatus instead of failing the run.
type Enricher struct {
	opts          Options
	maxConcurrent int64
	advisories    *AdvisoryClient

	mu      sync.Mutex
	clients map[models.PackageManager]Client
}

// NewEnricher creates an enricher. maxConcurrent bounds in-flight
// registry requests; zero means 8. advisories may be nil to skip
// vulnerability lookups.
func NewEnricher(opts Options, maxConcurrent int, advisories *AdvisoryClient) *Enricher {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &Enricher{
		opts:          opts,
		maxConcurrent: int64(maxConcurrent),
		advisories:    advisories,
		clients:       make(map[models.PackageManager]Client),
	}
}

func (e *Enricher) clientFor(pm models.PackageManager) Client {
	family := pm.Family()
	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.clients[family]; ok {
		return c
	}
	c := For(pm, e.opts)
	e.clients[family] = c
	return c
}

// Enrich looks up every registry-eligible dependency in packages and
// returns version info in the dependencies' original order. Results
// join back to their dependency by identity, never by list position in
// the registry response. Cancelling ctx stops new lookups; completed
// results are still returned.
func (e *Enricher) Enrich(ctx context.Context, packages []models.PackageDependencies) ([]models.DependencyVersionInfo, []models.Diagnostic) {
	var eligible []models.Dependency
	for _, pkg := range packages {
		for _, dep := range pkg.Dependencies {
			if dep.RegistryEligible() && e.clientFor(dep.Manager) != nil {
				eligible = append(eligible, dep)
			}
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	results := make([]models.DependencyVersionInfo, len(eligible))
	var diagMu sync.Mutex
	var diagnostics []models.Diagnostic

	sem := semaphore.NewWeighted(e.maxConcurrent)
	var wg sync.WaitGroup
	for i := range eligible {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled: mark the rest unknown and stop.
			for j := i; j < len(eligible); j++ {
				results[j] = models.DependencyVersionInfo{Dependency: eligible[j], UpdateStatus: models.UnknownStatus}
			}
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			info, diag := e.enrichOne(ctx, eligible[i])
			results[i] = info
			if diag != nil {
				diagMu.Lock()
				diagnostics = append(diagnostics, *diag)
				diagMu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	return results, diagnostics
}

func (e *Enricher) enrichOne(ctx context.Context, dep models.Dependency) (models.DependencyVersionInfo, *models.Diagnostic) {
	info := models.DependencyVersionInfo{Dependency: dep, UpdateStatus: models.UnknownStatus}

	name := dep.Name
	if dep.Meta.AliasOf != "" {
		name = dep.Meta.AliasOf
	}
	client := e.clientFor(dep.Manager)
	pkg, err := client.Lookup(ctx, name)
	if err != nil {
		return info, &models.Diagnostic{Path: dep.Name, Message: err.Error()}
	}

	info.LatestVersion = pkg.LatestVersion
	req := vers.Parse(dep.Requirement, dep.Manager)
	info.LatestSatisfying = req.LatestSatisfying(pkg.Versions)

	// The dependency's current version is what the lockfile pinned; an
	// unlocked dependency is judged by the lowest version its
	// requirement admits.
	current := dep.ResolvedVersion
	if current == "" {
		current = req.MinSatisfying(pkg.Versions)
	}
	info.UpdateStatus = vers.Classify(req, current, pkg.LatestVersion)

	if e.advisories != nil {
		advisories, err := e.advisories.Advisories(ctx, dep)
		if err != nil {
			return info, &models.Diagnostic{Path: dep.Name, Message: err.Error()}
		}
		info.Advisories = advisories
	}
	return info, nil
}
