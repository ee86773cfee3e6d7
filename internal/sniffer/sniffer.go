// Package sniffer orchestrates a full repository analysis: manifest
// detection, parsing, lockfile resolution, optional registry
// enrichment, and git inspection.
package sniffer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/reposniff/reposniff/internal/cache"
	"github.com/reposniff/reposniff/internal/detect"
	"github.com/reposniff/reposniff/internal/gitinfo"
	"github.com/reposniff/reposniff/internal/lockfiles"
	"github.com/reposniff/reposniff/internal/models"
	"github.com/reposniff/reposniff/internal/parsers"
	"github.com/reposniff/reposniff/internal/registry"
)

// Result is everything one analysis run produced.
type Result struct {
	Report   *models.DependencyReport `json:"report"`
	Monorepo *models.MonorepoInfo     `json:"monorepo"`
	// Git is nil when the analyzed tree is not inside a repository.
	Git *models.GitInfo `json:"git,omitempty"`
}

// Sniffer runs analyses under one configuration.
type Sniffer struct {
	config *models.Config
	logger *log.Logger
	cache  *cache.Cache
}

// New creates a Sniffer with the given configuration.
func New(config *models.Config, logger *log.Logger) *Sniffer {
	var c *cache.Cache
	if !config.NoCache {
		c = cache.New(config.CacheTTL)
	}
	return &Sniffer{config: config, logger: logger, cache: c}
}

// Run analyzes the configured root. Scoped failures (one bad manifest,
// one unreachable registry, a missing git repository) degrade into
// diagnostics or omitted sections; only root-level filesystem errors
// fail the run.
func (s *Sniffer) Run(ctx context.Context) (*Result, error) {
	report, err := s.analyzeDependencies(ctx)
	if err != nil {
		return nil, err
	}

	monorepo, err := detect.Monorepo(s.config.Root)
	if err != nil {
		return nil, fmt.Errorf("monorepo detection failed: %w", err)
	}

	result := &Result{Report: report, Monorepo: monorepo}

	inspector, err := gitinfo.New(s.config.Root, s.logger)
	if err != nil {
		s.logger.Debug("git inspection skipped", "err", err)
		return result, nil
	}
	git, err := inspector.Inspect(ctx, s.config.DeepGit)
	if err != nil {
		s.logger.Warn("git inspection failed", "err", err)
		return result, nil
	}
	result.Git = git
	return result, nil
}

func (s *Sniffer) analyzeDependencies(ctx context.Context) (*models.DependencyReport, error) {
	manifests, detectDiags, err := detect.PackageManagers(s.config.Root)
	if err != nil {
		return nil, fmt.Errorf("manifest detection failed: %w", err)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Path < manifests[j].Path })

	report := &models.DependencyReport{
		DetectedManagers: detect.Managers(manifests),
		Packages:         []models.PackageDependencies{},
		Diagnostics:      detectDiags,
	}

	for _, manifest := range manifests {
		pkg := s.analyzePackage(manifest)
		report.Packages = append(report.Packages, pkg)
	}

	if s.config.Enrich {
		s.enrich(ctx, report)
	}

	report.Summary = summarize(report)
	return report, nil
}

// analyzePackage parses one manifest and resolves it against its
// sibling lockfile. Parse and lockfile failures become diagnostics on
// the package entry.
func (s *Sniffer) analyzePackage(manifest detect.DetectedManifest) models.PackageDependencies {
	pkg := models.PackageDependencies{
		Name:         packageName(manifest),
		Path:         manifest.Path,
		Manager:      manifest.Manager,
		Dependencies: []models.Dependency{},
	}

	lockPath := detect.LockfilePath(manifest.Manager, manifest.Dir)
	pkg.HasLockfile = lockPath != ""

	content, err := os.ReadFile(filepath.Join(manifest.Dir, filepath.Base(manifest.Path)))
	if err != nil {
		pkg.Diagnostics = append(pkg.Diagnostics, models.Diagnostic{Path: manifest.Path, Message: err.Error()})
		return pkg
	}

	parser := parsers.For(manifest.Manager)
	if parser == nil {
		// Detected but not parseable (Gradle build scripts).
		return pkg
	}
	deps, err := parser.Parse(manifest.Path, content)
	if err != nil {
		pkg.Diagnostics = append(pkg.Diagnostics, models.Diagnostic{Path: manifest.Path, Message: err.Error()})
		return pkg
	}

	if lockPath != "" {
		if err := lockfiles.Apply(lockPath, deps); err != nil {
			pkg.Diagnostics = append(pkg.Diagnostics, models.Diagnostic{Path: lockPath, Message: err.Error()})
		}
	}

	// An empty dependency section stays an empty list, not null.
	if deps != nil {
		pkg.Dependencies = deps
	}
	return pkg
}

func (s *Sniffer) enrich(ctx context.Context, report *models.DependencyReport) {
	opts := registry.Options{Cache: s.cache, Timeout: s.config.Timeout, Logger: s.logger}
	enricher := registry.NewEnricher(opts, s.config.MaxConcurrent, registry.NewAdvisoryClient(opts))
	enriched, diagnostics := enricher.Enrich(ctx, report.Packages)
	report.Enriched = enriched
	report.Diagnostics = append(report.Diagnostics, diagnostics...)
}

// packageName derives a display name for the package from its manifest
// directory, falling back to the root directory's own name.
func packageName(manifest detect.DetectedManifest) string {
	dir := filepath.Dir(manifest.Path)
	if dir == "." {
		return filepath.Base(manifest.Dir)
	}
	return filepath.ToSlash(dir)
}

func summarize(report *models.DependencyReport) models.DependencySummary {
	var summary models.DependencySummary
	unique := make(map[string]bool)
	for _, pkg := range report.Packages {
		for _, dep := range pkg.Dependencies {
			summary.Total++
			switch dep.Kind {
			case models.KindDev:
				summary.Dev++
			case models.KindRuntime:
				summary.Runtime++
			}
			unique[string(dep.Manager.Family())+"\x00"+dep.Name] = true
		}
	}
	summary.UniqueDependencies = len(unique)
	for _, info := range report.Enriched {
		if info.UpdateStatus.Outdated() {
			summary.Outdated++
		}
		summary.SecurityIssues += len(info.Advisories)
	}
	return summary
}
