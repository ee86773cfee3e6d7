package reporter

import (
	"fmt"
	"strings"

	"github.com/reposniff/reposniff/internal/models"
	"github.com/reposniff/reposniff/internal/sniffer"
)

// TerminalReporter outputs the analysis result in a human-readable
// terminal format
type TerminalReporter struct{}

// Report renders the result section by section. Sections with nothing
// to say (no monorepo, no git repository, no enrichment) are omitted
// rather than printed empty.
func (r *TerminalReporter) Report(result *sniffer.Result) ([]byte, error) {
	var sb strings.Builder

	writeDependencies(&sb, result.Report)
	if result.Monorepo != nil && result.Monorepo.IsMonorepo {
		writeMonorepo(&sb, result.Monorepo)
	}
	if result.Git != nil {
		writeGit(&sb, result.Git)
	}
	writeDiagnostics(&sb, result.Report.Diagnostics)

	return []byte(sb.String()), nil
}

func writeDependencies(sb *strings.Builder, report *models.DependencyReport) {
	if len(report.Packages) == 0 {
		sb.WriteString("No package manifests found.\n")
		return
	}

	sb.WriteString("\nDEPENDENCIES\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	managers := make([]string, 0, len(report.DetectedManagers))
	for _, pm := range report.DetectedManagers {
		managers = append(managers, string(pm))
	}
	sb.WriteString(fmt.Sprintf("Package managers: %s\n\n", strings.Join(managers, ", ")))

	for _, pkg := range report.Packages {
		lock := "no lockfile"
		if pkg.HasLockfile {
			lock = "locked"
		}
		sb.WriteString(fmt.Sprintf("📦 %s (%s, %s)\n", pkg.Name, pkg.Manager, lock))
		for _, dep := range pkg.Dependencies {
			sb.WriteString("   " + formatDependency(dep) + "\n")
		}
		for _, diag := range pkg.Diagnostics {
			sb.WriteString(fmt.Sprintf("   ⚠️  %s: %s\n", diag.Path, diag.Message))
		}
		sb.WriteString("\n")
	}

	if len(report.Enriched) > 0 {
		writeEnriched(sb, report.Enriched)
	}

	s := report.Summary
	sb.WriteString(fmt.Sprintf("Total: %d dependencies (%d runtime, %d dev, %d unique)\n",
		s.Total, s.Runtime, s.Dev, s.UniqueDependencies))
	if s.Outdated > 0 || s.SecurityIssues > 0 {
		sb.WriteString(fmt.Sprintf("Outdated: %d | Security advisories: %d\n", s.Outdated, s.SecurityIssues))
	}
}

func formatDependency(dep models.Dependency) string {
	var parts []string
	req := dep.Requirement
	if req == "" {
		req = "*"
	}
	parts = append(parts, fmt.Sprintf("%s %s", dep.Name, req))
	if dep.ResolvedVersion != "" {
		pin := fmt.Sprintf("→ %s", dep.ResolvedVersion)
		if dep.ResolutionAmbiguous {
			pin += " (ambiguous)"
		}
		parts = append(parts, pin)
	}
	if dep.Kind != models.KindRuntime {
		parts = append(parts, "["+string(dep.Kind)+"]")
	}
	switch {
	case dep.Meta.Workspace:
		parts = append(parts, "(workspace)")
	case dep.Meta.GitURL != "":
		parts = append(parts, "(git)")
	case dep.Meta.Path != "":
		parts = append(parts, "(path)")
	}
	return strings.Join(parts, " ")
}

func writeEnriched(sb *strings.Builder, enriched []models.DependencyVersionInfo) {
	var lines []string
	for _, info := range enriched {
		if !info.UpdateStatus.Outdated() && len(info.Advisories) == 0 {
			continue
		}
		line := fmt.Sprintf("   %s %s", info.Name, info.ResolvedVersion)
		if info.ResolvedVersion == "" {
			line = fmt.Sprintf("   %s %s", info.Name, info.Requirement)
		}
		if info.LatestVersion != "" {
			line += fmt.Sprintf(" → latest %s", info.LatestVersion)
		}
		line += fmt.Sprintf(" [%s]", info.UpdateStatus)
		lines = append(lines, line)
		for _, adv := range info.Advisories {
			lines = append(lines, fmt.Sprintf("      🔴 %s (%s) %s", adv.ID, adv.Severity, adv.Title))
		}
	}
	if len(lines) == 0 {
		sb.WriteString("All enriched dependencies up to date.\n\n")
		return
	}
	sb.WriteString("UPDATES AND ADVISORIES\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, line := range lines {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

func writeMonorepo(sb *strings.Builder, info *models.MonorepoInfo) {
	sb.WriteString("MONOREPO\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	tools := make([]string, 0, len(info.Tools))
	for _, t := range info.Tools {
		tools = append(tools, string(t))
	}
	sb.WriteString(fmt.Sprintf("Tooling: %s\n", strings.Join(tools, ", ")))
	if len(info.Packages) == 0 {
		sb.WriteString("Declared workspace globs match no packages on disk.\n\n")
		return
	}
	sb.WriteString(fmt.Sprintf("Packages (%d):\n", len(info.Packages)))
	for _, pkg := range info.Packages {
		sb.WriteString("   " + pkg.Name + "\n")
	}
	sb.WriteString("\n")
}

func writeGit(sb *strings.Builder, git *models.GitInfo) {
	sb.WriteString("GIT\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	sb.WriteString(fmt.Sprintf("Branch: %s", git.CurrentBranch))
	if git.HeadCommit != "" {
		sb.WriteString(" @ " + shortSHA(git.HeadCommit))
	}
	sb.WriteString("\n")

	if git.Status.IsDirty {
		sb.WriteString(fmt.Sprintf("Working tree: dirty (%d staged, %d unstaged, %d untracked)\n",
			git.Status.StagedCount, git.Status.UnstagedCount, git.Status.UntrackedCount))
	} else {
		sb.WriteString("Working tree: clean\n")
	}
	sb.WriteString(fmt.Sprintf("Branches: %d local, %d remote\n", git.Branches.Local, git.Branches.Remote))

	for _, remote := range git.Remotes {
		sb.WriteString(fmt.Sprintf("Remote %s: %s (%s)", remote.Name, remote.URL, remote.Provider))
		if remote.Error != "" {
			sb.WriteString(" ⚠️  " + remote.Error)
		} else if len(remote.Branches) > 0 {
			sb.WriteString(fmt.Sprintf(", %d branches", len(remote.Branches)))
			if remote.ContainsHead {
				sb.WriteString(", has HEAD")
			}
		}
		sb.WriteString("\n")
	}

	if len(git.RecentCommits) > 0 {
		sb.WriteString("Recent commits:\n")
		for _, c := range git.RecentCommits {
			sb.WriteString(fmt.Sprintf("   %s %s (%s, %s)\n",
				shortSHA(c.SHA), c.Message, c.Author, c.Timestamp.Format("2006-01-02")))
		}
	}
	sb.WriteString("\n")
}

func writeDiagnostics(sb *strings.Builder, diagnostics []models.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}
	sb.WriteString("DIAGNOSTICS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, diag := range diagnostics {
		if diag.Path != "" {
			sb.WriteString(fmt.Sprintf("   %s: %s\n", diag.Path, diag.Message))
			continue
		}
		sb.WriteString("   " + diag.Message + "\n")
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
