// Package gitinfo inspects a local git repository through the git CLI
// and classifies its remotes by hosting provider. Fast inspection is
// purely local; deep inspection additionally contacts each remote.
package gitinfo

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/reposniff/reposniff/internal/models"
)

// Inspector reads repository state for one git worktree.
type Inspector struct {
	root   string
	logger *log.Logger
}

// New locates the repository containing path by walking upward to the
// nearest .git and returns an inspector rooted there. A path outside
// any repository returns *models.NotARepositoryError.
func New(path string, logger *log.Logger) (*Inspector, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	root, err := discoverRoot(abs)
	if err != nil {
		return nil, err
	}
	return &Inspector{root: root, logger: logger}, nil
}

// Root returns the repository's top-level directory.
func (i *Inspector) Root() string { return i.root }

func discoverRoot(path string) (string, error) {
	out, err := runGitIn(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", &models.NotARepositoryError{Path: path}
	}
	return strings.TrimSpace(out), nil
}

// Inspect collects local repository state. deep additionally queries
// each remote for its branches and for whether it has the local HEAD;
// per-remote network failures are recorded on the remote, never
// propagated.
func (i *Inspector) Inspect(ctx context.Context, deep bool) (*models.GitInfo, error) {
	info := &models.GitInfo{Root: i.root}

	branch, err := i.run("rev-parse", "--abbrev-ref", "HEAD")
	if err == nil {
		info.CurrentBranch = strings.TrimSpace(branch)
	}
	// Unborn HEAD (fresh init, no commits) leaves HeadCommit empty.
	if sha, err := i.run("rev-parse", "HEAD"); err == nil {
		info.HeadCommit = strings.TrimSpace(sha)
	}

	info.Status = i.status()
	info.Branches = i.branchSummary()
	info.RecentCommits = i.recentCommits(5)
	info.Remotes = i.remotes(ctx, deep, info.HeadCommit)
	return info, nil
}

// status parses `git status --porcelain`. The two-letter prefix encodes
// staged (first column) and unstaged (second column) changes.
func (i *Inspector) status() models.RepoStatus {
	var status models.RepoStatus
	out, err := i.run("status", "--porcelain")
	if err != nil {
		return status
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 2 {
			continue
		}
		status.IsDirty = true
		switch {
		case strings.HasPrefix(line, "??"):
			status.UntrackedCount++
		default:
			if line[0] != ' ' {
				status.StagedCount++
			}
			if line[1] != ' ' {
				status.UnstagedCount++
			}
		}
	}
	return status
}

func (i *Inspector) branchSummary() models.BranchSummary {
	var summary models.BranchSummary
	if out, err := i.run("branch", "--format", "%(refname:short)"); err == nil {
		summary.Local = countLines(out)
	}
	if out, err := i.run("branch", "-r", "--format", "%(refname:short)"); err == nil {
		summary.Remote = countLines(out)
	}
	// origin/HEAD names the default branch when it is configured.
	if out, err := i.run("symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		summary.Default = strings.TrimPrefix(strings.TrimSpace(out), "refs/remotes/origin/")
	}
	return summary
}

// recentCommits reads the last n commits with a unit-separator format
// so commit messages containing "|" cannot break parsing.
func (i *Inspector) recentCommits(n int) []models.CommitInfo {
	out, err := i.run("log", "-n", strconv.Itoa(n), "--format=%H%x1f%s%x1f%an%x1f%at")
	if err != nil {
		return nil
	}
	var commits []models.CommitInfo
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.Split(line, "\x1f")
		if len(parts) != 4 {
			continue
		}
		unix, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			continue
		}
		commits = append(commits, models.CommitInfo{
			SHA:       parts[0],
			Message:   parts[1],
			Author:    parts[2],
			Timestamp: time.Unix(unix, 0).UTC(),
		})
	}
	return commits
}

func (i *Inspector) remotes(ctx context.Context, deep bool, headSHA string) []models.RemoteInfo {
	out, err := i.run("remote")
	if err != nil {
		return nil
	}
	names := strings.Fields(out)
	sort.Strings(names)

	remotes := make([]models.RemoteInfo, 0, len(names))
	for _, name := range names {
		remote := models.RemoteInfo{Name: name, Provider: models.UnknownHost}
		if url, err := i.run("remote", "get-url", name); err == nil {
			remote.URL = strings.TrimSpace(url)
			remote.Provider = models.ProviderFromURL(remote.URL)
		}
		if deep && remote.URL != "" {
			i.probeRemote(ctx, &remote, headSHA)
		}
		remotes = append(remotes, remote)
	}
	return remotes
}

// probeRemote lists the remote's branch heads over the network and
// checks whether any of them points at the local HEAD.
func (i *Inspector) probeRemote(ctx context.Context, remote *models.RemoteInfo, headSHA string) {
	out, err := i.runCtx(ctx, "ls-remote", "--heads", remote.URL)
	if err != nil {
		remote.Error = err.Error()
		if i.logger != nil {
			i.logger.Warn("remote probe failed", "remote", remote.Name, "err", err)
		}
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		remote.Branches = append(remote.Branches, strings.TrimPrefix(fields[1], "refs/heads/"))
		if headSHA != "" && fields[0] == headSHA {
			remote.ContainsHead = true
		}
	}
	sort.Strings(remote.Branches)
}

func (i *Inspector) run(args ...string) (string, error) {
	return runGitIn(i.root, args...)
}

func (i *Inspector) runCtx(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = i.root
	out, err := cmd.Output()
	if err != nil {
		return "", gitError(args, err)
	}
	return string(out), nil
}

func runGitIn(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", gitError(args, err)
	}
	return string(out), nil
}

func gitError(args []string, err error) error {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
	}
	return err
}

func countLines(out string) int {
	out = strings.TrimSpace(out)
	if out == "" {
		return 0
	}
	return len(strings.Split(out, "\n"))
}
