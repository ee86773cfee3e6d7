package models

import (
	"strings"
	"time"
)

// HostingProvider is the code-hosting platform behind a git remote.
type HostingProvider string

const (
	GitHub        HostingProvider = "github"
	GitLab        HostingProvider = "gitlab"
	Bitbucket     HostingProvider = "bitbucket"
	AzureDevOps   HostingProvider = "azure-devops"
	AwsCodeCommit HostingProvider = "aws-codecommit"
	SourceHut     HostingProvider = "sourcehut"
	SelfHosted    HostingProvider = "self-hosted"
	UnknownHost   HostingProvider = "unknown"
)

// ProviderFromURL classifies a git remote URL. The URL is normalized by
// stripping scheme and user prefixes before matching known hosts. A URL
// that looks like a host but matches nothing is SelfHosted; anything
// else is UnknownHost.
func ProviderFromURL(url string) HostingProvider {
	normalized := strings.TrimPrefix(url, "ssh://")
	normalized = strings.TrimPrefix(normalized, "git+ssh://")
	normalized = strings.TrimPrefix(normalized, "https://")
	normalized = strings.TrimPrefix(normalized, "http://")
	normalized = strings.TrimPrefix(normalized, "git://")
	normalized = strings.TrimPrefix(normalized, "git@")
	if at := strings.Index(normalized, "@"); at >= 0 {
		normalized = normalized[at+1:]
	}

	switch {
	case strings.HasPrefix(normalized, "github.com"):
		return GitHub
	case strings.HasPrefix(normalized, "gitlab.com"):
		return GitLab
	case strings.HasPrefix(normalized, "bitbucket.org"):
		return Bitbucket
	case strings.Contains(normalized, "dev.azure.com"), strings.Contains(normalized, "visualstudio.com"):
		return AzureDevOps
	case strings.Contains(normalized, "codecommit") && strings.Contains(normalized, "amazonaws.com"):
		return AwsCodeCommit
	case strings.Contains(normalized, "sr.ht"):
		return SourceHut
	case strings.Contains(normalized, "."):
		return SelfHosted
	}
	return UnknownHost
}

// RemoteInfo is one configured git remote.
type RemoteInfo struct {
	Name     string          `json:"name"`
	URL      string          `json:"url,omitempty"`
	Provider HostingProvider `json:"provider"`
	// Branches is populated only in deep mode.
	Branches []string `json:"branches,omitempty"`
	// ContainsHead reports whether the remote has the local HEAD commit.
	// Only meaningful in deep mode.
	ContainsHead bool `json:"contains_head,omitempty"`
	// Error records a per-remote network failure; other remotes are
	// unaffected.
	Error string `json:"error,omitempty"`
}

// RepoStatus summarizes the working tree.
type RepoStatus struct {
	IsDirty        bool `json:"is_dirty"`
	StagedCount    int  `json:"staged_count"`
	UnstagedCount  int  `json:"unstaged_count"`
	UntrackedCount int  `json:"untracked_count"`
}

// CommitInfo is metadata for one commit.
type CommitInfo struct {
	SHA       string    `json:"sha"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// BranchSummary counts local and remote branches.
type BranchSummary struct {
	Local   int    `json:"local"`
	Remote  int    `json:"remote"`
	Default string `json:"default,omitempty"`
}

// GitInfo is the repository metadata produced by the git inspector.
type GitInfo struct {
	Root          string        `json:"root"`
	CurrentBranch string        `json:"current_branch"`
	HeadCommit    string        `json:"head_commit,omitempty"`
	Status        RepoStatus    `json:"status"`
	Remotes       []RemoteInfo  `json:"remotes"`
	Branches      BranchSummary `json:"branches"`
	RecentCommits []CommitInfo  `json:"recent_commits,omitempty"`
}
