package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want HostingProvider
	}{
		{"git@github.com:org/repo.git", GitHub},
		{"https://github.com/org/repo", GitHub},
		{"ssh://git@github.com/org/repo.git", GitHub},
		{"https://gitlab.com/group/project.git", GitLab},
		{"git@bitbucket.org:team/repo.git", Bitbucket},
		{"https://dev.azure.com/org/project/_git/repo", AzureDevOps},
		{"https://myorg.visualstudio.com/project/_git/repo", AzureDevOps},
		{"https://git-codecommit.us-east-1.amazonaws.com/v1/repos/repo", AwsCodeCommit},
		{"https://git.sr.ht/~user/repo", SourceHut},
		{"https://gitlab.example.com/team/repo.git", SelfHosted},
		{"git@git.internal.corp:team/repo.git", SelfHosted},
		{"localrepo", UnknownHost},
		{"", UnknownHost},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ProviderFromURL(tc.url), "url %q", tc.url)
	}
}

func TestRegistryEligible(t *testing.T) {
	assert.True(t, Dependency{Name: "serde"}.RegistryEligible())
	assert.False(t, Dependency{Meta: DependencyMeta{GitURL: "https://github.com/x/y"}}.RegistryEligible())
	assert.False(t, Dependency{Meta: DependencyMeta{Path: "../local"}}.RegistryEligible())
	assert.False(t, Dependency{Meta: DependencyMeta{Workspace: true}}.RegistryEligible())
}

func TestAdvisorySeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical > SeverityHigh)
	assert.True(t, SeverityHigh > SeverityModerate)
	assert.True(t, SeverityModerate > SeverityLow)
	assert.True(t, SeverityLow > SeverityUnknown)
}
