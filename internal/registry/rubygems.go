package registry

import (
	"context"
	"fmt"
)

// rubygemsClient queries the RubyGems API.
type rubygemsClient struct {
	baseClient
	baseURL string
}

func (c *rubygemsClient) Registry() string { return c.baseURL }

type rubygemsVersion struct {
	Number     string `json:"number"`
	Prerelease bool   `json:"prerelease"`
}

func (c *rubygemsClient) Lookup(ctx context.Context, name string) (*PackageInfo, error) {
	url := fmt.Sprintf("%s/api/v1/versions/%s.json", c.baseURL, name)
	var versions []rubygemsVersion
	if err := c.getJSON(ctx, c.baseURL, name, url, &versions); err != nil {
		return nil, err
	}

	info := &PackageInfo{Name: name}
	for _, v := range versions {
		info.Versions = append(info.Versions, v.Number)
		// The versions endpoint is ordered newest first; the newest
		// stable release is the latest.
		if info.LatestVersion == "" && !v.Prerelease {
			info.LatestVersion = v.Number
		}
	}
	if info.LatestVersion == "" && len(info.Versions) > 0 {
		info.LatestVersion = info.Versions[0]
	}
	return info, nil
}
