package registry

import (
	"context"
	"fmt"
)

// cratesClient queries the crates.io API.
type cratesClient struct {
	baseClient
	baseURL string
}

func (c *cratesClient) Registry() string { return c.baseURL }

type cratesResponse struct {
	Crate struct {
		MaxStableVersion string `json:"max_stable_version"`
		MaxVersion       string `json:"max_version"`
	} `json:"crate"`
	Versions []struct {
		Num    string `json:"num"`
		Yanked bool   `json:"yanked"`
	} `json:"versions"`
}

func (c *cratesClient) Lookup(ctx context.Context, name string) (*PackageInfo, error) {
	url := fmt.Sprintf("%s/api/v1/crates/%s", c.baseURL, name)
	var resp cratesResponse
	if err := c.getJSON(ctx, c.baseURL, name, url, &resp); err != nil {
		return nil, err
	}

	info := &PackageInfo{Name: name, LatestVersion: resp.Crate.MaxStableVersion}
	if info.LatestVersion == "" {
		info.LatestVersion = resp.Crate.MaxVersion
	}
	for _, v := range resp.Versions {
		if !v.Yanked {
			info.Versions = append(info.Versions, v.Num)
		}
	}
	return info, nil
}
