package registry

import (
	"context"
	"fmt"
)

// pypiClient queries the PyPI JSON API.
type pypiClient struct {
	baseClient
	baseURL string
}

func (c *pypiClient) Registry() string { return c.baseURL }

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	Releases map[string][]struct {
		Yanked bool `json:"yanked"`
	} `json:"releases"`
}

func (c *pypiClient) Lookup(ctx context.Context, name string) (*PackageInfo, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name)
	var resp pypiResponse
	if err := c.getJSON(ctx, c.baseURL, name, url, &resp); err != nil {
		return nil, err
	}

	info := &PackageInfo{Name: name, LatestVersion: resp.Info.Version}
	for v, files := range resp.Releases {
		yanked := len(files) > 0
		for _, f := range files {
			if !f.Yanked {
				yanked = false
				break
			}
		}
		if !yanked {
			info.Versions = append(info.Versions, v)
		}
	}
	return info, nil
}
