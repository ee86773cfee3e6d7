package registry

import (
	"context"
	"fmt"
	"strings"
)

// packagistClient queries the Packagist metadata API.
type packagistClient struct {
	baseClient
	baseURL string
}

func (c *packagistClient) Registry() string { return c.baseURL }

type packagistResponse struct {
	Packages map[string][]struct {
		Version string `json:"version"`
	} `json:"packages"`
}

func (c *packagistClient) Lookup(ctx context.Context, name string) (*PackageInfo, error) {
	url := fmt.Sprintf("%s/p2/%s.json", c.baseURL, name)
	var resp packagistResponse
	if err := c.getJSON(ctx, c.baseURL, name, url, &resp); err != nil {
		return nil, err
	}

	info := &PackageInfo{Name: name}
	for _, entry := range resp.Packages[name] {
		v := strings.TrimPrefix(entry.Version, "v")
		// Branch heads like "dev-main" are not releases.
		if strings.HasPrefix(entry.Version, "dev-") {
			continue
		}
		info.Versions = append(info.Versions, v)
		// p2 metadata is ordered newest first.
		if info.LatestVersion == "" {
			info.LatestVersion = v
		}
	}
	return info, nil
}
