package registry

import (
	"context"
	"fmt"
	"net/url"
)

// npmClient queries the npm registry. Scoped names are URL-escaped so
// "@scope/pkg" becomes one path segment.
type npmClient struct {
	baseClient
	baseURL string
}

func (c *npmClient) Registry() string { return c.baseURL }

type npmResponse struct {
	DistTags map[string]string `json:"dist-tags"`
	Versions map[string]struct {
		Deprecated string `json:"deprecated"`
	} `json:"versions"`
}

func (c *npmClient) Lookup(ctx context.Context, name string) (*PackageInfo, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(name))
	var resp npmResponse
	if err := c.getJSON(ctx, c.baseURL, name, u, &resp); err != nil {
		return nil, err
	}

	info := &PackageInfo{Name: name, LatestVersion: resp.DistTags["latest"]}
	for v, meta := range resp.Versions {
		if meta.Deprecated == "" {
			info.Versions = append(info.Versions, v)
		}
	}
	return info, nil
}
