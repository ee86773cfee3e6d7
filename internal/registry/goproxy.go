package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	gomodsemver "golang.org/x/mod/semver"

	"github.com/reposniff/reposniff/internal/cache"
	"github.com/reposniff/reposniff/internal/models"
)

// goProxyClient queries the Go module proxy. The @v/list endpoint is
// plain text, one version per line, so it bypasses the JSON helper.
type goProxyClient struct {
	baseClient
	baseURL string
}

func (c *goProxyClient) Registry() string { return c.baseURL }

func (c *goProxyClient) Lookup(ctx context.Context, name string) (*PackageInfo, error) {
	key := cache.Key(c.baseURL, name)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			return parseGoVersionList(name, string(data)), nil
		}
	}

	// Module paths are case-encoded on the proxy: "A" becomes "!a".
	url := fmt.Sprintf("%s/%s/@v/list", c.baseURL, escapeModulePath(name))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.RegistryError{Registry: c.baseURL, Message: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.RegistryError{Registry: c.baseURL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, &models.RegistryError{Registry: c.baseURL, Message: fmt.Sprintf("module %q not found", name)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &models.RegistryError{Registry: c.baseURL, Message: fmt.Sprintf("unexpected status %d for %q", resp.StatusCode, name)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.RegistryError{Registry: c.baseURL, Message: err.Error()}
	}
	if c.cache != nil {
		c.cache.Set(key, data)
	}
	return parseGoVersionList(name, string(data)), nil
}

func parseGoVersionList(name, body string) *PackageInfo {
	info := &PackageInfo{Name: name}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		info.Versions = append(info.Versions, line)
		if gomodsemver.Prerelease(line) == "" && gomodsemver.Compare(line, info.LatestVersion) > 0 {
			info.LatestVersion = line
		}
	}
	if info.LatestVersion == "" && len(info.Versions) > 0 {
		info.LatestVersion = info.Versions[len(info.Versions)-1]
	}
	return info
}

func escapeModulePath(path string) string {
	var b strings.Builder
	for _, r := range path {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('!')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
