// Package registry looks up package metadata in ecosystem registries.
// One client exists per registry; all of them share retrying HTTP
// transport and a response cache so repeated runs stay cheap.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/reposniff/reposniff/internal/cache"
	"github.com/reposniff/reposniff/internal/models"
)

const userAgent = "reposniff (+https://github.com/reposniff/reposniff)"

// PackageInfo is the registry's view of one package.
type PackageInfo struct {
	Name          string
	LatestVersion string
	// Versions lists every published version, unordered. Yanked or
	// deprecated versions are excluded where the registry marks them.
	Versions []string
}

// Client looks up packages in one registry.
type Client interface {
	// Registry returns the registry's base URL, used for cache keys and
	// error attribution.
	Registry() string
	// Lookup fetches package metadata. A package the registry does not
	// know returns a *models.RegistryError.
	Lookup(ctx context.Context, name string) (*PackageInfo, error)
}

// Options configures client construction.
type Options struct {
	Cache   *cache.Cache
	Timeout time.Duration
	Logger  *log.Logger
}

// For selects the registry client for a package manager, or nil when
// the ecosystem has no queryable registry (Gradle, and Maven whose
// central index search is out of scope). Refined variants share their
// family's registry; base URLs come from the package manager table so
// registry identity stays single-sourced.
func For(pm models.PackageManager, opts Options) Client {
	base := baseClient{
		http:   newHTTPClient(opts),
		cache:  opts.Cache,
		logger: opts.Logger,
	}
	family := pm.Family()
	url := family.RegistryURL()
	switch family {
	case models.Cargo:
		return &cratesClient{base, url}
	case models.Npm:
		return &npmClient{base, url}
	case models.Pip:
		return &pypiClient{base, url}
	case models.Bundler:
		return &rubygemsClient{base, url}
	case models.Composer:
		return &packagistClient{base, url}
	case models.GoMod:
		return &goProxyClient{base, url}
	default:
		return nil
	}
}

func newHTTPClient(opts Options) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 200 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.Logger = nil
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	c.HTTPClient.Timeout = timeout
	return c
}

// baseClient carries the shared transport, cache, and logger.
type baseClient struct {
	http   *retryablehttp.Client
	cache  *cache.Cache
	logger *log.Logger
}

// getJSON fetches url and decodes the body into v, consulting the
// cache first. Successful bodies are cached; errors never are.
func (b baseClient) getJSON(ctx context.Context, registry, pkg, url string, v interface{}) error {
	key := cache.Key(registry, pkg)
	if b.cache != nil {
		if data, ok := b.cache.Get(key); ok {
			return json.Unmarshal(data, v)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &models.RegistryError{Registry: registry, Message: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return &models.RegistryError{Registry: registry, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &models.RegistryError{Registry: registry, Message: fmt.Sprintf("package %q not found", pkg)}
	}
	if resp.StatusCode != http.StatusOK {
		return &models.RegistryError{Registry: registry, Message: fmt.Sprintf("unexpected status %d for %q", resp.StatusCode, pkg)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.RegistryError{Registry: registry, Message: err.Error()}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &models.RegistryError{Registry: registry, Message: err.Error()}
	}
	if b.cache != nil {
		b.cache.Set(key, data)
	}
	if b.logger != nil {
		b.logger.Debug("registry lookup", "registry", registry, "package", pkg)
	}
	return nil
}
