package openapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/CliForge/oascaffold/pkg/cache"
	"github.com/CliForge/oascaffold/pkg/errors"
)

const userAgent = "oascaffold OpenAPI Loader"

// SpecCache stores downloaded documents by URL.
type SpecCache interface {
	Get(ctx context.Context, key string) (*cache.CachedSpec, error)
	Set(ctx context.Context, key string, spec *cache.CachedSpec) error
	Invalidate(ctx context.Context, key string) error
}

// Loader loads documents from files or URLs. Downloads are cached when
// Cache is set; a cached entry younger than CacheTTL is used as is, an
// older one is revalidated with its ETag.
type Loader struct {
	Cache      SpecCache
	HTTPClient *http.Client
	CacheTTL   time.Duration
}

// LoadOptions controls how documents are fetched.
type LoadOptions struct {
	// ForceRefresh bypasses the cache.
	ForceRefresh bool
	// Headers are added to the HTTP request.
	Headers map[string]string
}

// NewLoader creates a Loader. cache may be nil.
func NewLoader(cache SpecCache) *Loader {
	return &Loader{
		Cache:      cache,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		CacheTTL:   5 * time.Minute,
	}
}

// IsURL reports whether location is an HTTP(S) URL rather than a file path.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load loads the document at location, a file path or URL.
func (l *Loader) Load(ctx context.Context, location string, options *LoadOptions) (*Document, error) {
	if IsURL(location) {
		return l.LoadFromURL(ctx, location, options)
	}
	return l.LoadFromFile(ctx, location)
}

// LoadFromFile loads a document from a file.
func (l *Loader) LoadFromFile(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(err, path)
	}
	doc, err := Parse(ctx, data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	doc.Source = path
	return doc, nil
}

// LoadFromURL loads a document over HTTP. When the download fails and a
// cached copy exists, the cached copy is used.
func (l *Loader) LoadFromURL(ctx context.Context, specURL string, options *LoadOptions) (*Document, error) {
	if options == nil {
		options = &LoadOptions{}
	}

	var cached *cache.CachedSpec
	if l.Cache != nil && !options.ForceRefresh {
		if c, err := l.Cache.Get(ctx, specURL); err == nil && c != nil {
			cached = c
		}
	}

	data, err := l.fetchCached(ctx, specURL, cached, options)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(ctx, data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", specURL)
	}
	doc.Source = specURL
	return doc, nil
}

func (l *Loader) fetchCached(ctx context.Context, specURL string, cached *cache.CachedSpec, options *LoadOptions) ([]byte, error) {
	if cached != nil && time.Since(cached.FetchedAt) < l.CacheTTL {
		return cached.Data, nil
	}

	etag := ""
	if cached != nil {
		etag = cached.ETag
	}

	data, newETag, notModified, err := l.fetch(ctx, specURL, etag, options.Headers)
	switch {
	case err != nil && cached != nil:
		return cached.Data, nil
	case err != nil:
		return nil, errors.WithHint(err, "check the URL, or download the document and pass its path")
	case notModified:
		data = cached.Data
	}

	if l.Cache != nil {
		_ = l.Cache.Set(ctx, specURL, &cache.CachedSpec{
			Data:      data,
			ETag:      newETag,
			FetchedAt: time.Now(),
			URL:       specURL,
		})
	}
	return data, nil
}

// fetch performs a GET, conditional when etag is set.
func (l *Loader) fetch(ctx context.Context, specURL, etag string, headers map[string]string) ([]byte, string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, specURL, nil)
	if err != nil {
		return nil, "", false, errors.Wrap(err, "create request")
	}

	req.Header.Set("Accept", "application/json, application/yaml, application/x-yaml, text/yaml")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, "", false, errors.Wrapf(err, "fetch %s", specURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified {
		return nil, etag, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", false, errors.Newf("fetch %s: HTTP %s", specURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", false, errors.Wrap(err, "read response")
	}
	return data, resp.Header.Get("ETag"), false, nil
}

// InvalidateCache removes a cached document.
func (l *Loader) InvalidateCache(ctx context.Context, specURL string) error {
	if l.Cache == nil {
		return nil
	}
	return l.Cache.Invalidate(ctx, specURL)
}
