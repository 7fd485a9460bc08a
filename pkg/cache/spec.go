// Package cache stores downloaded OpenAPI documents so that repeated
// scaffolding runs against the same URL can revalidate with an ETag instead
// of downloading the document again.
//
// Entries are JSON files named by the SHA-256 of their key, below an
// XDG-compliant cache directory.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// ErrCacheMiss is returned by Get when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// SpecCache is a file-backed spec cache.
type SpecCache struct {
	// Dir holds the cache entries.
	Dir string
}

// CachedSpec is one cached document.
type CachedSpec struct {
	Data      []byte    `json:"data"`
	ETag      string    `json:"etag,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	URL       string    `json:"url"`
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int   `json:"entries" yaml:"entries"`
	Size    int64 `json:"size" yaml:"size"`
}

// DefaultDir returns the XDG cache directory of appName.
func DefaultDir(appName string) string {
	return filepath.Join(xdg.CacheHome, appName, "specs")
}

// New creates the cache directory and returns a cache rooted there.
func New(dir string) (*SpecCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.IO(err, dir)
	}
	return &SpecCache{Dir: dir}, nil
}

func (c *SpecCache) path(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.Dir, hex.EncodeToString(hash[:])+".json")
}

// Get retrieves the entry for key, or ErrCacheMiss.
func (c *SpecCache) Get(_ context.Context, key string) (*CachedSpec, error) {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.IO(err, path)
	}

	var cached CachedSpec
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, errors.Wrapf(err, "decode cache entry %s", path)
	}
	return &cached, nil
}

// Set stores spec under key.
func (c *SpecCache) Set(_ context.Context, key string, spec *CachedSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return errors.Wrap(err, "encode cache entry")
	}
	path := c.path(key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(err, path)
	}
	return nil
}

// Invalidate removes the entry for key, if any.
func (c *SpecCache) Invalidate(_ context.Context, key string) error {
	path := c.path(key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.IO(err, path)
	}
	return nil
}

// Stats counts the entries and their total size.
func (c *SpecCache) Stats(_ context.Context) (*Stats, error) {
	stats := &Stats{}
	err := c.each(func(_ string, info os.FileInfo) {
		stats.Entries++
		stats.Size += info.Size()
	})
	return stats, err
}

// Prune removes entries fetched more than ttl ago and returns how many
// were removed. A zero ttl removes everything.
func (c *SpecCache) Prune(_ context.Context, ttl time.Duration) (int, error) {
	pruned := 0
	err := c.each(func(path string, _ os.FileInfo) {
		if ttl > 0 {
			data, err := os.ReadFile(path)
			if err != nil {
				return
			}
			var cached CachedSpec
			if json.Unmarshal(data, &cached) == nil && time.Since(cached.FetchedAt) < ttl {
				return
			}
		}
		if os.Remove(path) == nil {
			pruned++
		}
	})
	return pruned, err
}

func (c *SpecCache) each(fn func(path string, info os.FileInfo)) error {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return errors.IO(err, c.Dir)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		fn(filepath.Join(c.Dir, entry.Name()), info)
	}
	return nil
}
