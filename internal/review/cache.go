package review

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"snapforge/internal/diffline"
	"snapforge/internal/snap"
)

// Current schema version - increment when Summary format changes
const scanCacheSchemaVersion uint16 = 1

// ScanCache memoizes per-artifact summaries so that listing a large pending
// set does not re-parse every envelope on every invocation. Entries are
// keyed by artifact path and validated against size and mtime.
// Thread-safe for concurrent access.
type ScanCache struct {
	mu  sync.RWMutex
	dir string
}

// Summary is the cached digest of one pending artifact.
type Summary struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Validation keys
	Size    int64
	ModTime int64 // unix nanoseconds

	// Listing payload
	Source  string
	IsNew   bool
	Removed int
	Added   int
}

// OpenScanCache initializes the cache at the standard user cache location.
func OpenScanCache(app string) (*ScanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ScanCache{dir: dir}, nil
}

func (c *ScanCache) pathFor(artifactPath string) string {
	sum := sha256.Sum256([]byte(artifactPath))
	return filepath.Join(c.dir, "pending", hex.EncodeToString(sum[:])+".mp")
}

// Summarize returns the summary for the artifact at path, reading the
// envelope only on a cache miss. A nil cache always parses.
func (c *ScanCache) Summarize(path string) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, fmt.Errorf("stat pending: %w", err)
	}
	if c != nil {
		if cached, ok := c.get(path); ok &&
			cached.Schema == scanCacheSchemaVersion &&
			cached.Size == info.Size() &&
			cached.ModTime == info.ModTime().UnixNano() {
			return cached, nil
		}
	}

	pending, err := snap.ReadPending(path)
	if err != nil {
		return Summary{}, err
	}
	removed, added := diffline.Stats(pending.Diff)
	summary := Summary{
		Schema:  scanCacheSchemaVersion,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
		Source:  pending.Identity.Source(),
		IsNew:   pending.IsNew(),
		Removed: removed,
		Added:   added,
	}
	if c != nil {
		// cache write failures only cost the next scan a re-parse
		_ = c.put(path, &summary)
	}
	return summary, nil
}

func (c *ScanCache) get(path string) (Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(path))
	if err != nil {
		return Summary{}, false
	}
	var s Summary
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Summary{}, false
	}
	return s, true
}

func (c *ScanCache) put(path string, s *Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(path)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Invalidate drops the cached summary for one artifact.
func (c *ScanCache) Invalidate(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.pathFor(path)); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to drop cache entry: %v\n", err)
	}
}
