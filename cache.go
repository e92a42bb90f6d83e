package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

const (
	OUTPUT_DIR = "output"
	ENTRY_FILE = "entry.yaml"
)

// cacheEntry is one generated translation unit together with the
// diagnostics it was generated with, so a cache hit reports the same
// problems as a fresh run.
type cacheEntry struct {
	Hash        string   `yaml:"hash"`
	Board       string   `yaml:"board"`
	Source      string   `yaml:"source"`
	Diagnostics []string `yaml:"diagnostics,omitempty"`
}

// outputCache stores generated sources under dir/output/<hash>. A file lock
// makes concurrent processes see either a complete entry or none.
type outputCache struct {
	dir string
}

func newOutputCache(dir string) *outputCache {
	return &outputCache{dir: filepath.Join(dir, OUTPUT_DIR)}
}

// isHashDir returns true if name is an 8-char hex string (matches shortHash format).
func isHashDir(name string) bool {
	if len(name) != 8 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

// cacheKey hashes the workspace text and every setting that changes the
// generated source. Returns short hash (8 chars for directory name) and
// full hash (for collision check).
func cacheKey(input, profile []byte, strLen int) (shortHash, fullHash string) {
	h := sha256.New()
	h.Write([]byte(Version))
	h.Write([]byte{0})
	h.Write(profile)
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(strLen)))
	h.Write([]byte{0})
	h.Write(input)
	fullHash = hex.EncodeToString(h.Sum(nil))
	return fullHash[:8], fullHash
}

func (c *outputCache) lock() (*flock.Flock, error) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	lock := flock.New(filepath.Join(c.dir, ".lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	return lock, nil
}

// Get returns the entry stored for fullHash. A missing entry or a short
// hash collision is a miss, not an error.
func (c *outputCache) Get(shortHash, fullHash string) (*cacheEntry, bool, error) {
	lock, err := c.lock()
	if err != nil {
		return nil, false, err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(filepath.Join(c.dir, shortHash, ENTRY_FILE))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	var e cacheEntry
	if err := yaml.Unmarshal(data, &e); err != nil {
		// corrupted entry, regenerate
		return nil, false, nil
	}
	if e.Hash != fullHash {
		return nil, false, nil
	}
	return &e, true, nil
}

// Put stores e under its hash, replacing any older entry in the same slot.
func (c *outputCache) Put(shortHash string, e *cacheEntry) error {
	lock, err := c.lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	// keep 20 most recent, only delete if older than 1 week
	cleanupOldEntries(c.dir, 20, 7*24*60*60)

	entryDir := filepath.Join(c.dir, shortHash)
	if err := os.MkdirAll(entryDir, 0755); err != nil {
		return fmt.Errorf("create cache entry dir: %w", err)
	}
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	tmp := filepath.Join(entryDir, ENTRY_FILE+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(entryDir, ENTRY_FILE)); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// cleanupOldEntries removes old hash directories.
// Only deletes directories older than minAge AND keeps at least 'keep' most recent.
func cleanupOldEntries(dir string, keep int, minAge int64) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) <= keep {
		return
	}

	type dirInfo struct {
		name  string
		mtime int64
	}
	var dirs []dirInfo
	for _, e := range entries {
		if e.IsDir() && isHashDir(e.Name()) {
			if info, err := e.Info(); err == nil {
				dirs = append(dirs, dirInfo{e.Name(), info.ModTime().Unix()})
			}
		}
	}

	if len(dirs) <= keep {
		return
	}

	// oldest first
	cutoff := time.Now().Unix() - minAge
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].mtime < dirs[j].mtime })
	for i := 0; i < len(dirs)-keep; i++ {
		if dirs[i].mtime < cutoff {
			path := filepath.Join(dir, dirs[i].name)
			if err := os.RemoveAll(path); err != nil {
				fmt.Printf("warning: failed to remove old cache entry %s: %v\n", path, err)
			}
		}
	}
}
