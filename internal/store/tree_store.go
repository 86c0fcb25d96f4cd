// Package store caches fetched trees on disk between sessions.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shhac/prtree/internal/tree"
)

// CachedTree is what gets persisted for one source.
type CachedTree struct {
	Source   string      `json:"source"`
	SavedAt  time.Time   `json:"savedAt"`
	Roots    []tree.Node `json:"roots"`
	Expanded []string    `json:"expanded,omitempty"`
}

// TreeStore manages file-based caching of browsed trees.
type TreeStore struct {
	cacheDir string
}

// NewTreeStore creates a store that caches trees in the given directory.
func NewTreeStore(cacheDir string) *TreeStore {
	return &TreeStore{cacheDir: cacheDir}
}

// Get loads the cached tree for a source. Returns nil if not found.
func (s *TreeStore) Get(source string) (*CachedTree, error) {
	data, err := os.ReadFile(s.cachePath(source))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var cached CachedTree
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	return &cached, nil
}

// Put saves a tree and its expanded directories.
func (s *TreeStore) Put(source string, roots []tree.Node, expanded []string) error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	cached := CachedTree{
		Source:   source,
		SavedAt:  time.Now(),
		Roots:    roots,
		Expanded: expanded,
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	path := s.cachePath(source)

	// Write atomically: temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}

	return nil
}

// Delete removes the cached tree for a source. Missing entries are not an error.
func (s *TreeStore) Delete(source string) error {
	if err := os.Remove(s.cachePath(source)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

func (s *TreeStore) cachePath(source string) string {
	return filepath.Join(s.cacheDir, cacheFileName(source)+".json")
}

// cacheFileName flattens a source name such as "acme/gateway@feature/x" into
// a single path component. The readable part is lossy, so a short hash of
// the raw name keeps distinct sources apart.
func cacheFileName(source string) string {
	readable := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, source)
	sum := sha256.Sum256([]byte(source))
	return readable + "-" + hex.EncodeToString(sum[:4])
}
