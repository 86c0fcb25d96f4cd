// Package demo provides an in-memory repository for demo mode.
// Listings behave like the GitHub contents API so the UI exercises the same
// build and merge path it uses against a live repository.
package demo

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/shhac/prtree/internal/github"
	"github.com/shhac/prtree/internal/tree"
)

// ErrNotFound is returned when a directory or pull request does not exist.
var ErrNotFound = errors.New("demo: not found")

// Service serves directory listings from fake repository data.
type Service struct {
	dirs    map[string][]tree.Entry
	prFiles map[int][]github.PRFile
}

// NewService creates a Service populated with the demo repository.
func NewService() *Service {
	return newService(repoFiles, emptyDirs, prFiles)
}

func newService(files, empty []string, prs map[int][]github.PRFile) *Service {
	s := &Service{
		dirs:    map[string][]tree.Entry{"/": nil},
		prFiles: prs,
	}
	for _, d := range empty {
		s.addDir(tree.NormalizePath(d))
	}
	for _, f := range files {
		p := tree.NormalizePath(f)
		s.addDir(path.Dir(p))
		s.addEntry(p, "file")
	}
	return s
}

// addDir registers dir and its ancestors as directories.
func (s *Service) addDir(dir string) {
	if dir == "/" {
		return
	}
	if _, ok := s.dirs[dir]; ok {
		return
	}
	s.dirs[dir] = []tree.Entry{}
	s.addDir(path.Dir(dir))
	s.addEntry(dir, "directory")
}

func (s *Service) addEntry(p, contentType string) {
	parent := path.Dir(p)
	s.dirs[parent] = append(s.dirs[parent], tree.Entry{
		Path:        p,
		Name:        path.Base(p),
		ContentType: contentType,
	})
}

// ListDirectory returns the direct children of dir.
func (s *Service) ListDirectory(ctx context.Context, dir string) ([]tree.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := tree.NormalizePath(dir)
	if d == "" {
		d = "/"
	}
	entries, ok := s.dirs[d]
	if !ok {
		return nil, fmt.Errorf("%w: directory %s", ErrNotFound, d)
	}
	out := make([]tree.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// GetPRFiles returns the changed files of a demo pull request.
func (s *Service) GetPRFiles(ctx context.Context, number int) ([]github.PRFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, ok := s.prFiles[number]
	if !ok {
		return nil, fmt.Errorf("%w: PR #%d", ErrNotFound, number)
	}
	return files, nil
}
