// Package source adapts directory listers (GitHub, local git, demo data) to
// the multi-level payloads the tree builder expects.
package source

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shhac/prtree/internal/tree"
)

// DefaultConcurrency bounds parallel directory listings per fetch.
const DefaultConcurrency = 4

// ListFunc lists the direct children of one directory.
type ListFunc func(ctx context.Context, dir string) ([]tree.Entry, error)

// Source fetches a directory together with every ancestor level, so the
// result can be built into a tree rooted at "/" and merged into an existing
// one regardless of what has been loaded before.
type Source struct {
	name  string
	list  ListFunc
	limit int
}

// New wraps list. limit caps concurrent listings; values below 1 use
// DefaultConcurrency.
func New(name string, list ListFunc, limit int) *Source {
	if limit < 1 {
		limit = DefaultConcurrency
	}
	return &Source{name: name, list: list, limit: limit}
}

// Name identifies the source, e.g. "acme/gateway@main". It is also the key
// the tree cache stores under.
func (s *Source) Name() string {
	return s.name
}

// FetchDirectory lists dir and each of its ancestors concurrently. Any
// listing error fails the whole fetch.
func (s *Source) FetchDirectory(ctx context.Context, dir string) (tree.Payload, error) {
	dirs := tree.ExpansionPathsFor(dir)
	results := make([][]tree.Entry, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, d := range dirs {
		g.Go(func() error {
			entries, err := s.list(gctx, d)
			if err != nil {
				return fmt.Errorf("list %s: %w", d, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tree.Payload{}, err
	}

	var p tree.Payload
	for i, d := range dirs {
		p.AddLevel(d, results[i])
	}
	return p, nil
}

// SnapshotFunc returns a complete listing in one call.
type SnapshotFunc func(ctx context.Context) (tree.Payload, error)

// Snapshot is a source whose backend can only return the whole tree at once,
// such as the changed files of a pull request. Every fetch returns the full
// snapshot; merging makes the repetition harmless.
type Snapshot struct {
	name  string
	fetch SnapshotFunc
}

// NewSnapshot wraps fetch.
func NewSnapshot(name string, fetch SnapshotFunc) *Snapshot {
	return &Snapshot{name: name, fetch: fetch}
}

func (s *Snapshot) Name() string {
	return s.name
}

// FetchDirectory ignores dir and returns the full snapshot.
func (s *Snapshot) FetchDirectory(ctx context.Context, _ string) (tree.Payload, error) {
	return s.fetch(ctx)
}
