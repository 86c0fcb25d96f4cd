package ui

import (
	"context"

	"github.com/shhac/prtree/internal/store"
	"github.com/shhac/prtree/internal/tree"
)

// TreeSource defines how the UI loads directory contents.
// *source.Source and *source.Snapshot satisfy this interface.
type TreeSource interface {
	Name() string
	FetchDirectory(ctx context.Context, dir string) (tree.Payload, error)
}

// TreeCache persists trees between sessions.
// *store.TreeStore satisfies this interface.
type TreeCache interface {
	Get(source string) (*store.CachedTree, error)
	Put(source string, roots []tree.Node, expanded []string) error
	Delete(source string) error
}
