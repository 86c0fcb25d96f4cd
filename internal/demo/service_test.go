package demo

import (
	"context"
	"errors"
	"testing"

	"github.com/shhac/prtree/internal/source"
	"github.com/shhac/prtree/internal/tree"
)

func TestNewService(t *testing.T) {
	s := NewService()
	if s == nil {
		t.Fatal("NewService returned nil")
	}
	if len(s.dirs) == 0 {
		t.Fatal("expected demo directories")
	}
}

func TestListDirectory_Root(t *testing.T) {
	s := NewService()
	entries, err := s.ListDirectory(context.Background(), "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byPath := make(map[string]string)
	for _, e := range entries {
		byPath[e.Path] = e.ContentType
	}
	if byPath["/internal"] != "directory" {
		t.Errorf("/internal = %q, want directory", byPath["/internal"])
	}
	if byPath["/go.mod"] != "file" {
		t.Errorf("/go.mod = %q, want file", byPath["/go.mod"])
	}
	if _, ok := byPath["/internal/auth"]; ok {
		t.Error("root listing includes a nested entry")
	}
}

func TestListDirectory_EmptyDirectory(t *testing.T) {
	s := NewService()
	entries, err := s.ListDirectory(context.Background(), "/deploy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestListDirectory_NotFound(t *testing.T) {
	s := NewService()
	_, err := s.ListDirectory(context.Background(), "/nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListDirectory_Cancelled(t *testing.T) {
	s := NewService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ListDirectory(ctx, "/"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestListDirectory_ReturnsCopy(t *testing.T) {
	s := NewService()
	first, _ := s.ListDirectory(context.Background(), "/docs")
	first[0].Name = "mutated"
	second, _ := s.ListDirectory(context.Background(), "/docs")
	if second[0].Name == "mutated" {
		t.Error("ListDirectory exposes internal state")
	}
}

func TestDemoSourceBuildsTree(t *testing.T) {
	s := NewService()
	src := source.New(RepoName, s.ListDirectory, 2)

	p, err := src.FetchDirectory(context.Background(), "/internal/middleware")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roots := tree.Build(p)

	mw := tree.FindByIdentifier(roots, "/internal/middleware")
	if mw == nil || !mw.HasRealChildren() {
		t.Fatalf("/internal/middleware = %+v", mw)
	}
	if auth := tree.FindByIdentifier(roots, "/internal/auth"); auth == nil || !auth.IsUnloaded() {
		t.Errorf("/internal/auth should be present but unloaded: %+v", auth)
	}
	if plugins := tree.FindByIdentifier(roots, "/internal/plugins"); plugins == nil || !plugins.IsUnloaded() {
		t.Errorf("/internal/plugins should hold a placeholder: %+v", plugins)
	}
}

func TestGetPRFiles(t *testing.T) {
	s := NewService()
	files, err := s.GetPRFiles(context.Background(), 101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 4 {
		t.Errorf("got %d files, want 4", len(files))
	}
	if _, err := s.GetPRFiles(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
