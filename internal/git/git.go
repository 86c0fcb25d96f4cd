package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/shhac/prtree/internal/tree"
)

// CommandRunner executes git in dir and returns its stdout.
type CommandRunner func(ctx context.Context, dir string, args ...string) (string, error)

// Repo is a local git repository browsed through `git ls-tree`.
type Repo struct {
	path string
	run  CommandRunner
}

// RepoExists checks if a git repository exists at the given path.
func RepoExists(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// Open verifies git is installed and path is a repository.
func Open(path string) (*Repo, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, fmt.Errorf("git not found in PATH")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if !RepoExists(abs) {
		return nil, fmt.Errorf("%s is not a git repository", abs)
	}
	return &Repo{path: abs, run: defaultRunner}, nil
}

// NewTestRepo creates a Repo with a custom CommandRunner for testing.
func NewTestRepo(path string, runner CommandRunner) *Repo {
	return &Repo{path: path, run: runner}
}

// Path returns the repository's working directory.
func (r *Repo) Path() string {
	return r.path
}

// ResolveRef returns the commit SHA a ref points at.
func (r *Repo) ResolveRef(ctx context.Context, ref string) (string, error) {
	out, err := r.run(ctx, r.path, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return strings.TrimSpace(out), nil
}

// ListTree lists the direct children of dir (a slash path, "/" for the
// root) at ref.
func (r *Repo) ListTree(ctx context.Context, ref, dir string) ([]tree.Entry, error) {
	args := []string{"ls-tree", "-z", ref}
	if rel := strings.Trim(dir, "/"); rel != "" {
		args = append(args, "--", rel+"/")
	}
	out, err := r.run(ctx, r.path, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s at %s: %w", dir, ref, err)
	}
	return parseLsTree(out), nil
}

// Lister returns a listing function bound to ref, for use with source.New.
func (r *Repo) Lister(ref string) func(ctx context.Context, dir string) ([]tree.Entry, error) {
	return func(ctx context.Context, dir string) ([]tree.Entry, error) {
		return r.ListTree(ctx, ref, dir)
	}
}

// parseLsTree reads NUL-terminated `git ls-tree -z` records of the form
// "<mode> SP <type> SP <object> TAB <path>".
func parseLsTree(out string) []tree.Entry {
	var entries []tree.Entry
	for _, rec := range strings.Split(out, "\x00") {
		meta, name, ok := strings.Cut(rec, "\t")
		if !ok {
			continue
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			continue
		}
		contentType := "file"
		if fields[1] == "tree" {
			contentType = "directory"
		}
		entries = append(entries, tree.Entry{
			Path:        "/" + name,
			Name:        path.Base(name),
			ContentType: contentType,
		})
	}
	return entries
}

func defaultRunner(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
