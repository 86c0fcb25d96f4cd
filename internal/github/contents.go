package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/shhac/prtree/internal/tree"
)

// GetDirectory lists one directory of a repository at ref via the contents
// API. dir is a slash path ("/" for the repository root). When dir names a
// file the API returns a single object, which yields a single entry.
func (c *Client) GetDirectory(ctx context.Context, owner, repo, ref, dir string) ([]tree.Entry, error) {
	endpoint := contentsEndpoint(owner, repo, ref, dir)
	out, err := c.ghExec(ctx, "api", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s in %s/%s: %w", dir, owner, repo, err)
	}

	items, err := parseContents(out)
	if err != nil {
		return nil, err
	}

	entries := make([]tree.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, tree.Entry{
			Path:        "/" + item.Path,
			Name:        item.Name,
			ContentType: contentType(item.Type),
		})
	}
	return entries, nil
}

// Lister returns a listing function bound to one repository and ref, for use
// with source.New.
func (c *Client) Lister(owner, repo, ref string) func(ctx context.Context, dir string) ([]tree.Entry, error) {
	return func(ctx context.Context, dir string) ([]tree.Entry, error) {
		return c.GetDirectory(ctx, owner, repo, ref, dir)
	}
}

func parseContents(out string) ([]ghContent, error) {
	trimmed := strings.TrimSpace(out)
	if strings.HasPrefix(trimmed, "{") {
		var single ghContent
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, fmt.Errorf("failed to parse gh output: %w", err)
		}
		return []ghContent{single}, nil
	}
	var items []ghContent
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	return items, nil
}

// contentType maps contents API types onto listing content types. Symlinks
// and submodules cannot be expanded, so they are shown as files.
func contentType(t string) string {
	if t == "dir" {
		return "directory"
	}
	return "file"
}

func contentsEndpoint(owner, repo, ref, dir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "repos/%s/%s/contents", owner, repo)
	for _, seg := range strings.Split(strings.Trim(dir, "/"), "/") {
		if seg == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if ref != "" {
		b.WriteString("?ref=")
		b.WriteString(url.QueryEscape(ref))
	}
	return b.String()
}
