package github

import (
	"context"
	"fmt"
	"path"

	gh "github.com/google/go-github/v68/github"

	"github.com/shhac/prtree/internal/tree"
)

// GetPRFiles returns all changed files in a PR.
func (c *Client) GetPRFiles(ctx context.Context, owner, repo string, number int) ([]PRFile, error) {
	var allFiles []PRFile
	opts := &gh.ListOptions{PerPage: 100}

	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files for PR #%d: %w", number, err)
		}

		for _, f := range files {
			allFiles = append(allFiles, PRFile{
				Filename:  f.GetFilename(),
				Status:    f.GetStatus(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allFiles, nil
}

// ChangedFilesPayload turns a PR's changed files into a flat listing that
// also carries every ancestor directory, so the whole change set builds into
// one tree in a single pass.
func ChangedFilesPayload(files []PRFile) tree.Payload {
	seen := make(map[string]bool)
	var p tree.Payload
	for _, f := range files {
		filePath := tree.NormalizePath(f.Filename)
		if filePath == "" || filePath == "/" || seen[filePath] {
			continue
		}
		seen[filePath] = true

		for _, anc := range tree.AncestorPathsOf(path.Dir(filePath)) {
			if seen[anc] {
				continue
			}
			seen[anc] = true
			p.Items = append(p.Items, tree.Entry{Path: anc, Name: path.Base(anc), ContentType: "directory"})
		}
		p.Items = append(p.Items, tree.Entry{Path: filePath, Name: path.Base(filePath), ContentType: "file"})
	}
	return p
}
