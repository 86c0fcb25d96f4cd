package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shhac/prtree/internal/demo"
	"github.com/shhac/prtree/internal/git"
	"github.com/shhac/prtree/internal/github"
	"github.com/shhac/prtree/internal/source"
	"github.com/shhac/prtree/internal/tree"
	"github.com/shhac/prtree/internal/ui"
)

type sourceOptions struct {
	repo  string // owner/repo
	ref   string
	pr    int
	local string
	demo  bool
}

func (o sourceOptions) validate() error {
	modes := 0
	for _, set := range []bool{o.repo != "", o.local != "", o.demo} {
		if set {
			modes++
		}
	}
	switch {
	case modes == 0:
		return errors.New("nothing to browse: pass owner/repo, -local PATH or -demo")
	case modes > 1:
		return errors.New("owner/repo, -local and -demo are mutually exclusive")
	case o.pr < 0:
		return fmt.Errorf("invalid pull request number %d", o.pr)
	case o.pr > 0 && o.local != "":
		return errors.New("-pr needs a GitHub repository, not -local")
	case o.pr > 0 && o.ref != "":
		return errors.New("-pr and -ref cannot be combined")
	}
	return nil
}

// parseRepo splits "owner/repo".
func parseRepo(s string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q, want owner/repo", s)
	}
	return owner, name, nil
}

// newSource picks the backend described by o. Network or git calls needed
// to resolve refs run under ctx.
func newSource(ctx context.Context, o sourceOptions, concurrency int) (ui.TreeSource, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	switch {
	case o.demo:
		return demoSource(demo.NewService(), o.pr, concurrency), nil

	case o.local != "":
		repo, err := git.Open(o.local)
		if err != nil {
			return nil, err
		}
		return localSource(ctx, repo, o.ref, concurrency)

	default:
		owner, name, err := parseRepo(o.repo)
		if err != nil {
			return nil, err
		}
		client, err := github.NewClient()
		if err != nil {
			return nil, err
		}
		return githubSource(ctx, client, owner, name, o, concurrency)
	}
}

func demoSource(svc *demo.Service, pr, concurrency int) ui.TreeSource {
	if pr > 0 {
		return source.NewSnapshot(fmt.Sprintf("demo:%s#%d", demo.RepoName, pr), func(ctx context.Context) (tree.Payload, error) {
			files, err := svc.GetPRFiles(ctx, pr)
			if err != nil {
				return tree.Payload{}, err
			}
			return github.ChangedFilesPayload(files), nil
		})
	}
	return source.New("demo:"+demo.RepoName, svc.ListDirectory, concurrency)
}

// localSource pins ref to a commit so the cache key changes with history.
func localSource(ctx context.Context, repo *git.Repo, ref string, concurrency int) (ui.TreeSource, error) {
	if ref == "" {
		ref = "HEAD"
	}
	sha, err := repo.ResolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("local:%s@%s", repo.Path(), shortSHA(sha))
	return source.New(name, repo.Lister(sha), concurrency), nil
}

// githubSource pins branch refs to a commit, like localSource, so a cached
// tree never outlives the commit it was listed from.
func githubSource(ctx context.Context, client *github.Client, owner, name string, o sourceOptions, concurrency int) (ui.TreeSource, error) {
	if o.pr > 0 {
		detail, err := client.GetPRDetail(ctx, owner, name, o.pr)
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("%s/%s#%d@%s", owner, name, o.pr, shortSHA(detail.HeadSHA))
		log.Printf("browsing #%d %q by %s as %s", detail.Number, detail.Title, detail.Author.Login, client.GetUsername())
		return source.NewSnapshot(label, func(ctx context.Context) (tree.Payload, error) {
			files, err := client.GetPRFiles(ctx, owner, name, o.pr)
			if err != nil {
				return tree.Payload{}, err
			}
			return github.ChangedFilesPayload(files), nil
		}), nil
	}

	ref := o.ref
	if ref == "" {
		var err error
		if ref, err = client.GetDefaultBranch(ctx, owner, name); err != nil {
			return nil, err
		}
	}
	sha, err := client.ResolveRef(ctx, owner, name, ref)
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("%s/%s@%s:%s", owner, name, ref, shortSHA(sha))
	log.Printf("browsing %s as %s", label, client.GetUsername())
	return source.New(label, client.Lister(owner, name, sha), concurrency), nil
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
