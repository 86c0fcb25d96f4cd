package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// GetPRDetail fetches the PR fields needed to browse its head tree.
func (c *Client) GetPRDetail(ctx context.Context, owner, repo string, number int) (*PRDetail, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get PR #%d: %w", number, err)
	}

	return &PRDetail{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		HTMLURL:    pr.GetHTMLURL(),
		Author:     userFromGH(pr.GetUser()),
		Repo:       Repo{Owner: owner, Name: repo, FullName: owner + "/" + repo},
		BaseBranch: pr.GetBase().GetRef(),
		HeadBranch: pr.GetHead().GetRef(),
		HeadSHA:    pr.GetHead().GetSHA(),
	}, nil
}

// ghRepo is the subset of `gh api repos/{owner}/{repo}` we read.
type ghRepo struct {
	DefaultBranch string `json:"default_branch"`
}

// GetDefaultBranch returns the repository's default branch name.
func (c *Client) GetDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var r ghRepo
	if err := c.ghJSON(ctx, &r, "api", fmt.Sprintf("repos/%s/%s", owner, repo)); err != nil {
		return "", fmt.Errorf("failed to get default branch of %s/%s: %w", owner, repo, err)
	}
	if r.DefaultBranch == "" {
		return "", fmt.Errorf("repository %s/%s reports no default branch", owner, repo)
	}
	return r.DefaultBranch, nil
}

// ResolveRef pins a branch, tag or SHA to the commit it currently names.
func (c *Client) ResolveRef(ctx context.Context, owner, repo, ref string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/commits/%s", owner, repo, url.PathEscape(ref))
	out, err := c.ghExec(ctx, "api", endpoint, "--jq", ".sha")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s in %s/%s: %w", ref, owner, repo, err)
	}
	sha := strings.TrimSpace(out)
	if sha == "" {
		return "", fmt.Errorf("ref %s in %s/%s resolved to no commit", ref, owner, repo)
	}
	return sha, nil
}

// userFromGH converts a go-github User to our User type.
func userFromGH(u *gh.User) User {
	if u == nil {
		return User{Login: "unknown"}
	}
	return User{
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
	}
}
