package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// ErrNotAuthenticated is returned by NewClient when gh has no logged-in user.
var ErrNotAuthenticated = errors.New("gh not authenticated: run 'gh auth login' first")

// CommandRunner executes a CLI command and returns its stdout.
// The default implementation runs the gh CLI via exec.Command.
// Tests can inject a mock implementation.
type CommandRunner func(ctx context.Context, args ...string) (string, error)

// Client wraps the gh CLI for directory listings and a go-github client,
// authenticated with the gh token, for the REST endpoints that paginate.
type Client struct {
	username string
	run      CommandRunner
	gh       *gh.Client
}

// NewClient verifies the gh CLI is installed and authenticated, then caches the current user.
func NewClient() (*Client, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return nil, fmt.Errorf("gh CLI not found: install from https://cli.github.com")
	}

	c := &Client{run: defaultRunner}

	if _, err := c.ghExec(context.Background(), "auth", "status"); err != nil {
		return nil, ErrNotAuthenticated
	}

	out, err := c.ghExec(context.Background(), "api", "user", "--jq", ".login")
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}
	c.username = strings.TrimSpace(out)

	token, err := c.ghExec(context.Background(), "auth", "token")
	if err != nil {
		return nil, fmt.Errorf("failed to read gh auth token: %w", err)
	}
	c.gh = gh.NewClient(nil).WithAuthToken(strings.TrimSpace(token))

	return c, nil
}

// NewTestClient creates a Client with a custom CommandRunner for testing.
// The REST client is unauthenticated; point it at a test server with SetBaseURL.
func NewTestClient(username string, runner CommandRunner) *Client {
	return &Client{username: username, run: runner, gh: gh.NewClient(nil)}
}

// SetBaseURL points the REST client at another API root, such as a GitHub
// Enterprise host or an httptest server.
func (c *Client) SetBaseURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSuffix(rawURL, "/") + "/")
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", rawURL, err)
	}
	c.gh.BaseURL = u
	return nil
}

// GetUsername returns the login of the authenticated user.
func (c *Client) GetUsername() string {
	return c.username
}

// defaultRunner executes the gh CLI via exec.Command.
func defaultRunner(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("gh %s failed: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ghExec runs a gh CLI command via the client's CommandRunner.
func (c *Client) ghExec(ctx context.Context, args ...string) (string, error) {
	return c.run(ctx, args...)
}

// ghJSON runs a gh CLI command and unmarshals the JSON output into dest.
func (c *Client) ghJSON(ctx context.Context, dest interface{}, args ...string) error {
	out, err := c.ghExec(ctx, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(out), dest); err != nil {
		return fmt.Errorf("failed to parse gh output: %w", err)
	}
	return nil
}
