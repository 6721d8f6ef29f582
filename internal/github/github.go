// Package github wraps the outbound call to the GitHub repository
// listing API used by the profile routes.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/devconnect-io/devconnect/internal/utils"
)

// ErrNoProfile is returned for any non-200 upstream response; the API
// surfaces it as a 404 without distinguishing the upstream status.
var ErrNoProfile = errors.New("github: no profile found")

type Client struct {
	client       *resty.Client
	clientID     string
	clientSecret string
}

func NewClient(cfg utils.GitHubConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "devconnect-api")

	return &Client{
		client:       cli,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// ListRepos fetches the user's 5 most recently created repositories and
// returns the upstream body verbatim.
func (c *Client) ListRepos(ctx context.Context, username string) (json.RawMessage, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"per_page":      "5",
			"sort":          "created:asc",
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
		}).
		SetPathParam("username", username).
		Get("/users/{username}/repos")
	if err != nil {
		return nil, fmt.Errorf("github: list repos: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, ErrNoProfile
	}

	return json.RawMessage(resp.Body()), nil
}
