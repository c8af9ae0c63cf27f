// Package feed holds the network collaborators of the backdrop: the
// repository cards source and the now-playing poller. Both swallow failures
// and fall back to something drawable.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"linux-backdrop/internal/utils"
)

const MaxCards = 4

type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
}

// DisplayDescription returns the description or a placeholder.
func (r Repository) DisplayDescription() string {
	if r.Description == "" {
		return "No description provided."
	}
	return r.Description
}

func (r Repository) DisplayLanguage() string {
	if r.Language == "" {
		return "N/A"
	}
	return r.Language
}

// RepositoryProvider lists a user's repositories, most recently updated first.
type RepositoryProvider interface {
	Repositories(ctx context.Context, user string) ([]Repository, error)
}

// MockRepositories is shown whenever the live list is unavailable or empty.
var MockRepositories = []Repository{
	{Name: "security-scanner", Description: "Automated vulnerability scanner for web applications.", Stars: 128, Language: "Python"},
	{Name: "packet-sniffer", Description: "Network traffic analysis tool for security auditing.", Stars: 85, Language: "C++"},
	{Name: "auth-guard", Description: "JWT-based authentication middleware with rate limiting.", Stars: 240, Language: "JavaScript"},
	{Name: "zero-trust-proxy", Description: "Implementation of zero trust architecture principles.", Stars: 95, Language: "Go"},
}

// GitHub reads public repositories from the GitHub REST API.
type GitHub struct {
	Client  *http.Client
	BaseURL string
}

func NewGitHub(baseURL string) *GitHub {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHub{
		Client:  &http.Client{Timeout: 10 * time.Second},
		BaseURL: baseURL,
	}
}

func (g *GitHub) Repositories(ctx context.Context, user string) ([]Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated", g.BaseURL, url.PathEscape(user))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("github: %s for user %q", resp.Status, user)
	}

	var repos []Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: decode repositories: %w", err)
	}
	return repos, nil
}

// LoadRepositories returns at most limit cards. Any failure, and an empty
// result, yields the mock list instead; it never returns an error.
func LoadRepositories(ctx context.Context, provider RepositoryProvider, user string, limit int) []Repository {
	if limit <= 0 || limit > MaxCards {
		limit = MaxCards
	}

	var repos []Repository
	var err error
	if provider == nil || user == "" {
		err = fmt.Errorf("no repository source configured")
	} else {
		repos, err = provider.Repositories(ctx, user)
	}

	switch {
	case err != nil:
		utils.Warn("Fetching repositories failed, using mock data: %v", err)
		repos = MockRepositories
	case len(repos) == 0:
		utils.Info("No repositories for %s, using mock data", user)
		repos = MockRepositories
	}

	if len(repos) > limit {
		repos = repos[:limit]
	}
	out := make([]Repository, len(repos))
	copy(out, repos)
	return out
}
