// Package acl holds anti-corruption adapters for external services: the
// code host and the payment provider. Each adapter translates the
// remote API into the application's ports and wraps calls in a circuit
// breaker so a flapping upstream fails fast instead of piling up
// requests.
package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"appprove-backend/application/ports"
	appErrors "appprove-backend/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// GitHubLister implements ports.RepositoryLister against the GitHub
// REST API.
type GitHubLister struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewGitHubLister creates a repository lister for the given API base
// URL (https://api.github.com in production, a test server in tests).
func NewGitHubLister(baseURL string, logger *zap.Logger) *GitHubLister {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "github-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &GitHubLister{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		breaker:    breaker,
		logger:     logger,
	}
}

type githubRepo struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Private     bool   `json:"private"`
	Fork        bool   `json:"fork"`
}

// ListForUser returns the public repositories of the given GitHub user,
// forks excluded.
func (l *GitHubLister) ListForUser(ctx context.Context, username string) ([]ports.Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100",
		l.baseURL, url.PathEscape(username))

	result, err := l.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return []githubRepo{}, nil
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("github api returned status %d", resp.StatusCode)
		}

		var repos []githubRepo
		if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
			return nil, fmt.Errorf("failed to decode github response: %w", err)
		}
		return repos, nil
	})
	if err != nil {
		return nil, appErrors.NewExternalError("failed to list repositories", err)
	}

	repos := result.([]githubRepo)
	listed := make([]ports.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		listed = append(listed, ports.Repository{
			FullName:    repo.FullName,
			Description: repo.Description,
			HTMLURL:     repo.HTMLURL,
			Private:     repo.Private,
		})
	}
	return listed, nil
}
