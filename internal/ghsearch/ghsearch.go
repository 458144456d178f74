// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ghsearch fetches repository metadata from the GitHub search API,
// sequentially and politely paced, and returns a deduplicated item list in
// global star order ready for clustering.
package ghsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/agenttessaa/narrative-detection/internal/httputil"
	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// apiBase is the repository search endpoint. Declared as a var so tests
// can substitute an httptest server.
var apiBase = "https://api.github.com/search/repositories"

const defaultCreatedWithin = 90 * 24 * time.Hour

// Client queries the GitHub search API. Token is optional; unauthenticated
// requests work with lower rate limits.
type Client struct {
	Token  string
	Client *http.Client
}

// FetchAll runs every configured query in order with the configured delay
// between calls, restricts results to recently created repositories,
// dedupes by full name across queries, and returns items sorted by stars
// descending. Failure and rate-limit semantics match the social fetcher:
// log-and-continue per query, stop-the-stream on a hard rate limit.
func (c *Client) FetchAll(ctx context.Context, cfg types.RepoConfig, w io.Writer) ([]types.RepoItem, error) {
	if len(cfg.Queries) == 0 {
		return nil, fmt.Errorf("no repository queries configured")
	}

	seen := make(map[string]bool)
	var items []types.RepoItem

	for i, q := range cfg.Queries {
		if i > 0 && cfg.InterQueryDelay > 0 {
			select {
			case <-ctx.Done():
				return items, ctx.Err()
			case <-time.After(cfg.InterQueryDelay):
			}
		}

		batch, err := c.search(ctx, q, cfg)
		if errors.Is(err, httputil.ErrRateLimited) {
			fmt.Fprintf(w, "warning: GitHub API rate limited, stopping stream after %d of %d queries\n", i, len(cfg.Queries))
			break
		}
		if err != nil {
			fmt.Fprintf(w, "warning: repository query %q failed: %v\n", q, err)
			continue
		}

		for _, it := range batch {
			if seen[it.FullName] {
				continue
			}
			seen[it.FullName] = true
			items = append(items, it)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Stars > items[j].Stars
	})
	return items, nil
}

// searchResponse mirrors the repository search payload.
type searchResponse struct {
	Items []struct {
		Name        string `json:"name"`
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
		Forks       int    `json:"forks_count"`
		CreatedAt   string `json:"created_at"`
		UpdatedAt   string `json:"updated_at"`
		Language    string `json:"language"`
		HTMLURL     string `json:"html_url"`
	} `json:"items"`
}

// search runs one query against the repository search endpoint.
func (c *Client) search(ctx context.Context, query string, cfg types.RepoConfig) ([]types.RepoItem, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 30
	}
	createdWithin := cfg.CreatedWithin
	if createdWithin <= 0 {
		createdWithin = defaultCreatedWithin
	}
	cutoff := time.Now().Add(-createdWithin).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", query+" created:>"+cutoff)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", cfg.UserAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	defer resp.Body.Close()

	// GitHub signals secondary rate limits as 403 as well as 429.
	if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return nil, httputil.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing GitHub response: %w", err)
	}

	items := make([]types.RepoItem, 0, len(sr.Items))
	for _, r := range sr.Items {
		it := types.RepoItem{
			Name:        r.Name,
			FullName:    r.FullName,
			Description: r.Description,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Language:    r.Language,
			Query:       query,
			URL:         r.HTMLURL,
		}
		if ts, parseErr := time.Parse(time.RFC3339, r.CreatedAt); parseErr == nil {
			it.CreatedAt = ts
		}
		if ts, parseErr := time.Parse(time.RFC3339, r.UpdatedAt); parseErr == nil {
			it.UpdatedAt = ts
		}
		items = append(items, it)
	}
	return items, nil
}
