// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package social fetches posts from the X recent-search API, sequentially
// and politely paced, and returns a deduplicated item list in global
// engagement order ready for clustering.
package social

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

// apiBase is the recent-search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.x.com/2/tweets/search/recent"

// Client queries the X API.
type Client struct {
	BearerToken string
	Client      *http.Client
}

// FetchAll runs every configured query in order with the configured delay
// between calls, dedupes posts by ID across queries, and returns items
// sorted by engagement descending. A failed query logs a warning to w and
// the fetch continues; a hard rate limit stops further queries for the
// stream without discarding already-collected items.
func (c *Client) FetchAll(ctx context.Context, cfg types.SocialConfig, w io.Writer) ([]types.SignalItem, error) {
	if len(cfg.Queries) == 0 {
		return nil, fmt.Errorf("no social queries configured")
	}

	seen := make(map[string]bool)
	var items []types.SignalItem

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
			fmt.Fprintf(w, "warning: social API rate limited, stopping stream after %d of %d queries\n", i, len(cfg.Queries))
			break
		}
		if err != nil {
			fmt.Fprintf(w, "warning: social query %q failed: %v\n", q, err)
			continue
		}

		for _, it := range batch {
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
			items = append(items, it)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Engagement > items[j].Engagement
	})
	return items, nil
}

// searchResponse mirrors the recent-search payload.
type searchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		AuthorID      string `json:"author_id"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			LikeCount    int `json:"like_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

// search runs one query against the recent-search endpoint.
func (c *Client) search(ctx context.Context, query string, cfg types.SocialConfig) ([]types.SignalItem, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	params := url.Values{}
	params.Set("query", query+" -is:retweet")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", "public_metrics,created_at,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	req.Header.Set("User-Agent", cfg.UserAgent)

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

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("social API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing social response: %w", err)
	}

	usernames := make(map[string]string, len(sr.Includes.Users))
	for _, u := range sr.Includes.Users {
		usernames[u.ID] = u.Username
	}

	items := make([]types.SignalItem, 0, len(sr.Data))
	for _, t := range sr.Data {
		it := types.SignalItem{
			ID:      t.ID,
			Text:    t.Text,
			Author:  usernames[t.AuthorID],
			Likes:   t.PublicMetrics.LikeCount,
			Reposts: t.PublicMetrics.RetweetCount,
			Replies: t.PublicMetrics.ReplyCount,
			Query:   query,
		}
		it.Engagement = Engagement(it.Likes, it.Reposts, it.Replies)
		if ts, parseErr := time.Parse(time.RFC3339, t.CreatedAt); parseErr == nil {
			it.CreatedAt = ts
		}
		if it.Author != "" {
			it.URL = fmt.Sprintf("https://x.com/%s/status/%s", it.Author, it.ID)
		}
		items = append(items, it)
	}
	return items, nil
}

// Engagement is the derived score for one post. Reposts count double:
// amplification spreads a narrative further than passive approval.
func Engagement(likes, reposts, replies int) int {
	return likes + 2*reposts + replies
}
