// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghsearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

func testConfig(queries ...string) types.RepoConfig {
	return types.RepoConfig{
		Queries:       queries,
		MaxResults:    30,
		CreatedWithin: 90 * 24 * time.Hour,
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "narrative-engine-test/0.1",
		},
	}
}

func swapAPIBase(t *testing.T, url string) {
	t.Helper()
	original := apiBase
	apiBase = url
	t.Cleanup(func() { apiBase = original })
}

func repoJSON(fullName, description string, stars int) string {
	name := fullName[strings.IndexByte(fullName, '/')+1:]
	return fmt.Sprintf(`{"name": %q, "full_name": %q, "description": %q,
		"stargazers_count": %d, "forks_count": 2, "language": "Rust",
		"created_at": "2026-08-01T00:00:00Z", "updated_at": "2026-08-20T00:00:00Z",
		"html_url": "https://github.com/%s"}`,
		name, fullName, description, stars, fullName)
}

func TestFetchAllParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q, want the GitHub media type", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gh-token" {
			t.Errorf("Authorization = %q, want Bearer gh-token", got)
		}
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, "created:>") {
			t.Errorf("q = %q missing created cutoff", q)
		}
		if got := r.URL.Query().Get("sort"); got != "stars" {
			t.Errorf("sort = %q, want stars", got)
		}
		fmt.Fprintf(w, `{"items": [%s]}`, repoJSON("alice/ord-indexer", "ordinals indexer", 120))
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	c := &Client{Token: "gh-token"}
	items, err := c.FetchAll(context.Background(), testConfig("ordinals"), io.Discard)
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	it := items[0]
	if it.FullName != "alice/ord-indexer" || it.Name != "ord-indexer" {
		t.Errorf("item = %+v, want alice/ord-indexer", it)
	}
	if it.Stars != 120 || it.Language != "Rust" {
		t.Errorf("Stars/Language = %d/%q, want 120/Rust", it.Stars, it.Language)
	}
	if it.URL != "https://github.com/alice/ord-indexer" {
		t.Errorf("URL = %q, want the html_url", it.URL)
	}
	if it.Query != "ordinals" {
		t.Errorf("Query = %q, want ordinals", it.Query)
	}
	if it.CreatedAt.IsZero() || it.UpdatedAt.IsZero() {
		t.Error("timestamps not parsed")
	}
}

func TestFetchAllAnonymousOmitsAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty for anonymous client", got)
		}
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	c := &Client{}
	if _, err := c.FetchAll(context.Background(), testConfig("q"), io.Discard); err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
}

func TestFetchAllDedupesAndSortsByStars(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprintf(w, `{"items": [%s, %s]}`,
				repoJSON("a/low", "small", 5),
				repoJSON("b/high", "big", 500))
			return
		}
		// Second query returns an overlap plus one new repo.
		fmt.Fprintf(w, `{"items": [%s, %s]}`,
			repoJSON("b/high", "big", 500),
			repoJSON("c/mid", "medium", 50))
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	c := &Client{}
	items, err := c.FetchAll(context.Background(), testConfig("q1", "q2"), io.Discard)
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}

	var names []string
	for _, it := range items {
		names = append(names, it.FullName)
	}
	if len(names) != 3 || names[0] != "b/high" || names[1] != "c/mid" || names[2] != "a/low" {
		t.Errorf("order = %v, want [b/high c/mid a/low]", names)
	}
}

func TestFetchAllContinuesAfterFailedQuery(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, `{"items": [%s]}`, repoJSON("a/runes-lib", "runes library", 10))
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	c := &Client{}
	var warnings strings.Builder
	items, err := c.FetchAll(context.Background(), testConfig("broken", "runes"), &warnings)
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if len(items) != 1 || items[0].FullName != "a/runes-lib" {
		t.Errorf("items = %+v, want the single item from the second query", items)
	}
	if !strings.Contains(warnings.String(), "broken") {
		t.Errorf("warning output %q does not name the failed query", warnings.String())
	}
}

func TestFetchAllStopsOnForbiddenRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprintf(w, `{"items": [%s]}`, repoJSON("a/first", "first", 7))
			return
		}
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	c := &Client{}
	var warnings strings.Builder
	items, err := c.FetchAll(context.Background(), testConfig("first", "limited", "never-reached"), &warnings)
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2 (stream stops at the limit)", calls)
	}
	if len(items) != 1 || items[0].FullName != "a/first" {
		t.Errorf("items = %+v, want the item collected before the limit", items)
	}
	if !strings.Contains(warnings.String(), "rate limited") {
		t.Errorf("warning output %q does not mention the rate limit", warnings.String())
	}
}

func TestFetchAllNoQueries(t *testing.T) {
	c := &Client{}
	if _, err := c.FetchAll(context.Background(), testConfig(), io.Discard); err == nil {
		t.Error("FetchAll accepted an empty query list")
	}
}
