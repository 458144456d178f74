// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RepoItem is one captured source repository. Immutable once captured.
type RepoItem struct {
	// Name is the repository's short name.
	Name string `json:"name" yaml:"name"`

	// FullName is the owner-qualified name (e.g. "alice/inscribe-kit").
	FullName string `json:"full_name" yaml:"full_name"`

	// Description is the repository description, possibly empty.
	Description string `json:"description" yaml:"description"`

	// Stars and Forks are the counters at capture time.
	Stars int `json:"stars" yaml:"stars"`
	Forks int `json:"forks" yaml:"forks"`

	// CreatedAt and UpdatedAt are the repository timestamps.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// Language is the repository's primary language, possibly empty.
	Language string `json:"language" yaml:"language"`

	// Query is the search query that surfaced this repository.
	Query string `json:"query" yaml:"query"`

	// URL links to the repository.
	URL string `json:"url" yaml:"url"`
}

// RepoCluster groups the repositories matched to one topic label.
type RepoCluster struct {
	// Topic is the cluster's topic label from the pattern table.
	Topic string `json:"topic" yaml:"topic"`

	// RepoCount is the number of repositories in the cluster.
	RepoCount int `json:"repo_count" yaml:"repo_count"`

	// TotalStars sums the star counts of all member repositories.
	TotalStars int `json:"total_stars" yaml:"total_stars"`

	// AvgStars is TotalStars / RepoCount, rounded to one decimal.
	AvgStars float64 `json:"avg_stars" yaml:"avg_stars"`

	// TopRepos holds up to 5 repositories in the stream's global star order.
	TopRepos []RepoItem `json:"top_repos" yaml:"top_repos"`

	// KeyTerms holds up to 10 frequency-ranked tokens summarizing the cluster.
	KeyTerms []string `json:"key_terms" yaml:"key_terms"`
}
