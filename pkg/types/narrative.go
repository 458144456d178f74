// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Stage describes a narrative's lifecycle maturity.
type Stage string

const (
	StagePreNarrative Stage = "pre-narrative"
	StageEmergence    Stage = "emergence"
	StageAcceleration Stage = "acceleration"
	StagePeak         Stage = "peak"
)

// Difficulty tiers for build ideas.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// BuildIdea is a suggested project responding to a narrative.
type BuildIdea struct {
	// Title is a short project name.
	Title string `json:"title" yaml:"title"`

	// Description explains what to build and why it fits the narrative.
	Description string `json:"description" yaml:"description"`

	// Difficulty is the estimated effort tier: easy, medium, or hard.
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`

	// Category groups the idea (e.g. "tooling", "infrastructure", "consumer").
	Category string `json:"category" yaml:"category"`
}

// PostPreview is a truncated view of a social post embedded in a snapshot.
type PostPreview struct {
	// Text is the post body truncated to 200 characters.
	Text string `json:"text" yaml:"text"`

	// Author is the posting account's handle.
	Author string `json:"author" yaml:"author"`

	// Likes is the like counter at capture time.
	Likes int `json:"likes" yaml:"likes"`

	// URL links to the post.
	URL string `json:"url" yaml:"url"`
}

// RepoPreview is a view of a repository embedded in a snapshot.
type RepoPreview struct {
	// Name is the owner-qualified repository name.
	Name string `json:"name" yaml:"name"`

	// Description is the repository description.
	Description string `json:"description" yaml:"description"`

	// Stars is the star counter at capture time.
	Stars int `json:"stars" yaml:"stars"`

	// URL links to the repository.
	URL string `json:"url" yaml:"url"`
}

// SocialSnapshot summarizes the social side of a narrative's signal. All
// fields are zero when the narrative had no matching social cluster.
type SocialSnapshot struct {
	PostCount       int           `json:"post_count" yaml:"post_count"`
	AvgEngagement   int           `json:"avg_engagement" yaml:"avg_engagement"`
	TotalEngagement int           `json:"total_engagement" yaml:"total_engagement"`
	UniqueAuthors   int           `json:"unique_authors" yaml:"unique_authors"`
	TopPosts        []PostPreview `json:"top_posts" yaml:"top_posts"`
	KeyTerms        []string      `json:"key_terms" yaml:"key_terms"`
}

// DevSnapshot summarizes the developer side of a narrative's signal. All
// fields are zero when the narrative had no matching repository cluster.
type DevSnapshot struct {
	RepoCount  int           `json:"repo_count" yaml:"repo_count"`
	TotalStars int           `json:"total_stars" yaml:"total_stars"`
	AvgStars   float64       `json:"avg_stars" yaml:"avg_stars"`
	TopRepos   []RepoPreview `json:"top_repos" yaml:"top_repos"`
	KeyTerms   []string      `json:"key_terms" yaml:"key_terms"`
}

// Signals pairs the two stream snapshots behind a narrative.
type Signals struct {
	Social    SocialSnapshot `json:"social" yaml:"social"`
	Developer DevSnapshot    `json:"developer" yaml:"developer"`
}

// Narrative is one detected narrative: a named cross-stream signal with a
// composite score, lifecycle stage, confidence, and build suggestions.
type Narrative struct {
	// Name is the narrative's name from the alignment table.
	Name string `json:"name" yaml:"name"`

	// Score is the composite signal score, an integer in [0, 100].
	Score int `json:"score" yaml:"score"`

	// Stage is the lifecycle stage classified from the signal thresholds.
	Stage Stage `json:"stage" yaml:"stage"`

	// Confidence is in [0.25, 0.95], rounded to two decimals.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Explanation is a human-readable account of why the narrative scored
	// and staged as it did.
	Explanation string `json:"explanation" yaml:"explanation"`

	// Signals holds the per-stream snapshots the score was computed from.
	Signals Signals `json:"signals" yaml:"signals"`

	// Ideas lists 1-5 build suggestions for the narrative.
	Ideas []BuildIdea `json:"ideas" yaml:"ideas"`
}

// Report is the envelope around one detection run's output.
type Report struct {
	// RunID identifies the detection run.
	RunID string `json:"run_id" yaml:"run_id"`

	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Period describes the observation window (e.g. "7 days of posts, 90 days of repos").
	Period string `json:"period" yaml:"period"`

	// Narratives is the ranked list of detected narratives, strongest first.
	Narratives []Narrative `json:"narratives" yaml:"narratives"`

	// Methodology describes how the narratives were scored.
	Methodology string `json:"methodology" yaml:"methodology"`
}
