// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "narrative-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SocialConfig holds settings for the social fetch stage.
type SocialConfig struct {
	HTTPConfig `yaml:",inline"`

	// Queries are the search queries run against the social API, in order.
	Queries []string `json:"queries" yaml:"queries"`

	// MaxResults is the maximum number of posts requested per query (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// InterQueryDelay is the delay between consecutive API calls (default 2s).
	InterQueryDelay time.Duration `json:"inter_query_delay" yaml:"inter_query_delay"`

	// BearerToken authenticates against the social API.
	BearerToken string `json:"bearer_token,omitempty" yaml:"bearer_token,omitempty"`
}

// RepoConfig holds settings for the repository fetch stage.
type RepoConfig struct {
	HTTPConfig `yaml:",inline"`

	// Queries are the search queries run against the repository API, in order.
	Queries []string `json:"queries" yaml:"queries"`

	// MaxResults is the maximum number of repositories requested per query (default 30).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// InterQueryDelay is the delay between consecutive API calls (default 2s).
	InterQueryDelay time.Duration `json:"inter_query_delay" yaml:"inter_query_delay"`

	// Token is an optional API token for higher rate limits.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// CreatedWithin restricts results to repositories created within this
	// window before the fetch (default 90 days).
	CreatedWithin time.Duration `json:"created_within" yaml:"created_within"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SynthesizerKind selects how narrative explanations and ideas are produced.
type SynthesizerKind string

const (
	// SynthRules uses the deterministic rule-based synthesizer.
	SynthRules SynthesizerKind = "rules"

	// SynthClaude uses the Claude API, falling back to rules on error.
	SynthClaude SynthesizerKind = "claude"
)

// DetectConfig holds settings for the detection stage.
type DetectConfig struct {
	AIConfig `yaml:",inline"`

	// DataDir is the directory holding capture files (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// OutputDir is the directory for detection output (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Synthesizer selects explanation/idea generation: rules or claude.
	Synthesizer SynthesizerKind `json:"synthesizer" yaml:"synthesizer"`
}

// ReportConfig holds settings for the report stage.
type ReportConfig struct {
	// OutputDir is the directory for rendered reports (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Period describes the observation window printed in the report envelope.
	Period string `json:"period" yaml:"period"`
}

// TopicRule is the raw configuration form of one topic pattern entry:
// a topic label and the regex patterns that assign items to it. Patterns
// are matched case-insensitively as substrings.
type TopicRule struct {
	Topic    string   `json:"topic" yaml:"topic"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// AlignmentEntry maps one narrative name to its per-stream topic labels.
// Either topic may be empty, meaning the narrative has no counterpart
// cluster in that stream by design.
type AlignmentEntry struct {
	Narrative   string `json:"narrative" yaml:"narrative"`
	SocialTopic string `json:"social_topic" yaml:"social_topic"`
	RepoTopic   string `json:"repo_topic" yaml:"repo_topic"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Social SocialConfig `json:"social" yaml:"social"`
	Repos  RepoConfig   `json:"repos" yaml:"repos"`
	Detect DetectConfig `json:"detect" yaml:"detect"`
	Report ReportConfig `json:"report" yaml:"report"`

	// SocialTopics and RepoTopics override the built-in topic pattern
	// tables when non-empty.
	SocialTopics []TopicRule `json:"social_topics,omitempty" yaml:"social_topics,omitempty"`
	RepoTopics   []TopicRule `json:"repo_topics,omitempty" yaml:"repo_topics,omitempty"`

	// Alignment overrides the built-in alignment table when non-empty.
	Alignment []AlignmentEntry `json:"alignment,omitempty" yaml:"alignment,omitempty"`
}
