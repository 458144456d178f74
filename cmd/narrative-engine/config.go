// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 2 * time.Second
	defaultUserAgent = "narrative-engine/0.1"
)

// defaultSocialQueries feed the social stream when the config file sets none.
var defaultSocialQueries = []string{
	"bitcoin ordinals",
	"bitcoin inscriptions",
	"runes protocol",
	"bitvm",
	"lightning network",
	"op_cat",
	"bitcoin rollup",
	"nostr zaps",
	"bitcoin mining hashrate",
}

// defaultRepoQueries feed the repository stream when the config file sets none.
var defaultRepoQueries = []string{
	"bitcoin ordinals",
	"brc-20",
	"bitcoin runes",
	"bitvm",
	"lightning network",
	"op_cat covenant",
	"bitcoin rollup",
	"nostr relay",
	"bitcoin wallet psbt",
}

func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   durationOr("http.timeout", defaultTimeout),
		UserAgent: stringOr("http.user_agent", defaultUserAgent),
	}
}

func socialConfig() types.SocialConfig {
	return types.SocialConfig{
		HTTPConfig:      httpConfig(),
		Queries:         sliceOr("social.queries", defaultSocialQueries),
		MaxResults:      intOr("social.max_results", 50),
		InterQueryDelay: durationOr("social.inter_query_delay", defaultDelay),
		BearerToken:     secretDefault("x-bearer-token", viper.GetString("social.bearer_token")),
	}
}

func repoConfig() types.RepoConfig {
	return types.RepoConfig{
		HTTPConfig:      httpConfig(),
		Queries:         sliceOr("repos.queries", defaultRepoQueries),
		MaxResults:      intOr("repos.max_results", 30),
		InterQueryDelay: durationOr("repos.inter_query_delay", defaultDelay),
		Token:           secretDefault("github-token", viper.GetString("repos.token")),
		CreatedWithin:   durationOr("repos.created_within", 90*24*time.Hour),
	}
}

func detectConfig() types.DetectConfig {
	return types.DetectConfig{
		AIConfig: types.AIConfig{
			Model:      stringOr("detect.model", "claude-sonnet-4-5-20250929"),
			APIKey:     secretDefault("anthropic-api-key", viper.GetString("detect.api_key")),
			MaxRetries: intOr("detect.max_retries", 3),
		},
		DataDir:     stringOr("detect.data_dir", "data"),
		OutputDir:   stringOr("detect.output_dir", "output"),
		Synthesizer: types.SynthesizerKind(stringOr("detect.synthesizer", string(types.SynthRules))),
	}
}

func reportConfig() types.ReportConfig {
	return types.ReportConfig{
		OutputDir: stringOr("report.output_dir", "output"),
		Period:    viper.GetString("report.period"),
	}
}

func stringOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := viper.GetDuration(key); v > 0 {
		return v
	}
	return fallback
}

func sliceOr(key string, fallback []string) []string {
	if v := viper.GetStringSlice(key); len(v) > 0 {
		return v
	}
	return fallback
}
