// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cluster groups captured items into named topic buckets using
// ordered regex pattern tables, and extracts frequency-ranked key terms
// per bucket.
package cluster

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// Stream weights for the cluster strength sort. Social clusters reward
// volume more heavily relative to engagement totals.
const (
	socialWeight = 10
	repoWeight   = 5
)

// TopicRule is one compiled topic entry: a label and the patterns that
// assign items to it.
type TopicRule struct {
	Topic    string
	Patterns []*regexp.Regexp
}

// matches reports whether any of the rule's patterns matches text.
func (r TopicRule) matches(text string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// TopicTable is an ordered set of topic rules. Order is preserved from
// configuration so output is reproducible; an item may match any number
// of topics.
type TopicTable []TopicRule

// Compile builds a TopicTable from raw configuration rules. Patterns are
// compiled case-insensitively and match as substrings.
func Compile(rules []types.TopicRule) (TopicTable, error) {
	table := make(TopicTable, 0, len(rules))
	for _, rule := range rules {
		compiled := TopicRule{Topic: rule.Topic}
		for _, pat := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + pat)
			if err != nil {
				return nil, fmt.Errorf("compiling pattern %q for topic %q: %w", pat, rule.Topic, err)
			}
			compiled.Patterns = append(compiled.Patterns, re)
		}
		table = append(table, compiled)
	}
	return table, nil
}

// ClusterSocial buckets posts by topic. Items must arrive in the stream's
// global sort order (engagement descending); each cluster's TopPosts are
// the first 5 matches in that order, not a per-cluster re-sort. Topics
// with no matches produce no cluster.
func ClusterSocial(items []types.SignalItem, table TopicTable) []types.SocialCluster {
	var clusters []types.SocialCluster

	for _, rule := range table {
		var matches []types.SignalItem
		for _, it := range items {
			if rule.matches(it.Text + " " + it.Query) {
				matches = append(matches, it)
			}
		}
		if len(matches) == 0 {
			continue
		}

		total := 0
		authors := make(map[string]bool)
		for _, it := range matches {
			total += it.Engagement
			if it.Author != "" {
				authors[it.Author] = true
			}
		}

		clusters = append(clusters, types.SocialCluster{
			Topic:           rule.Topic,
			PostCount:       len(matches),
			TotalEngagement: total,
			AvgEngagement:   int(math.Round(float64(total) / float64(len(matches)))),
			UniqueAuthors:   len(authors),
			TopPosts:        firstN(matches, 5),
			KeyTerms:        socialKeyTerms(matches),
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusterStrength(clusters[i].PostCount, clusters[i].TotalEngagement, socialWeight) >
			clusterStrength(clusters[j].PostCount, clusters[j].TotalEngagement, socialWeight)
	})
	return clusters
}

// ClusterRepos buckets repositories by topic. Items must arrive in the
// stream's global sort order (stars descending).
func ClusterRepos(items []types.RepoItem, table TopicTable) []types.RepoCluster {
	var clusters []types.RepoCluster

	for _, rule := range table {
		var matches []types.RepoItem
		for _, it := range items {
			if rule.matches(repoText(it)) {
				matches = append(matches, it)
			}
		}
		if len(matches) == 0 {
			continue
		}

		total := 0
		for _, it := range matches {
			total += it.Stars
		}

		clusters = append(clusters, types.RepoCluster{
			Topic:      rule.Topic,
			RepoCount:  len(matches),
			TotalStars: total,
			AvgStars:   math.Round(float64(total)/float64(len(matches))*10) / 10,
			TopRepos:   firstN(matches, 5),
			KeyTerms:   repoKeyTerms(matches),
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusterStrength(clusters[i].RepoCount, clusters[i].TotalStars, repoWeight) >
			clusterStrength(clusters[j].RepoCount, clusters[j].TotalStars, repoWeight)
	})
	return clusters
}

// clusterStrength is the weighted sort key: count*weight + total.
func clusterStrength(count, total, weight int) int {
	return count*weight + total
}

// repoText is the matchable text representation of a repository.
func repoText(it types.RepoItem) string {
	return strings.Join([]string{it.Name, it.Description, it.Query}, " ")
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
