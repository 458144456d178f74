// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

const (
	maxKeyTerms  = 10
	minTermCount = 2
	minTermLen   = 4
)

// urlPattern strips links from post text before tokenizing.
var urlPattern = regexp.MustCompile(`https?://\S+`)

// nonWordSocial collapses everything but lowercase alphanumerics to spaces.
var nonWordSocial = regexp.MustCompile(`[^a-z0-9\s]+`)

// nonWordRepo keeps hyphens so "taproot-assets" splits into its parts.
var nonWordRepo = regexp.MustCompile(`[^a-z0-9\s-]+`)

// socialStopWords are tokens too common in post text to summarize anything.
var socialStopWords = stopSet(
	"this", "that", "with", "from", "have", "will", "just", "what", "when",
	"where", "your", "about", "like", "they", "their", "them", "there",
	"been", "were", "would", "could", "should", "into", "over", "more",
	"some", "only", "also", "very", "much", "going", "really", "think",
	"people", "right", "because", "still", "being", "which", "other",
	"thing", "things", "want", "make", "good", "time", "today", "here",
	"thread", "follow", "http", "https",
)

// repoStopWords overlaps the social set and additionally drops boilerplate
// repository vocabulary and the ecosystem's own names, which would
// otherwise dominate every cluster.
var repoStopWords = stopSet(
	"this", "that", "with", "from", "have", "will", "just", "your", "about",
	"been", "were", "which", "other", "more", "some", "also", "into",
	"using", "used", "based", "tool", "tools", "simple", "awesome",
	"implementation", "library", "project", "repository", "repo", "code",
	"written", "support", "example", "examples",
	"bitcoin", "blockchain", "crypto", "cryptocurrency", "satoshi",
)

func stopSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// socialKeyTerms returns up to 10 frequency-ranked tokens from the posts'
// text, links stripped. Ties keep first-seen order so output is stable.
func socialKeyTerms(items []types.SignalItem) []string {
	tokens := make([][]string, 0, len(items))
	for _, it := range items {
		text := strings.ToLower(it.Text)
		text = urlPattern.ReplaceAllString(text, " ")
		text = nonWordSocial.ReplaceAllString(text, " ")
		tokens = append(tokens, strings.Fields(text))
	}
	return topTerms(tokens, socialStopWords)
}

// repoKeyTerms returns up to 10 frequency-ranked tokens from repository
// names and descriptions. Hyphens act as word separators.
func repoKeyTerms(items []types.RepoItem) []string {
	tokens := make([][]string, 0, len(items))
	for _, it := range items {
		text := strings.ToLower(it.Name + " " + it.Description)
		text = nonWordRepo.ReplaceAllString(text, " ")
		text = strings.ReplaceAll(text, "-", " ")
		tokens = append(tokens, strings.Fields(text))
	}
	return topTerms(tokens, repoStopWords)
}

// topTerms counts tokens across all items, keeps those seen at least
// twice, and returns the top 10 by count. Ordering is deterministic:
// descending count, ties broken by first appearance in the input.
func topTerms(itemTokens [][]string, stop map[string]bool) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	seq := 0

	for _, toks := range itemTokens {
		for _, t := range toks {
			if len(t) < minTermLen || stop[t] {
				continue
			}
			if _, ok := counts[t]; !ok {
				firstSeen[t] = seq
				seq++
			}
			counts[t]++
		}
	}

	type termCount struct {
		term  string
		count int
	}
	ranked := make([]termCount, 0, len(counts))
	for term, count := range counts {
		if count >= minTermCount {
			ranked = append(ranked, termCount{term, count})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return firstSeen[ranked[i].term] < firstSeen[ranked[j].term]
	})

	if len(ranked) > maxKeyTerms {
		ranked = ranked[:maxKeyTerms]
	}
	terms := make([]string, len(ranked))
	for i, tc := range ranked {
		terms[i] = tc.term
	}
	return terms
}
