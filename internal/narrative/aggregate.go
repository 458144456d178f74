// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"context"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// snapshotPreviewLimit bounds the post/repo previews embedded in a narrative.
const snapshotPreviewLimit = 3

// previewTextLimit truncates post text embedded in a snapshot.
const previewTextLimit = 200

// Aggregate aligns the two cluster streams by the alignment table, scores
// and stage-classifies each narrative, and returns the surviving records
// sorted by score descending (ties keep table order). A narrative is
// emitted only if at least one of its clusters exists and its composite
// score clears the floor.
//
// The synthesizer may be nil or fail per narrative; in both cases the
// rule-based explanation and ideas stand. Warnings go to w.
func Aggregate(ctx context.Context, social []types.SocialCluster, repos []types.RepoCluster, alignment []types.AlignmentEntry, synth Synthesizer, w io.Writer) ([]types.Narrative, error) {
	if err := ValidateAlignment(alignment); err != nil {
		return nil, fmt.Errorf("invalid alignment table: %w", err)
	}

	var narratives []types.Narrative
	for _, entry := range alignment {
		sc := findSocial(social, entry.SocialTopic)
		rc := findRepo(repos, entry.RepoTopic)
		if sc == nil && rc == nil {
			continue
		}

		n := types.Narrative{
			Name: entry.Narrative,
			Signals: types.Signals{
				Social:    socialSnapshot(sc),
				Developer: devSnapshot(rc),
			},
		}
		n.Score = compositeScore(n.Signals.Social, n.Signals.Developer)
		if n.Score < minScore {
			continue
		}
		n.Stage = classifyStage(n.Signals.Social, n.Signals.Developer)
		n.Confidence = confidenceFor(n.Signals.Social, n.Signals.Developer)

		rules := ruleSynthesis(n)
		n.Explanation = rules.Explanation
		n.Ideas = rules.Ideas

		if synth != nil {
			syn, err := synth.Synthesize(ctx, n)
			if err != nil {
				fmt.Fprintf(w, "warning: synthesis for %q failed, keeping rule-based text: %v\n", n.Name, err)
			} else {
				n.Explanation = syn.Explanation
				if len(syn.Ideas) > 0 {
					n.Ideas = syn.Ideas
				}
			}
		}

		narratives = append(narratives, n)
	}

	sort.SliceStable(narratives, func(i, j int) bool {
		return narratives[i].Score > narratives[j].Score
	})
	return narratives, nil
}

// findSocial returns the cluster with the given topic, or nil. An empty
// topic never matches: it marks a stream the narrative does not use.
func findSocial(clusters []types.SocialCluster, topic string) *types.SocialCluster {
	if topic == "" {
		return nil
	}
	for i := range clusters {
		if clusters[i].Topic == topic {
			return &clusters[i]
		}
	}
	return nil
}

func findRepo(clusters []types.RepoCluster, topic string) *types.RepoCluster {
	if topic == "" {
		return nil
	}
	for i := range clusters {
		if clusters[i].Topic == topic {
			return &clusters[i]
		}
	}
	return nil
}

// socialSnapshot copies cluster aggregates into the narrative's snapshot.
// A nil cluster yields the all-zero snapshot. Counts are clamped at zero
// so malformed inputs cannot push negative values into scoring.
func socialSnapshot(c *types.SocialCluster) types.SocialSnapshot {
	if c == nil {
		return types.SocialSnapshot{}
	}
	snap := types.SocialSnapshot{
		PostCount:       clampCount(c.PostCount),
		AvgEngagement:   clampCount(c.AvgEngagement),
		TotalEngagement: clampCount(c.TotalEngagement),
		UniqueAuthors:   clampCount(c.UniqueAuthors),
		KeyTerms:        c.KeyTerms,
	}
	for i, p := range c.TopPosts {
		if i >= snapshotPreviewLimit {
			break
		}
		snap.TopPosts = append(snap.TopPosts, types.PostPreview{
			Text:   truncate(p.Text, previewTextLimit),
			Author: p.Author,
			Likes:  p.Likes,
			URL:    p.URL,
		})
	}
	return snap
}

// devSnapshot is the repository-side analog of socialSnapshot.
func devSnapshot(c *types.RepoCluster) types.DevSnapshot {
	if c == nil {
		return types.DevSnapshot{}
	}
	snap := types.DevSnapshot{
		RepoCount:  clampCount(c.RepoCount),
		TotalStars: clampCount(c.TotalStars),
		AvgStars:   c.AvgStars,
		KeyTerms:   c.KeyTerms,
	}
	if snap.AvgStars < 0 {
		snap.AvgStars = 0
	}
	for i, r := range c.TopRepos {
		if i >= snapshotPreviewLimit {
			break
		}
		snap.TopRepos = append(snap.TopRepos, types.RepoPreview{
			Name:        r.FullName,
			Description: r.Description,
			Stars:       r.Stars,
			URL:         r.URL,
		})
	}
	return snap
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// truncate cuts s to at most max bytes without splitting a multi-byte
// rune, so previews stay valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
