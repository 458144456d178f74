// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"math"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// minScore is the emission floor: narratives scoring below it are
// discarded, not reported as zero-signal entries.
const minScore = 15

// compositeScore computes the 0-100 composite signal score from the two
// snapshots. Each sub-score is built from capped terms so no single input
// can dominate; the cross-source bonus rewards simultaneous presence in
// both streams.
func compositeScore(s types.SocialSnapshot, d types.DevSnapshot) int {
	social := socialSubScore(s)
	dev := devSubScore(d)
	bonus := crossSourceBonus(s.PostCount, d.RepoCount, social, dev)

	score := math.Round(math.Min(social+dev+bonus, 100))
	if score < 0 {
		score = 0
	}
	return int(score)
}

// socialSubScore caps at 40: volume up to 15, engagement up to 20,
// author diversity up to 5.
func socialSubScore(s types.SocialSnapshot) float64 {
	volume := math.Min(float64(s.PostCount)*2.5, 15)
	engagement := math.Min(float64(s.AvgEngagement)/60, 20)

	diversity := 0.0
	if s.PostCount > 0 {
		ratio := float64(s.UniqueAuthors) / float64(s.PostCount)
		diversity = math.Min(ratio*float64(s.UniqueAuthors), 5)
	}
	return volume + engagement + diversity
}

// devSubScore caps at 40: volume up to 15, star quality up to 20,
// a log-scaled spread term up to 5.
func devSubScore(d types.DevSnapshot) float64 {
	volume := math.Min(float64(d.RepoCount)*2, 15)
	quality := math.Min(float64(d.TotalStars)/10, 20)

	diversity := 0.0
	if d.RepoCount > 0 && d.AvgStars > 0 {
		diversity = math.Min(float64(d.RepoCount)*math.Log2(d.AvgStars+1), 5)
	}
	return volume + quality + diversity
}

// crossSourceBonus is 0 unless both streams carry any signal at all. The
// moment both do, a flat 10 applies, scaling to 20 only as both sub-scores
// approach their normalization ceiling. The step at the both-present
// boundary is deliberate: any cross-confirmation is rewarded heavily.
func crossSourceBonus(postCount, repoCount int, social, dev float64) float64 {
	if postCount == 0 || repoCount == 0 {
		return 0
	}
	return 10 + math.Round(math.Min(social/30, 1)*math.Min(dev/30, 1)*10)
}

// classifyStage maps the snapshot thresholds to a lifecycle stage. Rules
// are evaluated in strict order, first match wins: peak implies
// acceleration's predicate, which implies emergence's. Weak social-only
// signal still counts as emergence, while dev-only signal stays
// pre-narrative until it crosses the strong-dev thresholds.
func classifyStage(s types.SocialSnapshot, d types.DevSnapshot) types.Stage {
	strongSocial := s.PostCount >= 5 && s.AvgEngagement >= 100
	strongDev := d.RepoCount >= 5 && d.TotalStars >= 20

	switch {
	case strongSocial && strongDev && s.AvgEngagement >= 500 && s.UniqueAuthors >= 8:
		return types.StagePeak
	case strongSocial && strongDev && s.AvgEngagement >= 200:
		return types.StageAcceleration
	case strongSocial || strongDev:
		return types.StageEmergence
	case d.RepoCount > 0 && s.PostCount == 0:
		return types.StagePreNarrative
	case s.PostCount > 0:
		return types.StageEmergence
	default:
		return types.StagePreNarrative
	}
}

// confidenceFor derives the confidence value from independent additive
// bonuses over the snapshot thresholds. Bounded to [0.25, 0.95], two
// decimals.
func confidenceFor(s types.SocialSnapshot, d types.DevSnapshot) float64 {
	c := 0.25

	if s.PostCount >= 3 {
		c += 0.08
	}
	if s.PostCount >= 10 {
		c += 0.07
	}
	if s.AvgEngagement >= 100 {
		c += 0.08
	}
	if s.AvgEngagement >= 300 {
		c += 0.05
	}
	if s.UniqueAuthors >= 3 {
		c += 0.08
	}
	if s.UniqueAuthors >= 8 {
		c += 0.07
	}
	if d.RepoCount >= 3 {
		c += 0.08
	}
	if d.RepoCount >= 10 {
		c += 0.07
	}
	if d.TotalStars >= 50 {
		c += 0.05
	}
	if s.PostCount > 0 && d.RepoCount > 0 {
		c += 0.12
	}

	if c > 0.95 {
		c = 0.95
	}
	return math.Round(c*100) / 100
}
