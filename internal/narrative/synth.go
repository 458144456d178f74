// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"context"
	"fmt"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// Synthesis is the narrative prose a synthesizer produces: an explanation
// and optionally replacement build ideas.
type Synthesis struct {
	Explanation string
	Ideas       []types.BuildIdea
}

// Synthesizer turns a scored narrative into prose. Implementations may
// fail per narrative; Aggregate keeps the rule-based text in that case.
type Synthesizer interface {
	Synthesize(ctx context.Context, n types.Narrative) (Synthesis, error)
}

// RuleSynthesizer is the deterministic synthesizer: stage-keyed explanation
// templates and canned ideas per narrative name. It never fails and is the
// fallback behind every other implementation.
type RuleSynthesizer struct{}

// Synthesize implements Synthesizer.
func (RuleSynthesizer) Synthesize(_ context.Context, n types.Narrative) (Synthesis, error) {
	return ruleSynthesis(n), nil
}

// ruleSynthesis builds the explanation and ideas from the narrative alone,
// with no external calls. Pure, so two runs over the same narrative are
// byte-identical.
func ruleSynthesis(n types.Narrative) Synthesis {
	return Synthesis{
		Explanation: explain(n),
		Ideas:       ideasFor(n.Name),
	}
}

func explain(n types.Narrative) string {
	s := n.Signals.Social
	d := n.Signals.Developer

	switch n.Stage {
	case types.StagePeak:
		return fmt.Sprintf(
			"%s is peaking: %d posts averaging %d engagement across %d authors, matched by %d active repositories (%d stars). The narrative is saturated; differentiation matters more than speed.",
			n.Name, s.PostCount, s.AvgEngagement, s.UniqueAuthors, d.RepoCount, d.TotalStars)
	case types.StageAcceleration:
		return fmt.Sprintf(
			"%s is accelerating: discussion (%d posts, avg engagement %d) and building (%d repositories, %d stars) are compounding. Entering now still catches the wave.",
			n.Name, s.PostCount, s.AvgEngagement, d.RepoCount, d.TotalStars)
	case types.StageEmergence:
		switch {
		case d.RepoCount == 0:
			return fmt.Sprintf(
				"%s is emerging in discussion: %d posts averaging %d engagement from %d authors, but no repository activity yet. Builders have not caught up with the conversation.",
				n.Name, s.PostCount, s.AvgEngagement, s.UniqueAuthors)
		case s.PostCount == 0:
			return fmt.Sprintf(
				"%s is emerging from the repositories: %d projects totaling %d stars with no matching conversation. The discourse has not noticed yet.",
				n.Name, d.RepoCount, d.TotalStars)
		default:
			return fmt.Sprintf(
				"%s is emerging on both fronts: %d posts (avg engagement %d) alongside %d repositories (%d stars). Cross-confirmation this early is the strongest kind of signal.",
				n.Name, s.PostCount, s.AvgEngagement, d.RepoCount, d.TotalStars)
		}
	default:
		return fmt.Sprintf(
			"%s is pre-narrative: %d repositories (%d stars) and little or no social signal. Builders are moving before the discourse does.",
			n.Name, d.RepoCount, d.TotalStars)
	}
}
