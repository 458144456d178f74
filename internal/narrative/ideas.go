// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"fmt"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// cannedIdeas maps narrative names to their build suggestions. Unknown
// names get exactly one generic fallback idea naming the narrative.
var cannedIdeas = map[string][]types.BuildIdea{
	"Ordinals & Inscriptions": {
		{
			Title:       "Inscription batching service",
			Description: "Queue and batch inscriptions to cut per-item fees during congestion windows.",
			Difficulty:  types.DifficultyMedium,
			Category:    "infrastructure",
		},
		{
			Title:       "Collection provenance explorer",
			Description: "Index inscription ancestry and surface provenance proofs for marketplaces.",
			Difficulty:  types.DifficultyHard,
			Category:    "tooling",
		},
	},
	"Runes Protocol": {
		{
			Title:       "Runes etching dashboard",
			Description: "Track new etchings, mint velocity, and holder spread in near real time.",
			Difficulty:  types.DifficultyMedium,
			Category:    "analytics",
		},
		{
			Title:       "Runes wallet plugin",
			Description: "Add runes balance display and transfers to an existing open-source wallet.",
			Difficulty:  types.DifficultyMedium,
			Category:    "consumer",
		},
	},
	"BitVM Computation": {
		{
			Title:       "BitVM circuit playground",
			Description: "A browser sandbox that compiles small programs to BitVM gate commitments.",
			Difficulty:  types.DifficultyHard,
			Category:    "tooling",
		},
	},
	"Lightning Payments": {
		{
			Title:       "Bolt12 offer generator",
			Description: "CLI and web flow for creating and testing reusable bolt12 offers.",
			Difficulty:  types.DifficultyEasy,
			Category:    "tooling",
		},
		{
			Title:       "Channel rebalance advisor",
			Description: "Suggest rebalance routes from public graph data and local channel state.",
			Difficulty:  types.DifficultyMedium,
			Category:    "infrastructure",
		},
	},
	"OP_CAT & Covenants": {
		{
			Title:       "Covenant script simulator",
			Description: "Evaluate covenant spend paths against proposed opcode semantics in a sandbox.",
			Difficulty:  types.DifficultyHard,
			Category:    "tooling",
		},
	},
	"Bitcoin L2 Rollups": {
		{
			Title:       "L2 bridge monitor",
			Description: "Watch rollup bridge contracts and alert on anomalous withdrawal patterns.",
			Difficulty:  types.DifficultyMedium,
			Category:    "analytics",
		},
	},
	"Nostr Social": {
		{
			Title:       "Zap leaderboard relay",
			Description: "A relay-side aggregation of zap flows with a public leaderboard API.",
			Difficulty:  types.DifficultyEasy,
			Category:    "consumer",
		},
	},
	"Miner Economics": {
		{
			Title:       "Fee-band forecast feed",
			Description: "Publish short-horizon fee forecasts from mempool composition for miners and batchers.",
			Difficulty:  types.DifficultyMedium,
			Category:    "analytics",
		},
	},
	"Wallet UX": {
		{
			Title:       "PSBT flow linter",
			Description: "Static checks for multi-party PSBT flows that flag common signing footguns.",
			Difficulty:  types.DifficultyMedium,
			Category:    "tooling",
		},
	},
}

// ideasFor returns the canned ideas for a narrative name, or the single
// generic fallback. Always 1-5 ideas.
func ideasFor(name string) []types.BuildIdea {
	if ideas, ok := cannedIdeas[name]; ok {
		return ideas
	}
	return []types.BuildIdea{{
		Title:       fmt.Sprintf("%s starter project", name),
		Description: fmt.Sprintf("Build a small public tool that makes the %s narrative observable: index the activity, expose it as an API, and ship a minimal UI.", name),
		Difficulty:  types.DifficultyMedium,
		Category:    "tooling",
	}}
}
