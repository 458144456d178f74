// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package narrative cross-correlates the two clustered signal streams into
// scored, stage-classified narrative records.
package narrative

import (
	"fmt"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// DefaultAlignment is the built-in alignment table: which social and
// repository topic feed each narrative. An empty topic means the narrative
// has no counterpart in that stream by design. Changing this table changes
// which narratives can ever be detected.
var DefaultAlignment = []types.AlignmentEntry{
	{Narrative: "Ordinals & Inscriptions", SocialTopic: "ordinals", RepoTopic: "ordinals"},
	{Narrative: "Runes Protocol", SocialTopic: "runes", RepoTopic: "runes"},
	{Narrative: "BitVM Computation", SocialTopic: "bitvm", RepoTopic: "bitvm"},
	{Narrative: "Lightning Payments", SocialTopic: "lightning", RepoTopic: "lightning"},
	{Narrative: "OP_CAT & Covenants", SocialTopic: "covenants", RepoTopic: "covenants"},
	{Narrative: "Bitcoin L2 Rollups", SocialTopic: "l2", RepoTopic: "l2"},
	{Narrative: "Nostr Social", SocialTopic: "nostr", RepoTopic: "nostr"},
	{Narrative: "Miner Economics", SocialTopic: "mining", RepoTopic: ""},
	{Narrative: "Wallet UX", SocialTopic: "", RepoTopic: "wallets"},
}

// ValidateAlignment rejects malformed alignment tables at load time: a
// narrative name may appear only once, and an entry with both topics empty
// could never produce a record.
func ValidateAlignment(entries []types.AlignmentEntry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Narrative == "" {
			return fmt.Errorf("alignment entry with empty narrative name")
		}
		if seen[e.Narrative] {
			return fmt.Errorf("duplicate alignment entry for narrative %q", e.Narrative)
		}
		seen[e.Narrative] = true
		if e.SocialTopic == "" && e.RepoTopic == "" {
			return fmt.Errorf("alignment entry %q maps to no topic in either stream", e.Narrative)
		}
	}
	return nil
}
