// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import "github.com/agenttessaa/narrative-detection/pkg/types"

// DefaultSocialTopics is the built-in topic table for the social stream.
// Patterns match case-insensitively against post text plus the originating
// query.
var DefaultSocialTopics = []types.TopicRule{
	{Topic: "ordinals", Patterns: []string{`ordinals?\b`, `inscription`, `brc-?20`}},
	{Topic: "runes", Patterns: []string{`\brunes?\b`, `etching`}},
	{Topic: "bitvm", Patterns: []string{`bitvm`}},
	{Topic: "lightning", Patterns: []string{`lightning`, `\bln\b`, `bolt ?12`}},
	{Topic: "covenants", Patterns: []string{`op_?cat`, `covenant`, `\bctv\b`, `checktemplateverify`}},
	{Topic: "l2", Patterns: []string{`rollup`, `\bl2\b`, `sidechain`, `\bzk\b`}},
	{Topic: "nostr", Patterns: []string{`nostr`, `\bzaps?\b`}},
	{Topic: "mining", Patterns: []string{`\bminers?\b`, `\bmining\b`, `hashrate`}},
}

// DefaultRepoTopics is the built-in topic table for the repository stream.
// Patterns match against repository name, description, and originating query.
var DefaultRepoTopics = []types.TopicRule{
	{Topic: "ordinals", Patterns: []string{`ordinals?\b`, `inscription`, `brc-?20`}},
	{Topic: "runes", Patterns: []string{`\brunes?\b`}},
	{Topic: "bitvm", Patterns: []string{`bitvm`}},
	{Topic: "lightning", Patterns: []string{`lightning`, `\blnd\b`, `bolt ?12`}},
	{Topic: "covenants", Patterns: []string{`op_?cat`, `covenant`, `\bctv\b`, `checktemplateverify`}},
	{Topic: "l2", Patterns: []string{`rollup`, `\bl2\b`, `sidechain`}},
	{Topic: "nostr", Patterns: []string{`nostr`}},
	{Topic: "wallets", Patterns: []string{`wallet`, `\bpsbt\b`, `descriptor`}},
}
