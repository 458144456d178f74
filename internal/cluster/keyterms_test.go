// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"reflect"
	"strings"
	"testing"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

func socialItems(texts ...string) []types.SignalItem {
	items := make([]types.SignalItem, len(texts))
	for i, text := range texts {
		items[i] = types.SignalItem{ID: string(rune('a' + i)), Text: text}
	}
	return items
}

func TestSocialKeyTermsFrequencyFloor(t *testing.T) {
	items := socialItems(
		"inscriptions are mooning, inscriptions everywhere",
		"singleton appears once",
	)
	terms := socialKeyTerms(items)
	if !reflect.DeepEqual(terms, []string{"inscriptions"}) {
		t.Errorf("terms = %v, want [inscriptions]: tokens seen once are dropped", terms)
	}
}

func TestSocialKeyTermsStripURLsAndPunctuation(t *testing.T) {
	items := socialItems(
		"check https://example.com/ordinals-path inscriptions!!!",
		"more inscriptions: https://example.com/other",
	)
	terms := socialKeyTerms(items)
	for _, term := range terms {
		if strings.Contains(term, "http") || strings.Contains(term, "example") {
			t.Errorf("URL leaked into terms: %v", terms)
		}
	}
	if !contains(terms, "inscriptions") {
		t.Errorf("terms = %v, want inscriptions present", terms)
	}
}

func TestSocialKeyTermsStopWordsAndLength(t *testing.T) {
	items := socialItems(
		"this this this they they acc big big",
		"this they acc big",
	)
	terms := socialKeyTerms(items)
	// "this"/"they" are stop-words, "acc" and "big" are too short.
	if len(terms) != 0 {
		t.Errorf("terms = %v, want none", terms)
	}
}

func TestKeyTermsOrderingAndCap(t *testing.T) {
	// Twelve distinct tokens all with count 2: ties keep first-seen
	// order and the list caps at 10.
	words := []string{
		"alpha0", "bravo0", "charl0", "delta0", "echo00", "foxtr0",
		"golf00", "hotel0", "india0", "julie0", "kilo00", "lima00",
	}
	line := strings.Join(words, " ")
	terms := socialKeyTerms(socialItems(line, line))

	if len(terms) != 10 {
		t.Fatalf("len(terms) = %d, want 10", len(terms))
	}
	if !reflect.DeepEqual(terms, words[:10]) {
		t.Errorf("terms = %v, want first-seen order %v", terms, words[:10])
	}
}

func TestKeyTermsSortByCountDescending(t *testing.T) {
	terms := socialKeyTerms(socialItems(
		"common common common rare rare",
		"common rare middle middle",
		"middle common",
	))
	// common: 5, rare: 3, middle: 3; rare precedes middle (first seen).
	want := []string{"common", "rare", "middle"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("terms = %v, want %v", terms, want)
	}
}

func TestRepoKeyTermsSplitOnHyphens(t *testing.T) {
	items := []types.RepoItem{
		{Name: "taproot-assets", Description: "taproot magic"},
		{Name: "assets-manager", Description: "manage assets"},
	}
	terms := repoKeyTerms(items)
	if !contains(terms, "assets") {
		t.Errorf("terms = %v, want hyphen-split token assets", terms)
	}
	for _, term := range terms {
		if strings.Contains(term, "-") {
			t.Errorf("hyphen survived tokenization: %v", terms)
		}
	}
}

func TestRepoKeyTermsExcludeEcosystemNames(t *testing.T) {
	items := []types.RepoItem{
		{Name: "bitcoin-indexer", Description: "bitcoin indexer for bitcoin"},
		{Name: "bitcoin-tools", Description: "indexer utilities"},
	}
	terms := repoKeyTerms(items)
	if contains(terms, "bitcoin") {
		t.Errorf("terms = %v: the ecosystem's own name must not appear", terms)
	}
	if !contains(terms, "indexer") {
		t.Errorf("terms = %v, want indexer present", terms)
	}
}

func TestKeyTermsIdempotent(t *testing.T) {
	items := socialItems(
		"runes etching runes protocol excitement",
		"etching runes with protocol tooling",
	)
	a := socialKeyTerms(items)
	b := socialKeyTerms(items)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("socialKeyTerms not idempotent: %v vs %v", a, b)
	}
}

func contains(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}
