// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

func sampleReport() types.Report {
	narratives := []types.Narrative{
		{
			Name:        "Ordinals Revival",
			Score:       59,
			Stage:       types.StageEmergence,
			Confidence:  0.75,
			Explanation: "Ordinals Revival is emerging on both fronts.",
			Signals: types.Signals{
				Social: types.SocialSnapshot{
					PostCount:     10,
					AvgEngagement: 120,
					UniqueAuthors: 5,
					KeyTerms:      []string{"inscriptions", "collections"},
					TopPosts: []types.PostPreview{
						{Text: "inscriptions are back", Author: "alice", Likes: 40, URL: "https://x.com/alice/status/100"},
					},
				},
				Developer: types.DevSnapshot{
					RepoCount:  8,
					TotalStars: 40,
					AvgStars:   5.0,
					TopRepos: []types.RepoPreview{
						{Name: "alice/ord-indexer", Stars: 20, URL: "https://github.com/alice/ord-indexer", Description: "fast indexer"},
					},
				},
			},
			Ideas: []types.BuildIdea{
				{Title: "Inscription explorer", Description: "Browse inscriptions", Difficulty: types.DifficultyEasy, Category: "tooling"},
			},
		},
		{
			Name:        "Wallet UX",
			Score:       22,
			Stage:       types.StagePreNarrative,
			Confidence:  0.33,
			Explanation: "Wallet UX is pre-narrative.",
			Signals: types.Signals{
				Developer: types.DevSnapshot{RepoCount: 4, TotalStars: 60, AvgStars: 15.0},
			},
		},
	}
	return Build("run-1", narratives, "", time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC))
}

func TestBuildDefaults(t *testing.T) {
	r := Build("run-1", nil, "", time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC))
	if r.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", r.RunID)
	}
	if r.Period != "7 days of posts, 90 days of repositories" {
		t.Errorf("Period = %q, want the default window", r.Period)
	}
	if r.Methodology == "" {
		t.Error("Methodology is empty")
	}

	r = Build("run-1", nil, "14 days", time.Now())
	if r.Period != "14 days" {
		t.Errorf("Period = %q, want the explicit value", r.Period)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := sampleReport()

	path, err := WriteYAML(dir, want)
	if err != nil {
		t.Fatalf("WriteYAML returned error: %v", err)
	}
	if filepath.Base(path) != "narratives-run-1.yaml" {
		t.Errorf("path = %q, want narratives-run-1.yaml", path)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.RunID != want.RunID || len(got.Narratives) != len(want.Narratives) {
		t.Fatalf("envelope mismatch: got %q/%d narratives, want %q/%d",
			got.RunID, len(got.Narratives), want.RunID, len(want.Narratives))
	}
	if got.Narratives[0].Name != "Ordinals Revival" || got.Narratives[0].Score != 59 {
		t.Errorf("first narrative = %+v, want Ordinals Revival at 59", got.Narratives[0])
	}
	if got.Narratives[0].Signals.Social.TopPosts[0].Author != "alice" {
		t.Error("nested post preview lost in round trip")
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteJSON(dir, sampleReport())
	if err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	for _, want := range []string{`"run_id": "run-1"`, `"name": "Ordinals Revival"`, `"stage": "emergence"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON output missing %s", want)
		}
	}
}

func TestLatestPicksNewest(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "narratives-old.yaml")
	newer := filepath.Join(dir, "narratives-new.yaml")
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, []byte("run_id: r\n"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("setting mtime: %v", err)
	}

	got, err := Latest(dir)
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if got != newer {
		t.Errorf("Latest = %q, want %q", got, newer)
	}
}

func TestLatestEmptyDir(t *testing.T) {
	if _, err := Latest(t.TempDir()); err == nil {
		t.Error("Latest found output in an empty directory")
	}
}

func TestFormatTable(t *testing.T) {
	var buf strings.Builder
	FormatTable(sampleReport(), &buf)
	out := buf.String()

	for _, want := range []string{
		"Rank", "Ordinals Revival", "emergence", "59", "0.75",
		"10 posts / 8 repos", "Wallet UX", "pre-narrative", "2 narratives",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	rank1 := strings.Index(out, "Ordinals Revival")
	rank2 := strings.Index(out, "Wallet UX")
	if rank1 == -1 || rank2 == -1 || rank1 > rank2 {
		t.Error("table rows not in rank order")
	}
}

func TestFormatTableShortensLongNamesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("ü", 20) // 40 bytes, boundary falls mid-rune
	r := sampleReport()
	r.Narratives[0].Name = long

	var buf strings.Builder
	FormatTable(r, &buf)
	out := buf.String()

	if !utf8.ValidString(out) {
		t.Errorf("table output is not valid UTF-8: %q", out)
	}
	if !strings.Contains(out, strings.Repeat("ü", 12)+"...") {
		t.Errorf("long name not shortened on a rune boundary:\n%s", out)
	}
	if strings.Contains(out, long) {
		t.Error("long name not shortened at all")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf strings.Builder
	FormatTable(Build("r", nil, "", time.Now()), &buf)
	if !strings.Contains(buf.String(), "No narratives detected.") {
		t.Errorf("empty report output = %q", buf.String())
	}
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteMarkdown(dir, sampleReport())
	if err != nil {
		t.Fatalf("WriteMarkdown returned error: %v", err)
	}
	if filepath.Base(path) != "narratives-run-1.md" {
		t.Errorf("path = %q, want narratives-run-1.md", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"# Narrative Report",
		"Run: run-1",
		"| 1 | Ordinals Revival | emergence | 59 | 0.75 |",
		"## Ordinals Revival",
		"Key terms: inscriptions, collections.",
		"- @alice (40 likes): inscriptions are back",
		"[alice/ord-indexer](https://github.com/alice/ord-indexer) (20 stars): fast indexer",
		"**Inscription explorer** (easy, tooling): Browse inscriptions",
		"## Wallet UX",
		"No social signal.",
		"## Methodology",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}
