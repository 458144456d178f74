// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the detection output envelope and renders it
// as a console table, markdown, JSON, or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// methodology is the fixed scoring description embedded in every report.
const methodology = "Narratives are detected by clustering social posts and recently created repositories into topic buckets, aligning the two streams by a fixed narrative table, and scoring each narrative 0-100 from capped sub-scores: social volume/engagement/author-diversity (max 40), repository volume/stars/spread (max 40), and a cross-source bonus of 10-20 when both streams carry signal. Narratives scoring below 15 are discarded. Stage (pre-narrative, emergence, acceleration, peak) follows fixed engagement and star thresholds; confidence (0.25-0.95) accumulates from independent threshold bonuses."

// Build wraps a ranked narrative list in the report envelope. Only
// GeneratedAt depends on the clock; everything else is a pure function of
// the inputs.
func Build(runID string, narratives []types.Narrative, period string, generatedAt time.Time) types.Report {
	if period == "" {
		period = "7 days of posts, 90 days of repositories"
	}
	return types.Report{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Period:      period,
		Narratives:  narratives,
		Methodology: methodology,
	}
}

// WriteYAML writes the report to dir/narratives-<runID>.yaml and returns the path.
func WriteYAML(dir string, r types.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	path := filepath.Join(dir, "narratives-"+r.RunID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// WriteJSON writes the report to dir/narratives-<runID>.json and returns the path.
func WriteJSON(dir string, r types.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	path := filepath.Join(dir, "narratives-"+r.RunID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Load reads a report envelope from a YAML file.
func Load(path string) (types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Report{}, fmt.Errorf("reading report: %w", err)
	}
	var r types.Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return types.Report{}, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return r, nil
}

// Latest returns the path of the newest narratives YAML in dir, by
// modification time with filename as tiebreak.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading output directory: %w", err)
	}

	type candidate struct {
		name string
		mod  time.Time
	}
	var candidates []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "narratives-") || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{name: e.Name(), mod: info.ModTime()})
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no detection output in %s: run `narrative-engine detect` first", dir)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].mod.Equal(candidates[j].mod) {
			return candidates[i].mod.After(candidates[j].mod)
		}
		return candidates[i].name > candidates[j].name
	})
	return filepath.Join(dir, candidates[0].name), nil
}

// FormatTable writes the ranked narratives as a human-readable table to w.
func FormatTable(r types.Report, w io.Writer) {
	if len(r.Narratives) == 0 {
		fmt.Fprintln(w, "No narratives detected.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %-13s  %-5s  %-5s  %s\n",
		"Rank", "Narrative", "Stage", "Score", "Conf", "Signal")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for i, n := range r.Narratives {
		name := n.Name
		if len(name) > 28 {
			cut := 25
			for cut > 0 && !utf8.RuneStart(name[cut]) {
				cut--
			}
			name = name[:cut] + "..."
		}
		signal := fmt.Sprintf("%d posts / %d repos",
			n.Signals.Social.PostCount, n.Signals.Developer.RepoCount)
		fmt.Fprintf(w, "%-4d  %-28s  %-13s  %-5d  %-5.2f  %s\n",
			i+1, name, n.Stage, n.Score, n.Confidence, signal)
	}

	fmt.Fprintf(w, "\n%d narratives\n", len(r.Narratives))
}
