// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package capture is the file-backed handoff between the fetch and detect
// stages: one YAML file per stream per run, carrying the run metadata and
// the complete, already-deduplicated, already-sorted item list.
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// Stream names used in capture filenames.
const (
	StreamSocial = "social"
	StreamRepos  = "repos"
)

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SocialCapture is the envelope written by `fetch social`.
type SocialCapture struct {
	RunID     string             `json:"run_id" yaml:"run_id"`
	FetchedAt time.Time          `json:"fetched_at" yaml:"fetched_at"`
	Queries   []string           `json:"queries" yaml:"queries"`
	Items     []types.SignalItem `json:"items" yaml:"items"`
}

// RepoCapture is the envelope written by `fetch repos`.
type RepoCapture struct {
	RunID     string           `json:"run_id" yaml:"run_id"`
	FetchedAt time.Time        `json:"fetched_at" yaml:"fetched_at"`
	Queries   []string         `json:"queries" yaml:"queries"`
	Items     []types.RepoItem `json:"items" yaml:"items"`
}

// WriteSocial writes the capture to dir/social-<runID>.yaml and returns the path.
func WriteSocial(dir string, c SocialCapture) (string, error) {
	return writeFile(dir, StreamSocial, c.RunID, c)
}

// WriteRepos writes the capture to dir/repos-<runID>.yaml and returns the path.
func WriteRepos(dir string, c RepoCapture) (string, error) {
	return writeFile(dir, StreamRepos, c.RunID, c)
}

func writeFile(dir, stream, runID string, v any) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("capture has no run ID")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating capture directory: %w", err)
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling %s capture: %w", stream, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", stream, runID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s capture: %w", stream, err)
	}
	return path, nil
}

// LoadSocial reads a social capture file.
func LoadSocial(path string) (SocialCapture, error) {
	var c SocialCapture
	if err := loadFile(path, &c); err != nil {
		return SocialCapture{}, err
	}
	return c, nil
}

// LoadRepos reads a repository capture file.
func LoadRepos(path string) (RepoCapture, error) {
	var c RepoCapture
	if err := loadFile(path, &c); err != nil {
		return RepoCapture{}, err
	}
	return c, nil
}

func loadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading capture: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing capture %s: %w", path, err)
	}
	return nil
}

// Latest returns the path of the newest capture file for a stream in dir,
// by modification time with filename as tiebreak. Returns an error when
// the stream has no captures.
func Latest(dir, stream string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading capture directory: %w", err)
	}

	type candidate struct {
		name string
		mod  time.Time
	}
	var candidates []candidate
	prefix := stream + "-"
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{name: e.Name(), mod: info.ModTime()})
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no %s captures in %s: run `narrative-engine fetch %s` first", stream, dir, stream)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].mod.Equal(candidates[j].mod) {
			return candidates[i].mod.After(candidates[j].mod)
		}
		return candidates[i].name > candidates[j].name
	})
	return filepath.Join(dir, candidates[0].name), nil
}
