// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agenttessaa/narrative-detection/internal/capture"
	"github.com/agenttessaa/narrative-detection/internal/cluster"
	"github.com/agenttessaa/narrative-detection/internal/narrative"
	"github.com/agenttessaa/narrative-detection/internal/report"
	"github.com/agenttessaa/narrative-detection/pkg/types"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Cluster the captured streams and detect narratives",
	Long: `Detect loads the newest capture file per stream (or the ones named by
--social/--repos), clusters each stream into topic buckets, aligns the
buckets by the narrative table, scores and stage-classifies each narrative,
and writes the ranked result under the output directory.

A stream with no capture is treated as empty: single-stream narratives are
still detected. Explanations and build ideas are rule-based unless the
claude synthesizer is configured, and fall back to rule-based text when the
API call fails.`,
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := detectConfig()

	socialItems, socialRunID := loadSocialCapture(cmd, cfg.DataDir)
	repoItems, repoRunID := loadRepoCapture(cmd, cfg.DataDir)
	if socialItems == nil && repoItems == nil {
		return fmt.Errorf("no captures found in %s: run `narrative-engine fetch all` first", cfg.DataDir)
	}

	tables, err := loadTables(cmd)
	if err != nil {
		return err
	}
	socialTable, err := cluster.Compile(tables.SocialTopics)
	if err != nil {
		return err
	}
	repoTable, err := cluster.Compile(tables.RepoTopics)
	if err != nil {
		return err
	}

	socialClusters := cluster.ClusterSocial(socialItems, socialTable)
	repoClusters := cluster.ClusterRepos(repoItems, repoTable)

	var synth narrative.Synthesizer
	if cfg.Synthesizer == types.SynthClaude {
		if cfg.APIKey == "" {
			fmt.Fprintln(os.Stderr, "warning: claude synthesizer configured without an API key, using rules")
		} else {
			synth = &narrative.ClaudeSynthesizer{APIKey: cfg.APIKey, Model: cfg.Model, MaxRetries: cfg.MaxRetries}
		}
	}

	narratives, err := narrative.Aggregate(context.Background(), socialClusters, repoClusters, tables.Alignment, synth, os.Stderr)
	if err != nil {
		return err
	}

	runID := socialRunID
	if runID == "" || (repoRunID != "" && repoRunID != socialRunID) {
		runID = capture.NewRunID()
	}
	rep := report.Build(runID, narratives, reportConfig().Period, time.Now())

	path, err := report.WriteYAML(cfg.OutputDir, rep)
	if err != nil {
		return err
	}

	report.FormatTable(rep, os.Stdout)
	fmt.Printf("\nWrote %s\n", path)
	return nil
}

// loadSocialCapture returns the capture items and run ID, or nil when the
// stream has no capture. A missing stream warns rather than aborts: one
// stream still carries detectable signal.
func loadSocialCapture(cmd *cobra.Command, dataDir string) ([]types.SignalItem, string) {
	path, _ := cmd.Flags().GetString("social")
	if path == "" {
		var err error
		path, err = capture.Latest(dataDir, capture.StreamSocial)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: no social capture: %v\n", err)
			return nil, ""
		}
	}
	c, err := capture.LoadSocial(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping social capture: %v\n", err)
		return nil, ""
	}
	return c.Items, c.RunID
}

func loadRepoCapture(cmd *cobra.Command, dataDir string) ([]types.RepoItem, string) {
	path, _ := cmd.Flags().GetString("repos")
	if path == "" {
		var err error
		path, err = capture.Latest(dataDir, capture.StreamRepos)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: no repository capture: %v\n", err)
			return nil, ""
		}
	}
	c, err := capture.LoadRepos(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping repository capture: %v\n", err)
		return nil, ""
	}
	return c.Items, c.RunID
}

// loadTables resolves the detection tables: a --tables file when given,
// otherwise built-in defaults. File sections left empty fall back
// per-section.
func loadTables(cmd *cobra.Command) (narrative.TablesFile, error) {
	tables := narrative.TablesFile{
		SocialTopics: cluster.DefaultSocialTopics,
		RepoTopics:   cluster.DefaultRepoTopics,
		Alignment:    narrative.DefaultAlignment,
	}

	path, _ := cmd.Flags().GetString("tables")
	if path == "" {
		path = viper.GetString("detect.tables_file")
	}
	if path == "" {
		return tables, nil
	}

	tf, err := narrative.LoadTablesFile(path)
	if err != nil {
		return narrative.TablesFile{}, err
	}
	if len(tf.SocialTopics) > 0 {
		tables.SocialTopics = tf.SocialTopics
	}
	if len(tf.RepoTopics) > 0 {
		tables.RepoTopics = tf.RepoTopics
	}
	if len(tf.Alignment) > 0 {
		tables.Alignment = tf.Alignment
	}
	return tables, nil
}

func init() {
	detectCmd.Flags().String("social", "", "social capture file (default: newest in data dir)")
	detectCmd.Flags().String("repos", "", "repository capture file (default: newest in data dir)")
	detectCmd.Flags().String("tables", "", "YAML file overriding the topic and alignment tables")

	rootCmd.AddCommand(detectCmd)
}
