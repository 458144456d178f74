// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agenttessaa/narrative-detection/internal/capture"
	"github.com/agenttessaa/narrative-detection/internal/ghsearch"
	"github.com/agenttessaa/narrative-detection/internal/social"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Capture the social and repository streams",
	Long: `Fetch runs the configured search queries against the social and
repository APIs, sequentially with a polite delay, and writes one capture
file per stream under the data directory. Captures are complete,
deduplicated, sorted item lists ready for detection.`,
}

var fetchSocialCmd = &cobra.Command{
	Use:   "social",
	Short: "Capture posts from the social API",
	RunE:  runFetchSocial,
}

var fetchReposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Capture repository metadata from the GitHub search API",
	RunE:  runFetchRepos,
}

var fetchAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Capture both streams under one run ID",
	RunE:  runFetchAll,
}

func runFetchSocial(cmd *cobra.Command, args []string) error {
	_, err := fetchSocial(cmd, runIDFromFlags(cmd))
	return err
}

func runFetchRepos(cmd *cobra.Command, args []string) error {
	_, err := fetchRepos(cmd, runIDFromFlags(cmd))
	return err
}

func runFetchAll(cmd *cobra.Command, args []string) error {
	runID := runIDFromFlags(cmd)
	if _, err := fetchSocial(cmd, runID); err != nil {
		return err
	}
	if _, err := fetchRepos(cmd, runID); err != nil {
		return err
	}
	return nil
}

func fetchSocial(cmd *cobra.Command, runID string) (string, error) {
	cfg := socialConfig()
	if cfg.BearerToken == "" {
		return "", fmt.Errorf("no social API token: add .secrets/x-bearer-token or set social.bearer_token")
	}

	client := &social.Client{BearerToken: cfg.BearerToken}
	items, err := client.FetchAll(context.Background(), cfg, os.Stderr)
	if err != nil {
		return "", err
	}

	path, err := capture.WriteSocial(dataDirFromFlags(cmd), capture.SocialCapture{
		RunID:     runID,
		FetchedAt: time.Now(),
		Queries:   cfg.Queries,
		Items:     items,
	})
	if err != nil {
		return "", err
	}
	fmt.Printf("Captured %d posts -> %s\n", len(items), path)
	return path, nil
}

func fetchRepos(cmd *cobra.Command, runID string) (string, error) {
	cfg := repoConfig()

	client := &ghsearch.Client{Token: cfg.Token}
	items, err := client.FetchAll(context.Background(), cfg, os.Stderr)
	if err != nil {
		return "", err
	}

	path, err := capture.WriteRepos(dataDirFromFlags(cmd), capture.RepoCapture{
		RunID:     runID,
		FetchedAt: time.Now(),
		Queries:   cfg.Queries,
		Items:     items,
	})
	if err != nil {
		return "", err
	}
	fmt.Printf("Captured %d repositories -> %s\n", len(items), path)
	return path, nil
}

func runIDFromFlags(cmd *cobra.Command) string {
	runID, _ := cmd.Flags().GetString("run-id")
	if runID == "" {
		runID = capture.NewRunID()
	}
	return runID
}

func dataDirFromFlags(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("data-dir")
	if dir == "" {
		dir = detectConfig().DataDir
	}
	return dir
}

func init() {
	fetchCmd.PersistentFlags().String("data-dir", "", "directory for capture files (default from config, else \"data\")")
	fetchCmd.PersistentFlags().String("run-id", "", "run identifier (default: generated)")

	fetchCmd.AddCommand(fetchSocialCmd)
	fetchCmd.AddCommand(fetchReposCmd)
	fetchCmd.AddCommand(fetchAllCmd)

	rootCmd.AddCommand(fetchCmd)
}
