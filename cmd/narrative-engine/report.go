// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenttessaa/narrative-detection/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a detection run as markdown, JSON, or a table",
	Long: `Report renders the newest detection output (or the file named by
--input) as a markdown report, indented JSON, or a console table.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := reportConfig()

	path, _ := cmd.Flags().GetString("input")
	if path == "" {
		var err error
		path, err = report.Latest(cfg.OutputDir)
		if err != nil {
			return err
		}
	}

	rep, err := report.Load(path)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "markdown", "":
		out, err := report.WriteMarkdown(cfg.OutputDir, rep)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
	case "json":
		out, err := report.WriteJSON(cfg.OutputDir, rep)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
	case "table":
		report.FormatTable(rep, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use markdown, json, or table", format)
	}
	return nil
}

func init() {
	reportCmd.Flags().String("input", "", "detection output file (default: newest in output dir)")
	reportCmd.Flags().String("format", "markdown", "output format: markdown, json, or table")

	rootCmd.AddCommand(reportCmd)
}
