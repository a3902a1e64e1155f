package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/bvs/internal/domain/hook"
	"github.com/forPelevin/bvs/internal/logging"
	"github.com/forPelevin/bvs/internal/report"
	"github.com/forPelevin/bvs/internal/types"
	"github.com/forPelevin/bvs/internal/usecase"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report --metadata meta.json --transcript transcript.json",
		Short: "Render reports from saved metadata and transcript JSON",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	f := cmd.Flags()
	f.String("metadata", "", "Video metadata JSON")
	f.String("transcript", "", "Transcript JSON written by a previous run")
	f.StringP("output", "o", "", "Directory for the reports (default: timestamped names in the working directory)")
	_ = cmd.MarkFlagRequired("metadata")
	_ = cmd.MarkFlagRequired("transcript")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cmd.ErrOrStderr())

	metaPath, _ := cmd.Flags().GetString("metadata")
	trPath, _ := cmd.Flags().GetString("transcript")
	outDir, _ := cmd.Flags().GetString("output")

	var meta types.VideoMetadata
	if err := readJSON(metaPath, &meta); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	var tr types.Transcript
	if err := readJSON(trPath, &tr); err != nil {
		return fmt.Errorf("transcript: %w", err)
	}
	if tr.Duration <= 0 {
		tr.Duration = tr.TotalDuration()
	}

	opts := []report.Option{report.WithLogger(logging.WithVideo(logging.WithComponent(log, "report"), meta.ID))}
	if cfg.RulesFile != "" {
		rules, err := hook.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return err
		}
		opts = append(opts, report.WithRules(rules))
	}
	rep := report.New(cmd.OutOrStdout(), opts...)

	var mdPath, jsPath string
	if outDir != "" {
		id := usecase.FileID(meta)
		mdPath = filepath.Join(outDir, id+"_report.md")
		jsPath = filepath.Join(outDir, id+"_data.json")
	}
	if _, err := rep.WriteMarkdown(meta, tr, mdPath); err != nil {
		return err
	}
	if _, err := rep.WriteJSON(meta, tr, jsPath); err != nil {
		return err
	}
	rep.DisplaySummary(meta, tr)
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
