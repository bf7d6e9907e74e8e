// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/criaah/medmaps/internal/ingest"
	"github.com/criaah/medmaps/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Add source files to the catalog",
	Long: `Ingest parses each file, classifies it, skips titles already in the
catalog, links related maps, and writes the detail record. The index is
written once at the end of the run.

.smmx files are read as SimpleMind outlines, .txt files as tabbed text,
and .pdf, .docx and .pptx files through pdftotext or the markitdown
container. Use --dir to ingest a whole folder tree instead of a file list.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" && len(args) == 0 {
		return fmt.Errorf("no input: provide files or --dir")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := ingestOverrides(cmd, &a.cfg.Ingest); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	p := a.pipeline(ctx)
	var summary ingest.BatchSummary
	if dir != "" {
		summary, err = p.IngestDir(ctx, dir, os.Stdout)
	} else {
		summary, err = p.IngestBatch(ctx, args, os.Stdout)
	}
	a.flushMetrics()
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed to parse", summary.Failed)
	}
	return nil
}

// ingestOverrides applies the ingest flags that were set on the command
// line over the configured values.
func ingestOverrides(cmd *cobra.Command, cfg *types.IngestConfig) error {
	f := cmd.Flags()
	if f.Changed("specialty") {
		cfg.Specialty, _ = f.GetString("specialty")
	}
	if f.Changed("tag") {
		cfg.Tag, _ = f.GetString("tag")
	}
	if f.Changed("access") {
		s, _ := f.GetString("access")
		access, err := types.ParseAccess(s)
		if err != nil {
			return err
		}
		cfg.Access = access
	}
	if f.Changed("move-to") {
		cfg.MoveTo, _ = f.GetString("move-to")
	}
	if f.Changed("limit") {
		cfg.Limit, _ = f.GetInt("limit")
	}
	if f.Changed("dry-run") {
		cfg.DryRun, _ = f.GetBool("dry-run")
	}
	return nil
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Preview what ingesting a folder would do",
	Long: `Scan classifies every supported file under --dir as new, duplicate or
failed and tallies the new ones by specialty. Nothing is written and no
external extraction tool runs.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		return fmt.Errorf("--dir is required")
	}
	asYAML, _ := cmd.Flags().GetBool("yaml")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := ingestOverrides(cmd, &a.cfg.Ingest); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	p := ingest.New(a.repo, a.cfg.Ingest, ingest.WithLogger(a.log))
	report, err := p.Scan(ctx, dir)
	if err != nil {
		return err
	}
	if asYAML {
		return report.WriteYAML(os.Stdout)
	}
	return report.WriteTable(os.Stdout)
}

func init() {
	ingestCmd.Flags().String("dir", "", "ingest every supported file under this folder")
	ingestCmd.Flags().Int("limit", 0, "maximum files to process (0 = all)")
	ingestCmd.Flags().Bool("dry-run", false, "report without writing the catalog")
	ingestCmd.Flags().String("move-to", "", "move ingested source files to this folder")
	ingestCmd.Flags().String("specialty", "", "specialty for every map (default: classify by path)")
	ingestCmd.Flags().String("tag", "", "tag for every map (default: classify by keywords)")
	ingestCmd.Flags().String("access", "free", "access level: free or premium")

	scanCmd.Flags().String("dir", "", "folder to scan")
	scanCmd.Flags().Bool("yaml", false, "print the full report as YAML")
	scanCmd.Flags().String("specialty", "", "specialty for every map (default: classify by path)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(scanCmd)
}
