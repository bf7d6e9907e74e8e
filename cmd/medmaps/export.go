// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/criaah/medmaps/internal/mirror"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write mirror records for every map",
	Long: `Export writes one record per cataloged map with its status and portal
link, as YAML or JSON, for loading into the remote catalog mirror.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	format, err := mirror.ParseFormat(formatName)
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	n, err := mirror.NewExporter(a.cfg.Mirror).Export(a.repo, format, w)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "Exported %d maps to %s\n", n, out)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
