// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/criaah/medmaps/internal/catalog"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Repair the index from the detail records",
	Long: `Reconcile adds index entries for detail records that have none,
rewrites stale entries, and fixes stored node counts. Index entries whose
detail file is missing are reported, and removed with --prune.`,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	prune, _ := cmd.Flags().GetBool("prune")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	report, err := a.repo.Reconcile(catalog.ReconcileOptions{Prune: prune, DryRun: dryRun})
	if err != nil {
		return err
	}

	printIDs("added", report.Added)
	printIDs("synced", report.Synced)
	printIDs("recounted", report.Recounted)
	printIDs("orphaned", report.Orphans)
	printIDs("pruned", report.Pruned)

	switch {
	case !report.Changed():
		fmt.Println("catalog is consistent")
	case dryRun:
		fmt.Println("dry run: nothing written")
	}
	return nil
}

func printIDs(label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Printf("%-10s %d: %s\n", label, len(ids), strings.Join(ids, ", "))
}

func init() {
	reconcileCmd.Flags().Bool("prune", false, "drop index entries without a detail record")
	reconcileCmd.Flags().Bool("dry-run", false, "report without writing")

	rootCmd.AddCommand(reconcileCmd)
}
