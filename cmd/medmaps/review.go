// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/criaah/medmaps/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Reclassify maps and recompute related links",
	Long: `Review edits maps already in the catalog. Every change rewrites the
detail record and its index entry together.`,
}

var reviewUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change the specialty, tag or access of a map",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewUpdate,
}

func runReviewUpdate(cmd *cobra.Command, args []string) error {
	specialty, _ := cmd.Flags().GetString("specialty")
	tag, _ := cmd.Flags().GetString("tag")
	access, _ := cmd.Flags().GetString("access")
	changes := review.Changes{Specialty: specialty, Tag: tag, Access: access}
	if changes.Empty() {
		return fmt.Errorf("nothing to change: set --specialty, --tag or --access")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	rec, err := review.New(a.repo, nil, a.log).Update(args[0], changes)
	if err != nil {
		return err
	}
	fmt.Printf("updated %s: %s [%s] %s %s\n", rec.ID, rec.Title, rec.Specialty, rec.Tag, rec.Access)
	return nil
}

var reviewRelinkCmd = &cobra.Command{
	Use:   "relink [ID]",
	Short: "Recompute related maps for one map or the whole catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReviewRelink,
}

func runReviewRelink(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if all == (len(args) == 1) {
		return fmt.Errorf("provide a map ID or --all")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	_, err = review.New(a.repo, nil, a.log).Relink(id, os.Stdout)
	return err
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged maps",
	RunE:  runReviewList,
}

func runReviewList(cmd *cobra.Command, args []string) error {
	specialty, _ := cmd.Flags().GetString("specialty")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	entries, err := review.New(a.repo, nil, a.log).List(specialty)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No maps found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-9s  %-45s  %-22s  %-20s  %-7s  %s\n",
		"ID", "Title", "Specialty", "Tag", "Access", "Nodes")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 118))
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-9s  %-45s  %-22s  %-20s  %-7s  %d\n",
			e.ID, clip(e.Title, 45), clip(e.Specialty, 22), clip(e.Tag, 20), e.Access, e.NodeCount)
	}
	fmt.Fprintf(os.Stdout, "\n%d maps\n", len(entries))
	return nil
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	reviewUpdateCmd.Flags().String("specialty", "", "new specialty")
	reviewUpdateCmd.Flags().String("tag", "", "new tag")
	reviewUpdateCmd.Flags().String("access", "", "new access level: free or premium")

	reviewRelinkCmd.Flags().Bool("all", false, "relink every map in the catalog")

	reviewListCmd.Flags().String("specialty", "", "only list maps of this specialty")

	reviewCmd.AddCommand(reviewUpdateCmd)
	reviewCmd.AddCommand(reviewRelinkCmd)
	reviewCmd.AddCommand(reviewListCmd)

	rootCmd.AddCommand(reviewCmd)
}
