// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/criaah/medmaps/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Find maps by title, related topic or content",
	Long: `Search matches the term against map titles. --related also matches the
topics associated with the term. --content searches the text of every
node through the SQLite index at data/search.db, which --reindex rebuilds
from the catalog. --stats prints counts by specialty and by tag.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	related, _ := cmd.Flags().GetBool("related")
	content, _ := cmd.Flags().GetBool("content")
	reindex, _ := cmd.Flags().GetBool("reindex")
	stats, _ := cmd.Flags().GetBool("stats")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	term := strings.Join(args, " ")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = a.cfg.Search.MaxResults
	}

	ctx, cancel := signalContext()
	defer cancel()

	if reindex || content {
		store, err := search.Open(a.cfg.Catalog.DataDir, a.cfg.Search, a.log)
		if err != nil {
			return err
		}
		defer store.Close()

		if reindex {
			summary, err := store.Reindex(ctx, a.repo)
			if err != nil {
				return err
			}
			fmt.Printf("indexed: %d, missing: %d\n", summary.Indexed, summary.Missing)
			if !content {
				return nil
			}
		}
		if term == "" {
			return fmt.Errorf("search term required")
		}
		hits, err := store.Content(ctx, term, limit)
		if err != nil {
			return err
		}
		return printHits(hits, jsonOutput)
	}

	entries, err := a.repo.LoadIndex()
	if err != nil {
		return err
	}

	if stats {
		st := search.Summarize(entries)
		if jsonOutput {
			return writeJSON(st)
		}
		printStats(st)
		return nil
	}

	if term == "" {
		return fmt.Errorf("search term required")
	}
	var hits []search.Hit
	if related {
		hits = search.Related(entries, term, limit)
	} else {
		hits = search.Titles(entries, term, limit)
	}
	if len(hits) == 0 && !related && !jsonOutput {
		fmt.Println("No maps found.")
		fmt.Printf("Try: medmaps search --related %q\n", term)
		return nil
	}
	return printHits(hits, jsonOutput)
}

func printHits(hits []search.Hit, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(hits)
	}
	if len(hits) == 0 {
		fmt.Println("No maps found.")
		return nil
	}
	for _, h := range hits {
		fmt.Printf("[%s] %s\n", h.ID, clip(h.Title, 60))
		fmt.Printf("    %s | %s | %d nodes | match: %s\n", h.Specialty, h.Tag, h.NodeCount, h.Matched)
	}
	fmt.Printf("\n%d maps\n", len(hits))
	return nil
}

func printStats(st search.Stats) {
	fmt.Printf("Total maps: %d (%d nodes)\n", st.Total, st.Nodes)
	fmt.Println("\nBy specialty:")
	for _, c := range st.Specialties {
		fmt.Printf("  %s: %d\n", c.Label, c.Count)
	}
	fmt.Println("\nBy tag:")
	for _, c := range st.Tags {
		fmt.Printf("  %s: %d\n", c.Label, c.Count)
	}
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func init() {
	searchCmd.Flags().Bool("related", false, "also match topics related to the term")
	searchCmd.Flags().Bool("content", false, "search the text of every node")
	searchCmd.Flags().Bool("reindex", false, "rebuild the content index from the catalog")
	searchCmd.Flags().Bool("stats", false, "print counts by specialty and tag")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
