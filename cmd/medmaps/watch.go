// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/criaah/medmaps/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Ingest files as they arrive in an inbox folder",
	Long: `Watch ingests the files already in the inbox, then every supported file
created or changed there once it has been quiet for the debounce period.
Files are ingested one at a time. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("inbox") {
		a.cfg.Watch.Inbox, _ = cmd.Flags().GetString("inbox")
	}
	if a.cfg.Watch.Inbox == "" {
		return fmt.Errorf("--inbox is required")
	}
	if err := ingestOverrides(cmd, &a.cfg.Ingest); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	err = watch.New(a.cfg.Watch, a.pipeline(ctx), os.Stdout, a.log).Run(ctx)
	a.flushMetrics()
	return err
}

func init() {
	watchCmd.Flags().String("inbox", "", "folder to watch")
	watchCmd.Flags().String("move-to", "", "move ingested source files to this folder")
	watchCmd.Flags().String("access", "free", "access level for new maps: free or premium")

	rootCmd.AddCommand(watchCmd)
}
