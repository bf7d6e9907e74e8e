//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Catalog groups the targets that run the CLI against ./data.
type Catalog mg.Namespace

func medmaps(args ...string) error {
	mg.Deps(Build)
	return sh.RunV("./"+binDir+"/"+binName, args...)
}

// Inbox ingests every supported file under ./inbox and moves the ingested
// ones to ./publicados.
func (Catalog) Inbox() error {
	mg.Deps(Init)
	return medmaps("ingest", "--dir", "inbox", "--move-to", "publicados")
}

// Reconcile repairs the index from the detail records.
func (Catalog) Reconcile() error {
	return medmaps("reconcile")
}

// Reindex rebuilds the content search index.
func (Catalog) Reindex() error {
	return medmaps("search", "--reindex")
}

// Relink recomputes related maps for the whole catalog.
func (Catalog) Relink() error {
	return medmaps("review", "relink", "--all")
}

// Export writes mirror records to data/mirror.json.
func (Catalog) Export() error {
	if err := medmaps("export", "--format", "json", "--out", "data/mirror.json"); err != nil {
		return err
	}
	fmt.Println("Wrote data/mirror.json")
	return nil
}
