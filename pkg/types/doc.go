// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the medmaps ingestion
// pipeline: the tree Node every parser produces, the per-item DetailRecord,
// its SummaryEntry projection stored in the catalog index, and the stage
// configuration structs.
package types
