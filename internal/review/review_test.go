// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criaah/medmaps/internal/catalog"
	"github.com/criaah/medmaps/pkg/types"
)

func record(id, title, specialty string, children ...string) *types.DetailRecord {
	root := types.NewNode(title)
	for _, c := range children {
		root.Append(types.NewNode(c))
	}
	return &types.DetailRecord{
		SummaryEntry: types.SummaryEntry{
			ID:        id,
			Title:     title,
			Specialty: specialty,
			Tag:       "📚 Revisión",
			Access:    types.AccessFree,
		},
		Root: root,
	}
}

func seed(t *testing.T, recs ...*types.DetailRecord) *catalog.Repository {
	t.Helper()
	repo := catalog.NewRepository(types.CatalogConfig{DataDir: t.TempDir()})
	index := catalog.NewIndex(nil)
	for _, rec := range recs {
		require.NoError(t, repo.SaveDetail(rec))
		index.Upsert(rec.Summary())
	}
	require.NoError(t, repo.SaveIndex(index))
	return repo
}

func sampleCatalog(t *testing.T) *catalog.Repository {
	return seed(t,
		record("map_0001", "Insuficiencia cardiaca", "Cardiología", "Furosemida"),
		record("map_0002", "Insuficiencia renal", "Nefrología"),
		record("map_0003", "Sepsis", "UCI-Medicina Crítica", "Lactato"),
	)
}

func TestUpdate(t *testing.T) {
	repo := sampleCatalog(t)
	r := New(repo, nil, zerolog.Nop())

	rec, err := r.Update("map_0003", Changes{Specialty: "Infectología", Access: "premium"})
	require.NoError(t, err)
	assert.Equal(t, "Infectología", rec.Specialty)
	assert.Equal(t, "📚 Revisión", rec.Tag)

	stored, err := repo.LoadDetail("map_0003")
	require.NoError(t, err)
	assert.Equal(t, types.AccessPremium, stored.Access)

	index, err := repo.Load()
	require.NoError(t, err)
	entry, ok := index.Get("map_0003")
	require.True(t, ok)
	assert.Equal(t, stored.Summary(), entry)
}

func TestUpdateRejectsUnknownValues(t *testing.T) {
	r := New(sampleCatalog(t), nil, zerolog.Nop())
	for name, c := range map[string]Changes{
		"specialty": {Specialty: "Astrología"},
		"tag":       {Tag: "Chisme"},
		"access":    {Access: "secret"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Update("map_0001", c)
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestUpdateMissingMap(t *testing.T) {
	r := New(sampleCatalog(t), nil, zerolog.Nop())
	_, err := r.Update("map_0099", Changes{Tag: "📄 Paper"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRelinkAll(t *testing.T) {
	repo := sampleCatalog(t)
	r := New(repo, nil, zerolog.Nop())

	var out bytes.Buffer
	report, err := r.Relink("", &out)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Checked)
	assert.Equal(t, 2, report.Changed)
	assert.Contains(t, out.String(), "Relink summary: 3 checked, 2 changed, 0 missing")

	index, err := repo.Load()
	require.NoError(t, err)
	for id, want := range map[string]types.RelatedIDs{
		"map_0001": {"map_0002"},
		"map_0002": {"map_0001"},
		"map_0003": {},
	} {
		rec, err := repo.LoadDetail(id)
		require.NoError(t, err)
		assert.Equal(t, want, rec.RelatedMaps, id)
		entry, _ := index.Get(id)
		assert.Equal(t, want, entry.RelatedMaps, id)
	}

	again, err := r.Relink("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Zero(t, again.Changed)
}

func TestRelinkOne(t *testing.T) {
	repo := sampleCatalog(t)
	r := New(repo, nil, zerolog.Nop())

	report, err := r.Relink("map_0002", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Checked)

	untouched, err := repo.LoadDetail("map_0001")
	require.NoError(t, err)
	assert.Empty(t, untouched.RelatedMaps)

	_, err = r.Relink("map_0042", &bytes.Buffer{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRelinkSkipsMissingDetails(t *testing.T) {
	repo := sampleCatalog(t)
	require.NoError(t, repo.UpsertIndexEntry(types.SummaryEntry{
		ID: "map_0004", Title: "Sin detalle", NodeCount: 1, RelatedMaps: types.RelatedIDs{},
	}))

	report, err := New(repo, nil, zerolog.Nop()).Relink("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"map_0004"}, report.Missing)
	assert.Equal(t, 3, report.Checked)
}

func TestList(t *testing.T) {
	r := New(sampleCatalog(t), nil, zerolog.Nop())

	all, err := r.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	renal, err := r.List("Nefrología")
	require.NoError(t, err)
	require.Len(t, renal, 1)
	assert.Equal(t, "map_0002", renal[0].ID)
}
