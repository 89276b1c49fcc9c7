package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewdex/backend/internal/domain"
)

func writeRecordFile(t *testing.T, dir, source string, records []domain.RawRecord) {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	path := filepath.Join(dir, recordFilePrefix+source+recordFileSuffix)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestFileStoreLoadRecords(t *testing.T) {
	dir := t.TempDir()

	writeRecordFile(t, dir, "saq", []domain.RawRecord{
		{Name: "Blonde", Producer: "Unibroue", Price: "3.00"},
		{Name: "Péché Mortel", Producer: "Dieu du Ciel"},
	})
	writeRecordFile(t, dir, "iga", []domain.RawRecord{
		{Name: "Blonde", Producer: "Unibroue", Price: "3.25"},
	})

	// files outside the naming scheme are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not records"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merged.json"), []byte("[]"), 0644))

	store := NewFileStore(dir, "")
	records, err := store.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// lexical filename order: beers_iga.json before beers_saq.json
	assert.Equal(t, "iga", records[0].Source)
	assert.Equal(t, "3.25", records[0].Price)
	assert.Equal(t, "saq", records[1].Source)
	assert.Equal(t, "saq", records[2].Source)
}

func TestFileStoreLoadRecordsSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()

	writeRecordFile(t, dir, "saq", []domain.RawRecord{
		{Name: "Blonde", Producer: "Unibroue"},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beers_broken.json"), []byte("{not json"), 0644))

	store := NewFileStore(dir, "")
	records, err := store.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "saq", records[0].Source)
}

func TestFileStoreLoadRecordsNoFiles(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		store := NewFileStore(t.TempDir(), "")
		_, err := store.LoadRecords(context.Background())
		assert.ErrorIs(t, err, domain.ErrNoRecordFiles)
	})

	t.Run("only unparseable files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "beers_broken.json"), []byte("{not json"), 0644))

		store := NewFileStore(dir, "")
		_, err := store.LoadRecords(context.Background())
		assert.ErrorIs(t, err, domain.ErrNoRecordFiles)
	})

	t.Run("missing directory", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "missing"), "")
		_, err := store.LoadRecords(context.Background())
		assert.Error(t, err)
	})
}

func TestFileStoreSaveCanonical(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "beers_merged.json")

	records := []domain.CanonicalRecord{
		{
			RawRecord: domain.RawRecord{Name: "Blonde", Producer: "Unibroue", Source: "saq"},
			Sources:   []string{"saq", "iga"},
			Prices:    map[string]string{"saq": "3.00", "iga": "3.25"},
			Pack: &domain.PackInfo{
				URLs:   []string{"https://iga.example/blonde-4-pack"},
				Prices: map[string]string{"iga": "11.00"},
			},
		},
	}

	store := NewFileStore(dir, output)
	require.NoError(t, store.SaveCanonical(context.Background(), records))

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var got []domain.CanonicalRecord
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Blonde", got[0].Name)
	assert.Equal(t, []string{"saq", "iga"}, got[0].Sources)
	assert.Equal(t, "3.25", got[0].Prices["iga"])
	require.NotNil(t, got[0].Pack)
	assert.Equal(t, "11.00", got[0].Pack.Prices["iga"])
}

func TestFileStoreSaveCanonicalNoOutput(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")
	assert.NoError(t, store.SaveCanonical(context.Background(), nil))
}
