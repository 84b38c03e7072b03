package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletoplab/bgg-harvester/internal/dataset"
	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"CATAN", "CATAN"},
		{"On Mars", "On_Mars"},
		{"Catan: Seafarers", "Catan__Seafarers"},
		{"A/B", "A_B"},
		{"A B", "A_B"}, // documented collision with "A/B"
		{"7 Wonders", "7_Wonders"},
		{"v1.2_final-copy", "v1.2_final-copy"},
		{"Café International", "Café_International"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), tc.in)
	}
}

func TestSaveGameCommentsWritesVerbatimJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir, nil)
	require.NoError(t, err)

	comments := []bgg.Comment{
		{Username: "meeplefan", Rating: "9", Value: "<b>Great</b> & fun, würfeln!"},
	}
	require.NoError(t, store.SaveGameComments(context.Background(), "On Mars", comments))

	path := filepath.Join(dir, "On_Mars_comments.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "<b>Great</b> & fun, würfeln!", "no HTML or unicode escaping")
	assert.Contains(t, text, "meeplefan")
}

func TestSaveGameCommentsNilSlice(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, store.SaveGameComments(context.Background(), "CATAN", nil))

	data, err := os.ReadFile(store.GameCommentsPath("CATAN"))
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)), "nil comments serialize as an empty array")
}

func TestDatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir, nil)
	require.NoError(t, err)

	ds := dataset.New()
	ds.Set("Gloomhaven", []bgg.Comment{{Username: "a", Rating: "8", Value: "long"}})
	ds.Set("CATAN", []bgg.Comment{})

	ctx := context.Background()
	require.NoError(t, store.SaveDataset(ctx, ds))

	restored, err := store.LoadDataset(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ds.Games(), restored.Games())
	for _, game := range ds.Games() {
		want, _ := ds.Get(game)
		got, ok := restored.Get(game)
		require.True(t, ok, game)
		assert.Equal(t, want, got, game)
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = store.LoadDataset(context.Background(), "")
	assert.Error(t, err)
}

func TestLoadDatasetMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.AggregatePath(), []byte("{not json"), 0644))

	_, err = store.LoadDataset(context.Background(), "")
	assert.Error(t, err)
}

func TestMetricsRecorded(t *testing.T) {
	dir := t.TempDir()
	collector := NewSimpleMetricsCollector()
	store, err := NewFilesystemStore(dir, collector)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.SaveGameComments(ctx, "CATAN", []bgg.Comment{{Value: "x"}}))
	require.NoError(t, store.SaveDataset(ctx, dataset.New()))
	_, _ = store.LoadDataset(ctx, filepath.Join(dir, "does-not-exist.json"))

	metrics := collector.GetMetrics()
	require.Len(t, metrics, 3)

	summary := collector.GetMetricsSummary()
	assert.Equal(t, int64(1), summary["save_game_comments"].SuccessCount)
	assert.Equal(t, int64(1), summary["save_dataset"].SuccessCount)
	assert.Equal(t, int64(0), summary["load_dataset"].SuccessCount)
	assert.Equal(t, int64(1), summary["load_dataset"].Count)
}
