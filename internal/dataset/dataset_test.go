package dataset

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
)

func TestSetPreservesInsertionOrder(t *testing.T) {
	ds := New()
	ds.Set("Gloomhaven", []bgg.Comment{{Value: "heavy"}})
	ds.Set("On Mars", []bgg.Comment{})
	ds.Set("CATAN", []bgg.Comment{{Value: "classic"}})

	assert.Equal(t, []string{"Gloomhaven", "On Mars", "CATAN"}, ds.Games())
	assert.Equal(t, 3, ds.Len())

	// Re-setting an existing game keeps its position.
	ds.Set("Gloomhaven", []bgg.Comment{{Value: "still heavy"}})
	assert.Equal(t, []string{"Gloomhaven", "On Mars", "CATAN"}, ds.Games())

	comments, ok := ds.Get("Gloomhaven")
	require.True(t, ok)
	require.Len(t, comments, 1)
	assert.Equal(t, "still heavy", comments[0].Value)
}

func TestGetMissingGame(t *testing.T) {
	ds := New()
	_, ok := ds.Get("Unknown Game Xyz123")
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	ds := New()
	ds.Set("Zebra Game", []bgg.Comment{
		{Username: "meeplefan", Rating: "9", Value: "Great gateway game"},
		{Rating: "N/A", Value: "ok"},
	})
	ds.Set("Alpha Game", []bgg.Comment{})
	ds.Set("Middle Game", []bgg.Comment{{Value: "fine"}})

	data, err := json.Marshal(ds)
	require.NoError(t, err)

	restored := New()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, ds.Games(), restored.Games(), "key order must survive the round trip")
	for _, game := range ds.Games() {
		want, _ := ds.Get(game)
		got, ok := restored.Get(game)
		require.True(t, ok, game)
		assert.Equal(t, len(want), len(got), game)
		for i := range want {
			assert.Equal(t, want[i], got[i])
		}
	}
}

func TestMarshalKeepsNonASCIIVerbatim(t *testing.T) {
	ds := New()
	ds.Set("Die Siedler von Catan", []bgg.Comment{
		{Username: "günther", Value: "Zu viel Glück für meinen Geschmack"},
	})

	data, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Zu viel Glück für meinen Geschmack"),
		"non-ASCII text must not be escaped")
}

func TestEmptyDatasetMarshalsToEmptyObject(t *testing.T) {
	data, err := json.Marshal(New())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestUnmarshalRejectsNonObject(t *testing.T) {
	ds := New()
	assert.Error(t, json.Unmarshal([]byte(`["not", "an", "object"]`), ds))
}
