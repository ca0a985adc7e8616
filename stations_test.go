package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStation(t *testing.T) {
	t.Run("abbreviation", func(t *testing.T) {
		got, ok := ResolveStation("cntrl", []string{"Central", "Eastside"})
		require.True(t, ok)
		assert.Equal(t, "Central", got)
	})

	t.Run("substring either way", func(t *testing.T) {
		catalog := []string{"Central", "North", "Eastside"}

		got, ok := ResolveStation("north", catalog)
		require.True(t, ok)
		assert.Equal(t, "North", got)

		got, ok = ResolveStation("to Eastside station please", catalog)
		require.True(t, ok)
		assert.Equal(t, "Eastside", got)
	})

	t.Run("tie goes to the first entry", func(t *testing.T) {
		got, ok := ResolveStation("north", []string{"North Gate", "North Park"})
		require.True(t, ok)
		assert.Equal(t, "North Gate", got)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := ResolveStation("xyz", []string{"Central", "Eastside"})
		assert.False(t, ok)

		_, ok = ResolveStation("  ", []string{"Central"})
		assert.False(t, ok)
	})
}

func TestLoadStations(t *testing.T) {
	t.Run("bundled", func(t *testing.T) {
		catalog, err := loadStations(nil, "")
		require.NoError(t, err)
		assert.Len(t, catalog, 30)
		assert.Contains(t, catalog, "New Delhi")
	})

	t.Run("explicit list wins and is deduplicated", func(t *testing.T) {
		catalog, err := loadStations([]string{"Central", " central ", "North", ""}, "ignored.json")
		require.NoError(t, err)
		assert.Equal(t, []string{"Central", "North"}, catalog)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stations.json")
		require.NoError(t, os.WriteFile(path, []byte(`["Central","Eastside"]`), 0o644))

		catalog, err := loadStations(nil, path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Central", "Eastside"}, catalog)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stations.json")
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

		_, err := loadStations(nil, path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadStations(nil, filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestStationExamples(t *testing.T) {
	catalog := []string{"Central", "North", "Eastside"}
	assert.Equal(t, "North, Eastside", stationExamples(catalog, 5, "Central"))
	assert.Equal(t, "Central, North", stationExamples(catalog, 2, ""))
}
