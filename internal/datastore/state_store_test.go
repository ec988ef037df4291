package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"fundwatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsEmptyState(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "state.json"), zerolog.Nop())

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Items)
	assert.Nil(t, state.LastHeartbeat)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewStateStore(path, zerolog.Nop())

	endDate := "14 March 2026"
	reminded := "2026-03-07"
	heartbeat := "2026-03-07"

	state := models.NewMonitorState()
	state.Items["https://example.com/funding/calls/42"] = models.StateEntry{
		EndDate:          &endDate,
		LastReminderSent: &reminded,
	}
	state.Items["https://example.com/funding/calls/43"] = models.StateEntry{}
	state.LastHeartbeat = &heartbeat

	require.NoError(t, store.Save(state))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)

	item := loaded.Items["https://example.com/funding/calls/42"]
	require.NotNil(t, item.EndDate)
	assert.Equal(t, "14 March 2026", *item.EndDate)
	require.NotNil(t, item.LastReminderSent)
	assert.Equal(t, "2026-03-07", *item.LastReminderSent)

	undated := loaded.Items["https://example.com/funding/calls/43"]
	assert.Nil(t, undated.EndDate)
	assert.Nil(t, undated.LastReminderSent)

	require.NotNil(t, loaded.LastHeartbeat)
	assert.Equal(t, "2026-03-07", *loaded.LastHeartbeat)
}

func TestSave_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStateStore(path, zerolog.Nop())

	state := models.NewMonitorState()
	state.Items["a"] = models.StateEntry{}
	require.NoError(t, store.Save(state))

	delete(state.Items, "a")
	state.Items["b"] = models.StateEntry{}
	require.NoError(t, store.Save(state))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.False(t, loaded.Has("a"))
	assert.True(t, loaded.Has("b"))

	// No temp files left behind.
	dirEntries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, dirEntries, 1)
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewStateStore(path, zerolog.Nop()).Load()
	assert.Error(t, err)
}
