package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fundwatch/internal/errorwrapper"
	"fundwatch/internal/models"

	"github.com/rs/zerolog"
)

// StateStore persists MonitorState as a JSON document. It is the sole
// owner of the persisted state: no other component reads or writes the
// file. The load-modify-save cycle assumes at most one run at a time;
// the external scheduler must not overlap invocations.
type StateStore struct {
	path   string
	logger zerolog.Logger
}

// NewStateStore creates a StateStore for the given file path.
func NewStateStore(path string, logger zerolog.Logger) *StateStore {
	return &StateStore{
		path:   path,
		logger: logger.With().Str("component", "StateStore").Logger(),
	}
}

// Load reads the persisted state. An absent file is not an error: it
// means first run, and yields an empty state. A file that exists but
// does not parse is an error; silently starting over would re-notify
// every tracked entry.
func (ss *StateStore) Load() (*models.MonitorState, error) {
	data, err := os.ReadFile(ss.path)
	if err != nil {
		if os.IsNotExist(err) {
			ss.logger.Info().Str("path", ss.path).Msg("No state file found, starting with empty state")
			return models.NewMonitorState(), nil
		}
		return nil, errorwrapper.WrapError(err, "failed to read state file")
	}

	state := models.NewMonitorState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse state file '"+ss.path+"'")
	}
	if state.Items == nil {
		state.Items = make(map[string]models.StateEntry)
	}

	ss.logger.Debug().Int("items", len(state.Items)).Msg("State loaded")
	return state, nil
}

// Save writes the state atomically: marshal to a temp file in the
// same directory, then rename over the target. A crash mid-write
// leaves the previous state intact.
func (ss *StateStore) Save(state *models.MonitorState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal state")
	}

	dir := filepath.Dir(ss.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create state directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(ss.path)+".tmp-*")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create temp state file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to write temp state file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to close temp state file")
	}

	if err := os.Rename(tmpName, ss.path); err != nil {
		_ = os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to replace state file")
	}

	ss.logger.Debug().Str("path", ss.path).Int("items", len(state.Items)).Msg("State saved")
	return nil
}
