// Package state persists UI preferences between runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/mark3labs/dispatch/internal/logger"
)

// FileName is the UI state file inside the data directory.
const FileName = "ui-state.json"

// UIState holds persistent UI preferences that carry across sessions.
type UIState struct {
	Calendar CalendarState `json:"calendar"`
}

// CalendarState remembers how the calendar viewer was last left.
type CalendarState struct {
	View string `json:"view"`
}

// DefaultUIState returns the default UI state.
func DefaultUIState() *UIState {
	return &UIState{
		Calendar: CalendarState{View: calendar.Week.String()},
	}
}

// CalendarView returns the remembered view, or week when the stored value is
// missing or unknown.
func (s *UIState) CalendarView() calendar.View {
	v, err := calendar.ParseView(s.Calendar.View)
	if err != nil {
		return calendar.Week
	}
	return v
}

// Load reads the UI state from dataDir.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read UI state file: %v", err)
		}
		return DefaultUIState()
	}

	state := DefaultUIState()
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}
	return state
}

// Save writes the UI state to dataDir, creating it if needed.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
