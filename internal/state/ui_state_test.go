package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s := Load(t.TempDir())
	assert.Equal(t, calendar.Week, s.CalendarView())
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	s := DefaultUIState()
	s.Calendar.View = calendar.Month.String()
	require.NoError(t, Save(dir, s))

	assert.Equal(t, calendar.Month, Load(dir).CalendarView())
}

func TestLoad_CorruptOrUnknown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	assert.Equal(t, calendar.Week, Load(dir).CalendarView())

	require.NoError(t, os.WriteFile(path, []byte(`{"calendar":{"view":"fortnight"}}`), 0644))
	assert.Equal(t, calendar.Week, Load(dir).CalendarView())
}
