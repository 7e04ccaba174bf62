package main

import (
	"testing"
	"time"

	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savedCall(id, date, status string) *store.ServiceCall {
	c := &store.ServiceCall{}
	c.ID = id
	c.Date = date
	c.StartTime = "07:30"
	c.Customer = "Acme Builders"
	c.ProjectSite = "North Yard"
	c.Status = status
	return c
}

func TestCalendarItems(t *testing.T) {
	calls := []*store.ServiceCall{
		savedCall("a", "2026-03-02", draft.StatusPending),
		savedCall("b", "2026-03-03", draft.StatusCancelled),
	}

	items := calendarItems(calls, false)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "Acme Builders @ North Yard", items[0].Title)
	assert.Equal(t, "07:30", items[0].StartTime)

	assert.Len(t, calendarItems(calls, true), 2)
}

func TestInRange(t *testing.T) {
	calls := []*store.ServiceCall{
		savedCall("a", "2026-02-28", draft.StatusPending),
		savedCall("b", "2026-03-01", draft.StatusPending),
		savedCall("c", "2026-03-31", draft.StatusPending),
		savedCall("d", "2026-04-01", draft.StatusPending),
	}

	got := inRange(calls, "2026-03-01", "2026-03-31")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestExportRange(t *testing.T) {
	now := time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC)

	t.Run("defaults to the month", func(t *testing.T) {
		exportFlags.from, exportFlags.to = "", ""
		from, to, err := exportRange(now)
		require.NoError(t, err)
		assert.Equal(t, "2026-02-01", from)
		assert.Equal(t, "2026-02-28", to)
	})

	t.Run("flags override", func(t *testing.T) {
		exportFlags.from, exportFlags.to = "2026-01-10", "2026-01-20"
		defer func() { exportFlags.from, exportFlags.to = "", "" }()
		from, to, err := exportRange(now)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-10", from)
		assert.Equal(t, "2026-01-20", to)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		defer func() { exportFlags.from, exportFlags.to = "", "" }()
		exportFlags.from, exportFlags.to = "jan", ""
		_, _, err := exportRange(now)
		assert.Error(t, err)

		exportFlags.from, exportFlags.to = "2026-03-02", "2026-03-01"
		_, _, err = exportRange(now)
		assert.Error(t, err)
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", shortID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.Equal(t, "dana", shortID("dana"))
}
