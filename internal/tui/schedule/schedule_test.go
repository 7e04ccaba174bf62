package schedule

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/mark3labs/dispatch/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation(calendar.DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleItems() []calendar.Item {
	return []calendar.Item{
		{ID: "1", Title: "Acme Builders", Date: "2026-03-02", StartTime: "07:30"},
		{ID: "2", Title: "Northside", Date: "2026-03-02", StartTime: "8am"},
		{ID: "3", Title: "Walk-in", Date: "2026-03-03", StartTime: "after lunch"},
	}
}

func newModel(view calendar.View) *Model {
	m := New(sampleItems(), view, date("2026-03-02"), 2)
	m.now = func() time.Time { return date("2026-03-04") }
	m.Update(testfixtures.WindowSize())
	return m
}

func TestKeys_SwitchAndPage(t *testing.T) {
	m := newModel(calendar.Week)
	require.Equal(t, date("2026-03-01"), m.Range().Start)

	m.Update(testfixtures.Key("m"))
	assert.Equal(t, calendar.Month, m.Range().View)
	assert.Equal(t, date("2026-03-01"), m.Range().Start)

	m.Update(testfixtures.Key("right"))
	assert.Equal(t, "April 2026", m.Range().Title())

	m.Update(testfixtures.Key("d"))
	assert.Equal(t, calendar.Day, m.Range().View)
	assert.Equal(t, date("2026-04-01"), m.Range().Start)

	m.Update(testfixtures.Key("left"))
	assert.Equal(t, date("2026-03-31"), m.Range().Start)

	m.Update(testfixtures.Key("t"))
	assert.Equal(t, date("2026-03-04"), m.Range().Start)

	m.Update(testfixtures.Key("w"))
	assert.Equal(t, date("2026-03-01"), m.Range().Start)
}

func TestKeys_Quit(t *testing.T) {
	m := newModel(calendar.Week)
	_, cmd := m.Update(testfixtures.Key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestRender_Day(t *testing.T) {
	m := newModel(calendar.Day)
	screen := testfixtures.Screen(m.render())

	assert.Contains(t, screen, "Monday, Mar 2 2026")
	assert.Contains(t, screen, "07:00")
	assert.Contains(t, screen, "07:30 Acme Builders")
	assert.Contains(t, screen, "8am Northside", "overlapping items share the column")
}

func TestRender_WeekListsUntimedItems(t *testing.T) {
	m := newModel(calendar.Week)
	screen := testfixtures.Screen(m.render())

	assert.Contains(t, screen, "Mar 1 - Mar 7 2026")
	assert.Contains(t, screen, "Mon 03/02")
	assert.Contains(t, screen, "• Walk-in")
}

func TestRender_Month(t *testing.T) {
	m := newModel(calendar.Month)
	screen := testfixtures.Screen(m.render())

	assert.Contains(t, screen, "March 2026")
	assert.Contains(t, screen, "Sun")
	assert.Contains(t, screen, "07:30 Acme Buil")
	assert.Contains(t, screen, "4 •", "today is marked")
}

func TestHourSpan_GrowsForEarlyAndLateItems(t *testing.T) {
	m := New([]calendar.Item{
		{Title: "early", Date: "2026-03-02", StartTime: "4:15"},
		{Title: "late", Date: "2026-03-02", StartTime: "21:30"},
	}, calendar.Day, date("2026-03-02"), 1)

	first, last := m.hourSpan(calendar.Bucket(m.items, m.Range()))
	assert.Equal(t, 4, first)
	assert.Equal(t, 23, last)
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc  ", fit("abc", 5))
	assert.Equal(t, "abcd…", fit("abcdefgh", 5))
	assert.Equal(t, "a", fit("abc", 1))
}
