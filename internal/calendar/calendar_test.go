package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
		ok           bool
	}{
		{"8", 8, 0, true},
		{"08:30", 8, 30, true},
		{"8.45", 8, 45, true},
		{"2:15 pm", 14, 15, true},
		{"2:15PM", 14, 15, true},
		{"12 am", 0, 0, true},
		{"12pm", 12, 0, true},
		{"7 a.m.", 7, 0, true},
		{"14h", 14, 0, true},
		{"14h30", 14, 30, true},
		{" 06:00 ", 6, 0, true},
		{"", 0, 0, false},
		{"morning", 0, 0, false},
		{"25:00", 0, 0, false},
		{"13 pm", 0, 0, false},
		{"08:75", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, ok := ParseTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.hour, h)
				assert.Equal(t, tt.minute, m)
			}
		})
	}
}

func TestRangeFor(t *testing.T) {
	// 2026-03-04 is a Wednesday.
	anchor := date("2026-03-04")

	day := RangeFor(Day, anchor)
	assert.Equal(t, date("2026-03-04"), day.Start)
	assert.Len(t, day.Days(), 1)

	week := RangeFor(Week, anchor)
	assert.Equal(t, date("2026-03-01"), week.Start, "weeks start on Sunday")
	assert.Equal(t, date("2026-03-08"), week.End)

	month := RangeFor(Month, anchor)
	assert.Equal(t, date("2026-03-01"), month.Start)
	assert.Len(t, month.Days(), 7*MonthWeeks)

	// April 2026 starts on a Wednesday, so the grid starts in March.
	april := month.Next()
	assert.Equal(t, date("2026-03-29"), april.Start)
	assert.Equal(t, "April 2026", april.Title())
	assert.Equal(t, month.Start, april.Prev().Start)

	assert.Equal(t, date("2026-03-08"), week.Next().Start)
	assert.Equal(t, date("2026-03-03"), day.Prev().Start)
	assert.True(t, week.Contains(date("2026-03-07")))
	assert.False(t, week.Contains(date("2026-03-08")))
}

func TestParseView(t *testing.T) {
	v, err := ParseView("m")
	require.NoError(t, err)
	assert.Equal(t, Month, v)

	_, err = ParseView("year")
	assert.Error(t, err)
}

func TestBucket(t *testing.T) {
	items := []Item{
		{ID: "1", Date: "2026-03-02", StartTime: "10:00"},
		{ID: "2", Date: "2026-03-02", StartTime: "8"},
		{ID: "3", Date: "2026-03-02", StartTime: "after lunch"},
		{ID: "4", Date: "2026-03-03", StartTime: "10:30"},
		{ID: "5", Date: "2026-04-01", StartTime: "9"},
		{ID: "6", Date: "not a date", StartTime: "9"},
	}

	week := Bucket(items, RangeFor(Week, date("2026-03-02")))
	require.Len(t, week, 7)

	monday := week[1]
	assert.Equal(t, date("2026-03-02"), monday.Date)
	require.Len(t, monday.Items, 3)
	assert.Equal(t, []string{"2", "1", "3"}, ids(monday.Items), "timed items first, in start order")
	assert.Equal(t, []string{"3"}, ids(monday.AllDay))
	assert.Equal(t, []string{"2"}, ids(monday.ByHour[8]))
	assert.Equal(t, []string{"1"}, ids(monday.ByHour[10]))
	assert.Equal(t, []string{"4"}, ids(week[2].ByHour[10]))

	for _, b := range week {
		for _, it := range b.Items {
			assert.NotEqual(t, "5", it.ID, "out of range items are dropped")
		}
	}

	month := Bucket(items, RangeFor(Month, date("2026-03-02")))
	assert.Nil(t, month[1].ByHour, "month view does not bucket by hour")
	total := 0
	for _, b := range month {
		total += len(b.Items)
	}
	assert.Equal(t, 5, total, "April 1st is inside the March grid")
}

func TestLayout(t *testing.T) {
	items := []Item{
		{ID: "a", StartTime: "08:00"},                          // 08:00-09:00
		{ID: "b", StartTime: "08:30", Duration: 2 * time.Hour}, // 08:30-10:30
		{ID: "c", StartTime: "09:00"},                          // 09:00-10:00, reuses a's column
		{ID: "d", StartTime: "13:00", Duration: 30 * time.Minute},
		{ID: "e", StartTime: "sometime"},
	}

	blocks := Layout(items, 2, 20)
	require.Len(t, blocks, 4)

	byID := map[string]Block{}
	for _, b := range blocks {
		byID[b.Item.ID] = b
	}

	a, b, c, d := byID["a"], byID["b"], byID["c"], byID["d"]
	assert.Equal(t, 16, a.Top)
	assert.Equal(t, 2, a.Height)
	assert.Equal(t, 4, b.Height)

	assert.Equal(t, 2, a.Lanes)
	assert.Equal(t, 0, a.Column)
	assert.Equal(t, 1, b.Column)
	assert.Equal(t, 0, c.Column)
	assert.Equal(t, 10, b.Left)
	assert.Equal(t, 10, b.Width)

	assert.Equal(t, 1, d.Lanes, "non-overlapping item gets the full width")
	assert.Equal(t, 20, d.Width)
	assert.Equal(t, 1, d.Height)
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
