// Package calendar buckets scheduled items into day, week and month views
// and lays out overlapping items within a day column.
package calendar

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date format items carry.
const DateLayout = "2006-01-02"

// View is the visible span of the calendar.
type View int

const (
	Day View = iota
	Week
	Month
)

func (v View) String() string {
	switch v {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// ParseView accepts "day", "week" or "month".
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return Day, nil
	case "week", "w", "":
		return Week, nil
	case "month", "m":
		return Month, nil
	}
	return Week, fmt.Errorf("invalid view %q (must be day, week or month)", s)
}

// MonthWeeks is the number of weeks a month grid always shows.
const MonthWeeks = 6

// Range is a half-open span of whole days [Start, End).
type Range struct {
	View   View
	Anchor time.Time // the day the range was built around
	Start  time.Time
	End    time.Time
}

// RangeFor returns the range of view containing anchor. Weeks start on
// Sunday; a month grid starts on the Sunday on or before the 1st and spans
// MonthWeeks weeks.
func RangeFor(view View, anchor time.Time) Range {
	day := truncate(anchor)
	r := Range{View: view, Anchor: day}
	switch view {
	case Day:
		r.Start = day
		r.End = day.AddDate(0, 0, 1)
	case Month:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		r.Start = sunday(first)
		r.End = r.Start.AddDate(0, 0, 7*MonthWeeks)
	default:
		r.View = Week
		r.Start = sunday(day)
		r.End = r.Start.AddDate(0, 0, 7)
	}
	return r
}

// Next returns the following range of the same view.
func (r Range) Next() Range { return r.shift(1) }

// Prev returns the preceding range of the same view.
func (r Range) Prev() Range { return r.shift(-1) }

func (r Range) shift(n int) Range {
	switch r.View {
	case Day:
		return RangeFor(Day, r.Anchor.AddDate(0, 0, n))
	case Month:
		a := time.Date(r.Anchor.Year(), r.Anchor.Month()+time.Month(n), 1, 0, 0, 0, 0, r.Anchor.Location())
		return RangeFor(Month, a)
	default:
		return RangeFor(Week, r.Anchor.AddDate(0, 0, 7*n))
	}
}

// Contains reports whether day t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	d := truncate(t)
	return !d.Before(r.Start) && d.Before(r.End)
}

// Days returns every day in the range.
func (r Range) Days() []time.Time {
	var days []time.Time
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Title describes the range for a header.
func (r Range) Title() string {
	switch r.View {
	case Day:
		return r.Start.Format("Monday, Jan 2 2006")
	case Month:
		return r.Anchor.Format("January 2006")
	default:
		last := r.End.AddDate(0, 0, -1)
		return fmt.Sprintf("%s - %s", r.Start.Format("Jan 2"), last.Format("Jan 2 2006"))
	}
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sunday(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// Item is one scheduled entry.
type Item struct {
	ID        string
	Title     string
	Date      string // YYYY-MM-DD
	StartTime string // free text
	Duration  time.Duration
	Status    string
}

// DefaultDuration is assumed for items with no duration.
const DefaultDuration = time.Hour

// hourPattern matches "8", "08:30", "8.30", "2:15 pm", "14h" and "14h30".
var hourPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?:[:.h](\d{2}))?\s*(h|am|pm|a\.m\.|p\.m\.)?$`)

// ParseTime extracts the hour and minute from a free-text start time.
func ParseTime(s string) (hour, minute int, ok bool) {
	m := hourPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return 0, 0, false
	}

	switch suffix := strings.ToLower(strings.ReplaceAll(m[3], ".", "")); suffix {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
		if suffix == "pm" {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, 0, false
		}
	}
	return hour, minute, true
}

// Start returns the minutes after midnight an item starts.
func (it Item) Start() (int, bool) {
	h, m, ok := ParseTime(it.StartTime)
	if !ok {
		return 0, false
	}
	return h*60 + m, true
}

func (it Item) minutes() int {
	d := it.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return int(d / time.Minute)
}

// DayBucket holds the items falling on one day.
type DayBucket struct {
	Date   time.Time
	Items  []Item         // every item, timed ones first in start order
	ByHour map[int][]Item // day and week views only
	AllDay []Item         // items whose time could not be parsed
}

// Bucket groups items into one bucket per day of r. Items outside r or with
// an unparseable date are dropped. Day and week views also group timed items
// by start hour.
func Bucket(items []Item, r Range) []DayBucket {
	days := r.Days()
	buckets := make([]DayBucket, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		buckets[i] = DayBucket{Date: d}
		if r.View != Month {
			buckets[i].ByHour = make(map[int][]Item)
		}
		index[d.Format(DateLayout)] = i
	}

	for _, it := range items {
		date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(it.Date), r.Start.Location())
		if err != nil {
			continue
		}
		i, ok := index[date.Format(DateLayout)]
		if !ok {
			continue
		}
		b := &buckets[i]
		b.Items = append(b.Items, it)

		if start, ok := it.Start(); ok {
			if b.ByHour != nil {
				b.ByHour[start/60] = append(b.ByHour[start/60], it)
			}
		} else {
			b.AllDay = append(b.AllDay, it)
		}
	}

	for i := range buckets {
		sortItems(buckets[i].Items)
		for h := range buckets[i].ByHour {
			sortItems(buckets[i].ByHour[h])
		}
	}
	return buckets
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, aok := items[i].Start()
		b, bok := items[j].Start()
		if aok != bok {
			return aok
		}
		return a < b
	})
}
