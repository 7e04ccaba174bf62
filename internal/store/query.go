package store

import (
	"sort"
	"strings"
)

// Record is anything a Query can filter and order.
type Record interface {
	Value(field string) string
}

// Query selects records by exact field match, then orders and limits them.
// Where values are compared case-insensitively. An empty OrderBy keeps
// creation order.
type Query struct {
	Where   map[string]string
	OrderBy string
	Desc    bool
	Limit   int
}

func (q Query) matches(r Record) bool {
	for field, want := range q.Where {
		if want == "" {
			continue
		}
		if !strings.EqualFold(r.Value(field), want) {
			return false
		}
	}
	return true
}

// apply returns the records matched by q, in q's order.
func apply[T Record](q Query, records []T) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if q.matches(r) {
			out = append(out, r)
		}
	}

	order := q.OrderBy
	if order == "" {
		order = "createdAt"
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Value(order), out[j].Value(order)
		if a == b {
			// Ties fall back to id for a stable listing across loads.
			a, b = out[i].Value("id"), out[j].Value("id")
		}
		if q.Desc {
			return a > b
		}
		return a < b
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func values[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
