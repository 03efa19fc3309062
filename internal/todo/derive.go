package todo

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jaekwang-park/taskhub/internal/model"
)

// Derive returns the todos matching c in display order. The input slice is
// never modified and the result never aliases it.
func Derive(todos []model.Todo, c Criteria) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	query := strings.ToLower(c.Query)

	for _, t := range todos {
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		if c.Owner != OwnerAll && t.OwnerID != c.Owner {
			continue
		}
		if !matchesStatus(t, c.Status) {
			continue
		}
		out = append(out, t)
	}

	switch c.Sort {
	case SortTitle:
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b model.Todo) int {
			return col.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(out, func(a, b model.Todo) int {
			return int(b.Priority) - int(a.Priority)
		})
	}

	return out
}

func matchesQuery(t model.Todo, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(t.Description), lowerQuery)
}

func matchesStatus(t model.Todo, s Status) bool {
	switch s {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	default:
		return true
	}
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

func Summarize(todos []model.Todo) Stats {
	var s Stats
	for _, t := range todos {
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// Owners lists the distinct owner ids in ascending order.
func Owners(todos []model.Todo) []int64 {
	seen := make(map[int64]bool, len(todos))
	var ids []int64
	for _, t := range todos {
		if !seen[t.OwnerID] {
			seen[t.OwnerID] = true
			ids = append(ids, t.OwnerID)
		}
	}
	slices.Sort(ids)
	return ids
}
