package todo

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StatusAll:
		return StatusAll, nil
	case StatusCompleted, StatusPending:
		return st, nil
	default:
		return "", fmt.Errorf("invalid status %q: must be one of all, completed, pending", s)
	}
}

type SortKey string

const (
	SortPriority SortKey = "priority"
	SortTitle    SortKey = "title"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "", SortPriority:
		return SortPriority, nil
	case SortTitle:
		return k, nil
	default:
		return "", fmt.Errorf("invalid sort key %q: must be priority or title", s)
	}
}

// OwnerAll disables the owner filter. Real owner ids start at 1.
const OwnerAll int64 = 0

// Criteria is the page-local filter and sort selection. The zero value
// shows everything sorted by priority.
type Criteria struct {
	Query  string
	Status Status
	Owner  int64
	Sort   SortKey
}
