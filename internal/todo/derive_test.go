package todo_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/jaekwang-park/taskhub/internal/model"
	"github.com/jaekwang-park/taskhub/internal/todo"
)

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: 1, Title: "review PRs", Description: "team backlog", Priority: 3, Completed: false, OwnerID: 1},
		{ID: 2, Title: "Buy milk", Description: "and eggs", Priority: 1, Completed: true, OwnerID: 2},
		{ID: 3, Title: "Write report", Description: "quarterly REVIEW", Priority: 5, Completed: false, OwnerID: 1},
		{ID: 4, Title: "call mom", Description: "sunday", Priority: 3, Completed: true, OwnerID: 3},
		{ID: 5, Title: "Deploy", Description: "prod release", Priority: 5, Completed: true, OwnerID: 2},
	}
}

func ids(todos []model.Todo) []int64 {
	out := make([]int64, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		criteria todo.Criteria
		want     []int64
	}{
		{"zero criteria sorts by priority desc, stable", todo.Criteria{}, []int64{3, 5, 1, 4, 2}},
		{"search is case-insensitive on title", todo.Criteria{Query: "Review"}, []int64{3, 1}},
		{"search matches description", todo.Criteria{Query: "EGGS"}, []int64{2}},
		{"search is a plain substring", todo.Criteria{Query: "port"}, []int64{3}},
		{"status completed", todo.Criteria{Status: todo.StatusCompleted}, []int64{5, 4, 2}},
		{"status pending", todo.Criteria{Status: todo.StatusPending}, []int64{3, 1}},
		{"status all", todo.Criteria{Status: todo.StatusAll}, []int64{3, 5, 1, 4, 2}},
		{"owner filter", todo.Criteria{Owner: 2}, []int64{5, 2}},
		{"owner all", todo.Criteria{Owner: todo.OwnerAll}, []int64{3, 5, 1, 4, 2}},
		{"sort by title", todo.Criteria{Sort: todo.SortTitle}, []int64{2, 4, 5, 1, 3}},
		{"combined", todo.Criteria{Query: "e", Owner: 1, Status: todo.StatusPending, Sort: todo.SortTitle}, []int64{1, 3}},
		{"no match", todo.Criteria{Query: "zzz"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(todo.Derive(sampleTodos(), tt.criteria))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerive_TieScenario(t *testing.T) {
	todos := []model.Todo{
		{ID: 1, Priority: 5, Title: "B"},
		{ID: 2, Priority: 5, Title: "A"},
	}

	byTitle := todo.Derive(todos, todo.Criteria{Sort: todo.SortTitle})
	if got := ids(byTitle); !slices.Equal(got, []int64{2, 1}) {
		t.Errorf("title sort: got %v, want [2 1]", got)
	}

	byPriority := todo.Derive(todos, todo.Criteria{Sort: todo.SortPriority})
	if got := ids(byPriority); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("priority sort: got %v, want [1 2]", got)
	}
}

func TestDerive_PureAndDeterministic(t *testing.T) {
	src := sampleTodos()
	before := slices.Clone(src)
	c := todo.Criteria{Query: "e", Sort: todo.SortTitle}

	first := todo.Derive(src, c)
	second := todo.Derive(src, c)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("derivation not deterministic: %v vs %v", ids(first), ids(second))
	}
	if !reflect.DeepEqual(src, before) {
		t.Error("Derive mutated its input")
	}

	// The result must not alias the source.
	if len(first) > 0 {
		first[0].Title = "changed"
		if slices.ContainsFunc(src, func(t model.Todo) bool { return t.Title == "changed" }) {
			t.Error("result aliases the source slice")
		}
	}
}

func TestDerive_NilInput(t *testing.T) {
	got := todo.Derive(nil, todo.Criteria{Query: "x"})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSummarize(t *testing.T) {
	s := todo.Summarize(sampleTodos())
	want := todo.Stats{Total: 5, Completed: 3, Pending: 2}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestOwners(t *testing.T) {
	if got := todo.Owners(sampleTodos()); !slices.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    todo.Status
		wantErr bool
	}{
		{"", todo.StatusAll, false},
		{"all", todo.StatusAll, false},
		{"Completed", todo.StatusCompleted, false},
		{"pending", todo.StatusPending, false},
		{"done", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := todo.ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := todo.ParseSortKey(""); err != nil || k != todo.SortPriority {
		t.Errorf("expected default priority, got %q (%v)", k, err)
	}
	if k, err := todo.ParseSortKey("TITLE"); err != nil || k != todo.SortTitle {
		t.Errorf("expected title, got %q (%v)", k, err)
	}
	if _, err := todo.ParseSortKey("due"); err == nil {
		t.Error("expected error for unknown sort key")
	}
}
