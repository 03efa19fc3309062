package model

type Priority int

const (
	PriorityLowest Priority = iota + 1
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// DefaultPriority is preselected on the create form.
const DefaultPriority = PriorityMedium

func (p Priority) IsValid() bool {
	return p >= PriorityLowest && p <= PriorityUrgent
}

func (p Priority) Label() string {
	switch p {
	case PriorityLowest:
		return "Lowest Priority"
	case PriorityLow:
		return "Low Priority"
	case PriorityMedium:
		return "Medium Priority"
	case PriorityHigh:
		return "High Priority"
	case PriorityUrgent:
		return "Urgent Priority"
	default:
		return "Unknown Priority"
	}
}

type Todo struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
	OwnerID     int64    `json:"owner_id"`
}

// TodoInput is the editable part of a todo as captured by the todo form.
type TodoInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// TodoRequest is the body of both create and update calls.
type TodoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// Request returns the full record as the update endpoint expects it.
func (t Todo) Request() TodoRequest {
	return TodoRequest{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
	}
}

// Merge shallow-merges the form fields into t, leaving id, owner and
// completion untouched.
func (t Todo) Merge(in TodoInput) Todo {
	t.Title = in.Title
	t.Description = in.Description
	t.Priority = in.Priority
	return t
}
