package form

import (
	"context"

	"github.com/jaekwang-park/taskhub/internal/model"
)

type TodoSaver interface {
	Create(ctx context.Context, in model.TodoInput) error
	Update(ctx context.Context, id int64, in model.TodoInput) (model.Todo, error)
}

type TodoForm struct {
	Title       string         `form:"title" validate:"min=1,max=100"`
	Description string         `form:"description" validate:"min=1,max=500"`
	Priority    model.Priority `form:"priority" validate:"min=1,max=5"`
}

var todoMessages = messages{
	"title.min":       "Title is required",
	"title.max":       "Title must be less than 100 characters",
	"description.min": "Description is required",
	"description.max": "Description must be less than 500 characters",
	"priority.min":    "Priority must be between 1 and 5",
	"priority.max":    "Priority must be between 1 and 5",
}

// NewTodoForm returns the form prefilled for creating a todo.
func NewTodoForm() TodoForm {
	return TodoForm{Priority: model.DefaultPriority}
}

// EditTodoForm returns the form prefilled from an existing todo.
func EditTodoForm(t model.Todo) TodoForm {
	return TodoForm{Title: t.Title, Description: t.Description, Priority: t.Priority}
}

func (f TodoForm) Validate() FieldErrors {
	return orNil(check(f, todoMessages))
}

func (f TodoForm) Payload() model.TodoInput {
	return model.TodoInput{Title: f.Title, Description: f.Description, Priority: f.Priority}
}

func (f TodoForm) SubmitCreate(ctx context.Context, s TodoSaver) error {
	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	return s.Create(ctx, f.Payload())
}

func (f TodoForm) SubmitUpdate(ctx context.Context, s TodoSaver, id int64) (model.Todo, error) {
	if fe := f.Validate(); len(fe) > 0 {
		return model.Todo{}, fe
	}
	return s.Update(ctx, id, f.Payload())
}
