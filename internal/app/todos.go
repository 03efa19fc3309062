package app

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/jaekwang-park/taskhub/internal/form"
	"github.com/jaekwang-park/taskhub/internal/model"
	"github.com/jaekwang-park/taskhub/internal/todo"
)

type listView struct {
	Stats todo.Stats `json:"stats"`
	Users int        `json:"users,omitempty"`
	Todos []todoRow  `json:"todos"`
}

// criteriaFlags binds the filter bar to fs.
type criteriaFlags struct {
	query  string
	status string
	sort   string
	owner  int64
}

func (c *criteriaFlags) define(fs *flag.FlagSet, withOwner bool) {
	fs.StringVar(&c.query, "q", "", "search titles and descriptions")
	fs.StringVar(&c.status, "status", "all", "all, completed or pending")
	fs.StringVar(&c.sort, "sort", "priority", "priority or title")
	if withOwner {
		fs.Int64Var(&c.owner, "owner", todo.OwnerAll, "only show todos of this user id")
	}
}

func (c *criteriaFlags) criteria() (todo.Criteria, error) {
	status, err := todo.ParseStatus(c.status)
	if err != nil {
		return todo.Criteria{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	key, err := todo.ParseSortKey(c.sort)
	if err != nil {
		return todo.Criteria{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return todo.Criteria{Query: c.query, Status: status, Owner: c.owner, Sort: key}, nil
}

// todoFlags binds the todo form to fs, prefilled from f.
func todoFlags(fs *flag.FlagSet, f *form.TodoForm, priority *int) {
	fs.StringVar(&f.Title, "title", f.Title, "todo title")
	fs.StringVar(&f.Description, "description", f.Description, "todo description")
	fs.IntVar(priority, "priority", int(f.Priority), "1 (lowest) to 5 (urgent)")
}

func (a *App) todosPage(ctx context.Context, r *renderer, args []string) error {
	sub, rest := subcommand(args, "list")
	vm := todo.NewViewModel(a.api, todo.ScopeOwn, a.logger)

	switch sub {
	case "list":
		var cf criteriaFlags
		rest, err := parseFlags("todos list", rest, a.errOut, func(fs *flag.FlagSet) { cf.define(fs, false) })
		if err != nil {
			return err
		}
		if err := noArgs("todos list", rest); err != nil {
			return err
		}
		c, err := cf.criteria()
		if err != nil {
			return err
		}
		if err := vm.Load(ctx); err != nil {
			return err
		}
		return a.renderList(r, vm, c, nil, 0)

	case "add":
		f := form.NewTodoForm()
		priority := int(f.Priority)
		rest, err := parseFlags("todos add", rest, a.errOut, func(fs *flag.FlagSet) { todoFlags(fs, &f, &priority) })
		if err != nil {
			return err
		}
		if err := noArgs("todos add", rest); err != nil {
			return err
		}
		f.Priority = model.Priority(priority)
		if err := f.SubmitCreate(ctx, vm); err != nil {
			return err
		}
		r.notice("Todo created")
		return a.renderList(r, vm, todo.Criteria{}, nil, 0)

	case "edit":
		id, rest, err := leadingID(rest)
		if err != nil {
			return err
		}
		if err := vm.Load(ctx); err != nil {
			return err
		}
		current, ok := vm.Get(id)
		if !ok {
			return fmt.Errorf("%w: %d", todo.ErrTodoNotFound, id)
		}
		f := form.EditTodoForm(current)
		priority := int(f.Priority)
		rest, err = parseFlags("todos edit", rest, a.errOut, func(fs *flag.FlagSet) { todoFlags(fs, &f, &priority) })
		if err != nil {
			return err
		}
		if err := noArgs("todos edit", rest); err != nil {
			return err
		}
		f.Priority = model.Priority(priority)
		updated, err := f.SubmitUpdate(ctx, vm, id)
		if err != nil {
			return err
		}
		r.notice("Todo updated")
		return a.renderTodo(r, updated)

	case "toggle":
		id, rest, err := leadingID(rest)
		if err != nil {
			return err
		}
		if err := noArgs("todos toggle", rest); err != nil {
			return err
		}
		if err := vm.Load(ctx); err != nil {
			return err
		}
		t, err := vm.ToggleComplete(ctx, id)
		if err != nil {
			return err
		}
		if t.Completed {
			r.notice("Todo marked as completed")
		} else {
			r.notice("Todo marked as pending")
		}
		return a.renderTodo(r, t)

	case "delete":
		id, rest, err := leadingID(rest)
		if err != nil {
			return err
		}
		if err := noArgs("todos delete", rest); err != nil {
			return err
		}
		if err := vm.Load(ctx); err != nil {
			return err
		}
		if err := vm.Delete(ctx, id); err != nil {
			return err
		}
		r.notice("Todo deleted")
		return nil

	default:
		return fmt.Errorf("%w: unknown todos command %q", ErrUsage, sub)
	}
}

func (a *App) renderList(r *renderer, vm *todo.ViewModel, c todo.Criteria, owner func(int64) string, users int) error {
	view := listView{
		Stats: vm.Stats(),
		Users: users,
		Todos: rows(vm.View(c), owner),
	}
	return r.emit(view, func(w io.Writer) {
		writeStats(w, view.Stats)
		if users > 0 {
			fmt.Fprintf(w, "Users: %d\n\n", users)
		}
		writeTodoTable(w, view.Todos, owner != nil)
	})
}

func (a *App) renderTodo(r *renderer, t model.Todo) error {
	row := rows([]model.Todo{t}, nil)[0]
	return r.emit(row, func(w io.Writer) {
		writeTodoTable(w, []todoRow{row}, false)
	})
}
