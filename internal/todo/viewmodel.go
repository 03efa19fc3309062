// Package todo holds a page's todo collection and derives filtered, sorted
// views from it.
//
// Mutations are two-phase: the request is sent, and local state changes only
// after the server confirms. Nothing is retried.
package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jaekwang-park/taskhub/internal/model"
)

var ErrTodoNotFound = errors.New("todo not found")

// API is the subset of the API client the view-model needs.
type API interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	AdminListTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, req model.TodoRequest) error
	UpdateTodo(ctx context.Context, id int64, req model.TodoRequest) error
	DeleteTodo(ctx context.Context, id int64) error
	AdminDeleteTodo(ctx context.Context, id int64) error
}

// Scope selects which server-scoped collection a page shows.
type Scope int

const (
	// ScopeOwn is the caller's own todos (dashboard).
	ScopeOwn Scope = iota
	// ScopeAll is every user's todos (admin panel).
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeOwn:
		return "own"
	case ScopeAll:
		return "all"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

type ViewModel struct {
	api    API
	scope  Scope
	logger *slog.Logger

	mu    sync.RWMutex
	todos []model.Todo
}

func NewViewModel(api API, scope Scope, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		api:    api,
		scope:  scope,
		logger: logger.With("scope", scope.String()),
	}
}

func (vm *ViewModel) Scope() Scope {
	return vm.scope
}

// Load replaces the collection with the server's current set.
func (vm *ViewModel) Load(ctx context.Context) error {
	var (
		todos []model.Todo
		err   error
	)
	switch vm.scope {
	case ScopeAll:
		todos, err = vm.api.AdminListTodos(ctx)
	case ScopeOwn:
		todos, err = vm.api.ListTodos(ctx)
	default:
		return fmt.Errorf("unknown scope %s", vm.scope)
	}
	if err != nil {
		return fmt.Errorf("failed to load todos: %w", err)
	}

	vm.mu.Lock()
	vm.todos = slices.Clone(todos)
	vm.mu.Unlock()

	vm.logger.DebugContext(ctx, "todos loaded", "count", len(todos))
	return nil
}

// Todos returns a copy of the collection in server order.
func (vm *ViewModel) Todos() []model.Todo {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return slices.Clone(vm.todos)
}

func (vm *ViewModel) View(c Criteria) []model.Todo {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return Derive(vm.todos, c)
}

func (vm *ViewModel) Stats() Stats {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return Summarize(vm.todos)
}

func (vm *ViewModel) Owners() []int64 {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return Owners(vm.todos)
}

func (vm *ViewModel) Get(id int64) (model.Todo, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	i := vm.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return vm.todos[i], true
}

// ToggleComplete sends the full record with completed inverted. The local
// flag is set to the value the server accepted.
func (vm *ViewModel) ToggleComplete(ctx context.Context, id int64) (model.Todo, error) {
	current, ok := vm.Get(id)
	if !ok {
		return model.Todo{}, fmt.Errorf("toggle %d: %w", id, ErrTodoNotFound)
	}

	req := current.Request()
	req.Completed = !current.Completed
	if err := vm.api.UpdateTodo(ctx, id, req); err != nil {
		return model.Todo{}, fmt.Errorf("failed to toggle todo: %w", err)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	i := vm.index(id)
	if i < 0 {
		// Removed while the request was in flight.
		return model.Todo{}, fmt.Errorf("toggle %d: %w", id, ErrTodoNotFound)
	}
	vm.todos[i].Completed = req.Completed
	return vm.todos[i], nil
}

func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	if _, ok := vm.Get(id); !ok {
		return fmt.Errorf("delete %d: %w", id, ErrTodoNotFound)
	}

	var err error
	switch vm.scope {
	case ScopeAll:
		err = vm.api.AdminDeleteTodo(ctx, id)
	default:
		err = vm.api.DeleteTodo(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	vm.mu.Lock()
	vm.todos = slices.DeleteFunc(vm.todos, func(t model.Todo) bool { return t.ID == id })
	vm.mu.Unlock()

	vm.logger.InfoContext(ctx, "todo deleted", "todo_id", id)
	return nil
}

// Create submits a new pending todo and re-fetches the collection, since the
// server does not return the created record.
func (vm *ViewModel) Create(ctx context.Context, in model.TodoInput) error {
	req := model.TodoRequest{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Completed:   false,
	}
	if err := vm.api.CreateTodo(ctx, req); err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	vm.logger.InfoContext(ctx, "todo created", "title", in.Title)

	if err := vm.Load(ctx); err != nil {
		return fmt.Errorf("todo created but list refresh failed: %w", err)
	}
	return nil
}

// Update submits the merged record, keeping the current completed flag, and
// patches the local item on success.
func (vm *ViewModel) Update(ctx context.Context, id int64, in model.TodoInput) (model.Todo, error) {
	current, ok := vm.Get(id)
	if !ok {
		return model.Todo{}, fmt.Errorf("update %d: %w", id, ErrTodoNotFound)
	}

	if err := vm.api.UpdateTodo(ctx, id, current.Merge(in).Request()); err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	i := vm.index(id)
	if i < 0 {
		return model.Todo{}, fmt.Errorf("update %d: %w", id, ErrTodoNotFound)
	}
	vm.todos[i] = vm.todos[i].Merge(in)
	return vm.todos[i], nil
}

// index must be called with mu held.
func (vm *ViewModel) index(id int64) int {
	return slices.IndexFunc(vm.todos, func(t model.Todo) bool { return t.ID == id })
}
