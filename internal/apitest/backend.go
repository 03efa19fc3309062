// Package apitest serves the task REST contract from memory so the client
// packages can be exercised end to end without a real backend.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaekwang-park/taskhub/internal/model"
)

type account struct {
	user model.User
	hash []byte
}

type failure struct {
	status int
	detail string
}

// Backend holds users and todos and answers the REST contract for them.
type Backend struct {
	mu         sync.Mutex
	users      map[int64]*account
	todos      map[int64]model.Todo
	nextUserID int64
	nextTodoID int64
	calls      []string
	failures   map[string]failure

	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time

	echo *echo.Echo
}

type Option func(*Backend)

func WithSecret(secret string) Option {
	return func(b *Backend) { b.secret = []byte(secret) }
}

func WithTokenTTL(d time.Duration) Option {
	return func(b *Backend) { b.tokenTTL = d }
}

func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

func New(opts ...Option) *Backend {
	b := &Backend{
		users:      make(map[int64]*account),
		todos:      make(map[int64]model.Todo),
		failures:   make(map[string]failure),
		secret:     []byte("apitest-secret"),
		tokenTTL:   20 * time.Minute,
		bcryptCost: bcrypt.MinCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = b.handleHTTPError
	e.Use(middleware.Recover())
	e.Use(b.record)
	b.routes(e)
	b.echo = e
	return b
}

func (b *Backend) Handler() http.Handler {
	return b.echo
}

// Start serves the backend on a loopback listener closed at test cleanup.
func (b *Backend) Start(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.echo)
	t.Cleanup(srv.Close)
	return srv
}

// AddUser stores u with the given password and returns it with its id.
func (b *Backend) AddUser(u model.User, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextUserID++
	u.ID = b.nextUserID
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	b.users[u.ID] = &account{user: u, hash: hash}
	return u, nil
}

// AddTodo stores t under a fresh id and returns it.
func (b *Backend) AddTodo(t model.Todo) model.Todo {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextTodoID++
	t.ID = b.nextTodoID
	b.todos[t.ID] = t
	return t
}

// Todos returns every stored todo ordered by id.
func (b *Backend) Todos() []model.Todo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedTodos(func(model.Todo) bool { return true })
}

// User returns the stored record for id.
func (b *Backend) User(id int64) (model.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.users[id]
	if !ok {
		return model.User{}, false
	}
	return a.user, true
}

// Calls lists every request served so far as "METHOD /path".
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// CallsTo lists the recorded calls whose path starts with prefix.
func (b *Backend) CallsTo(prefix string) []string {
	var out []string
	for _, c := range b.Calls() {
		_, path, _ := strings.Cut(c, " ")
		if strings.HasPrefix(path, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// FailNext makes the next request for method and path answer with status
// and detail instead of being served.
func (b *Backend) FailNext(method, path string, status int, detail string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, detail: detail}
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		key := req.Method + " " + req.URL.Path

		b.mu.Lock()
		b.calls = append(b.calls, key)
		f, failing := b.failures[key]
		delete(b.failures, key)
		b.mu.Unlock()

		if failing {
			return writeDetail(c, f.status, f.detail)
		}
		return next(c)
	}
}

// sortedTodos must be called with b.mu held.
func (b *Backend) sortedTodos(keep func(model.Todo) bool) []model.Todo {
	out := make([]model.Todo, 0, len(b.todos))
	for _, t := range b.todos {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortUsers(users []model.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}
