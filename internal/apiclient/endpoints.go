package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jaekwang-park/taskhub/internal/model"
)

func todoPath(id int64) string {
	return "/todos/todo/" + strconv.FormatInt(id, 10)
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if err := c.Post(ctx, "/auth/register", req, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Login exchanges credentials for a bearer token. It does not persist it.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out model.TokenResponse
	err := c.Post(ctx, "/auth/login", model.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login: response carried no access_token")
	}
	return out.AccessToken, nil
}

func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var u model.User
	if err := c.Get(ctx, "/user", &u); err != nil {
		return model.User{}, fmt.Errorf("get current user: %w", err)
	}
	return u, nil
}

// CurrentUserWithToken fetches the user for a token that is not persisted yet.
func (c *Client) CurrentUserWithToken(ctx context.Context, token string) (model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &u, &token); err != nil {
		return model.User{}, fmt.Errorf("get current user: %w", err)
	}
	return u, nil
}

func (c *Client) ChangePassword(ctx context.Context, req model.PasswordChangeRequest) error {
	if err := c.Put(ctx, "/user/password", req, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (c *Client) ChangePhone(ctx context.Context, phone string) error {
	if err := c.Put(ctx, "/user/phonenumber/"+url.PathEscape(phone), nil, nil); err != nil {
		return fmt.Errorf("change phone number: %w", err)
	}
	return nil
}

func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.Get(ctx, "/todos", &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// CreateTodo returns nothing: the endpoint does not echo the created record.
func (c *Client) CreateTodo(ctx context.Context, req model.TodoRequest) error {
	if err := c.Post(ctx, "/todos/todo", req, nil); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (c *Client) UpdateTodo(ctx context.Context, id int64, req model.TodoRequest) error {
	if err := c.Put(ctx, todoPath(id), req, nil); err != nil {
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, todoPath(id)); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func (c *Client) AdminListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.Get(ctx, "/admin/todo", &todos); err != nil {
		return nil, fmt.Errorf("list all todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func (c *Client) AdminListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.Get(ctx, "/admin/users", &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (c *Client) AdminDeleteTodo(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, "/admin/todo/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("admin delete todo %d: %w", id, err)
	}
	return nil
}

type HealthStatus struct {
	Status string `json:"status"`
}

func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var h HealthStatus
	if err := c.Get(ctx, "/healthy", &h); err != nil {
		return HealthStatus{}, fmt.Errorf("health check: %w", err)
	}
	return h, nil
}
