package apitest

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jaekwang-park/taskhub/internal/model"
)

func (b *Backend) routes(e *echo.Echo) {
	e.GET("/healthy", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "Healthy"})
	})

	e.POST("/auth/register", b.handleRegister)
	e.POST("/auth/login", b.handleLogin)

	e.GET("/user", b.handleGetUser, b.requireUser)
	e.PUT("/user/password", b.handleChangePassword, b.requireUser)
	e.PUT("/user/phonenumber/:phone", b.handleChangePhone, b.requireUser)

	e.GET("/todos", b.handleListTodos, b.requireUser)
	e.POST("/todos/todo", b.handleCreateTodo, b.requireUser)
	e.PUT("/todos/todo/:id", b.handleUpdateTodo, b.requireUser)
	e.DELETE("/todos/todo/:id", b.handleDeleteTodo, b.requireUser)

	e.GET("/admin/todo", b.handleAdminListTodos, b.requireAdmin)
	e.GET("/admin/users", b.handleAdminListUsers, b.requireAdmin)
	e.DELETE("/admin/todo/:id", b.handleAdminDeleteTodo, b.requireAdmin)
}

func (b *Backend) handleRegister(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return writeValidation(c, "body", "invalid request body")
	}
	if req.Username == "" {
		return writeValidation(c, "username", "Field required")
	}
	if len(req.Password) < 6 {
		return writeValidation(c, "password", "String should have at least 6 characters")
	}
	if !req.Role.IsValid() {
		return writeValidation(c, "role", "Input should be 'user' or 'admin'")
	}

	b.mu.Lock()
	for _, a := range b.users {
		if a.user.Username == req.Username || a.user.Email == req.Email {
			b.mu.Unlock()
			return writeError(c, errConflict)
		}
	}
	b.mu.Unlock()

	_, err := b.AddUser(model.User{
		Email:       req.Email,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		IsActive:    true,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	}, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (b *Backend) handleLogin(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeValidation(c, "body", "invalid request body")
	}

	u, err := b.authenticate(req.Username, req.Password)
	if err != nil {
		return writeDetail(c, http.StatusUnauthorized, "Could not validate user.")
	}

	token, err := b.IssueToken(u, b.tokenTTL)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (b *Backend) handleGetUser(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (b *Backend) handleChangePassword(c echo.Context) error {
	var req model.PasswordChangeRequest
	if err := c.Bind(&req); err != nil {
		return writeValidation(c, "body", "invalid request body")
	}
	if len(req.NewPassword) < 6 {
		return writeValidation(c, "new_password", "String should have at least 6 characters")
	}

	if err := b.changePassword(currentUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) handleChangePhone(c echo.Context) error {
	phone, err := url.PathUnescape(c.Param("phone"))
	if err != nil || strings.TrimSpace(phone) == "" {
		return writeValidation(c, "phone_number", "Field required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.users[currentUser(c).ID]
	if !ok {
		return writeError(c, errNotFound)
	}
	a.user.PhoneNumber = phone
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) handleListTodos(c echo.Context) error {
	owner := currentUser(c).ID

	b.mu.Lock()
	todos := b.sortedTodos(func(t model.Todo) bool { return t.OwnerID == owner })
	b.mu.Unlock()

	return c.JSON(http.StatusOK, todos)
}

// bindTodo decodes and checks a todo body. When ok is false the rejection
// has already been written and err is what the handler should return.
func bindTodo(c echo.Context) (req model.TodoRequest, ok bool, err error) {
	if err := c.Bind(&req); err != nil {
		return req, false, writeValidation(c, "body", "invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return req, false, writeValidation(c, "title", "String should have at least 1 character")
	}
	if !req.Priority.IsValid() {
		return req, false, writeValidation(c, "priority", "Input should be greater than 0 and less than 6")
	}
	return req, true, nil
}

func (b *Backend) handleCreateTodo(c echo.Context) error {
	req, ok, err := bindTodo(c)
	if !ok {
		return err
	}

	b.AddTodo(model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
		OwnerID:     currentUser(c).ID,
	})
	return c.NoContent(http.StatusCreated)
}

func (b *Backend) handleUpdateTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return writeError(c, err)
	}
	req, ok, err := bindTodo(c)
	if !ok {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	t, found := b.todos[id]
	if !found || t.OwnerID != currentUser(c).ID {
		return writeError(c, errNotFound)
	}
	t.Title = req.Title
	t.Description = req.Description
	t.Priority = req.Priority
	t.Completed = req.Completed
	b.todos[id] = t
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) handleDeleteTodo(c echo.Context) error {
	return b.deleteTodo(c, false)
}

func (b *Backend) handleAdminDeleteTodo(c echo.Context) error {
	return b.deleteTodo(c, true)
}

func (b *Backend) deleteTodo(c echo.Context, anyOwner bool) error {
	id, err := todoID(c)
	if err != nil {
		return writeError(c, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.todos[id]
	if !ok || (!anyOwner && t.OwnerID != currentUser(c).ID) {
		return writeError(c, errNotFound)
	}
	delete(b.todos, id)
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) handleAdminListTodos(c echo.Context) error {
	b.mu.Lock()
	todos := b.sortedTodos(func(model.Todo) bool { return true })
	b.mu.Unlock()
	return c.JSON(http.StatusOK, todos)
}

func (b *Backend) handleAdminListUsers(c echo.Context) error {
	b.mu.Lock()
	users := make([]model.User, 0, len(b.users))
	for _, a := range b.users {
		if a.user.IsActive {
			users = append(users, a.user)
		}
	}
	b.mu.Unlock()

	sortUsers(users)
	return c.JSON(http.StatusOK, users)
}

func todoID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}
