package form_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jaekwang-park/taskhub/internal/form"
	"github.com/jaekwang-park/taskhub/internal/model"
)

var ctx = context.Background()

func validRegister() form.RegisterForm {
	return form.RegisterForm{
		Email:           "alice@example.com",
		Username:        "alice",
		FirstName:       "Alice",
		LastName:        "Liddell",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		PhoneNumber:     "555-0100",
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *form.RegisterForm)
		want   form.FieldErrors
	}{
		{"valid", func(f *form.RegisterForm) {}, nil},
		{"bad email", func(f *form.RegisterForm) { f.Email = "not-an-email" }, form.FieldErrors{"email": "Invalid email address"}},
		{"empty email", func(f *form.RegisterForm) { f.Email = "" }, form.FieldErrors{"email": "Invalid email address"}},
		{"short username", func(f *form.RegisterForm) { f.Username = "al" }, form.FieldErrors{"username": "Username must be at least 3 characters"}},
		{"long username", func(f *form.RegisterForm) { f.Username = strings.Repeat("a", 51) }, form.FieldErrors{"username": "Username must be less than 50 characters"}},
		{"missing first name", func(f *form.RegisterForm) { f.FirstName = "" }, form.FieldErrors{"first_name": "First name is required"}},
		{"long last name", func(f *form.RegisterForm) { f.LastName = strings.Repeat("b", 51) }, form.FieldErrors{"last_name": "Last name must be less than 50 characters"}},
		{"short password", func(f *form.RegisterForm) { f.Password, f.ConfirmPassword = "12345", "12345" }, form.FieldErrors{"password": "Password must be at least 6 characters"}},
		{"missing phone", func(f *form.RegisterForm) { f.PhoneNumber = "" }, form.FieldErrors{"phone_number": "Phone number is required"}},
		{"mismatch", func(f *form.RegisterForm) { f.ConfirmPassword = "secret2" }, form.FieldErrors{"confirm_password": "Passwords don't match"}},
		{
			name: "mismatch hidden behind field errors",
			mutate: func(f *form.RegisterForm) {
				f.Username = "x"
				f.ConfirmPassword = "other"
			},
			want: form.FieldErrors{"username": "Username must be at least 3 characters"},
		},
		{
			name: "several fields at once",
			mutate: func(f *form.RegisterForm) {
				f.Email = "x"
				f.PhoneNumber = ""
			},
			want: form.FieldErrors{"email": "Invalid email address", "phone_number": "Phone number is required"},
		},
		{"boundary username 50", func(f *form.RegisterForm) { f.Username = strings.Repeat("a", 50) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validRegister()
			tt.mutate(&f)

			got := f.Validate()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for field, msg := range tt.want {
				if got.Field(field) != msg {
					t.Errorf("field %s: got %q, want %q", field, got.Field(field), msg)
				}
			}
		})
	}
}

type registrarFunc func(ctx context.Context, req model.RegisterRequest) error

func (f registrarFunc) Register(ctx context.Context, req model.RegisterRequest) error {
	return f(ctx, req)
}

func TestRegisterForm_Submit(t *testing.T) {
	var got model.RegisterRequest
	calls := 0
	r := registrarFunc(func(ctx context.Context, req model.RegisterRequest) error {
		calls++
		got = req
		return nil
	})

	if err := validRegister().Submit(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one register call, got %d", calls)
	}
	if got.Role != model.RoleUser || got.Username != "alice" || got.PhoneNumber != "555-0100" {
		t.Errorf("unexpected payload %+v", got)
	}

	bad := validRegister()
	bad.Email = "nope"
	err := bad.Submit(ctx, r)
	fe, ok := form.AsFieldErrors(err)
	if !ok || fe.Field("email") == "" {
		t.Fatalf("expected field errors, got %v", err)
	}
	if calls != 1 {
		t.Error("invalid form must not reach the registrar")
	}
}

type authFunc func(ctx context.Context, u, p string) error

func (f authFunc) Login(ctx context.Context, u, p string) error { return f(ctx, u, p) }

func TestLoginForm(t *testing.T) {
	fe := form.LoginForm{}.Validate()
	if fe.Field("username") != "Username is required" || fe.Field("password") != "Password is required" {
		t.Errorf("unexpected errors %v", fe)
	}

	var user, pass string
	err := form.LoginForm{Username: "bob", Password: "pw"}.Submit(ctx, authFunc(func(ctx context.Context, u, p string) error {
		user, pass = u, p
		return nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != "bob" || pass != "pw" {
		t.Errorf("credentials not passed through: %q/%q", user, pass)
	}
}

func TestTodoForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		form form.TodoForm
		want form.FieldErrors
	}{
		{"valid", form.TodoForm{Title: "t", Description: "d", Priority: 3}, nil},
		{"empty title", form.TodoForm{Title: "", Description: "d", Priority: 3}, form.FieldErrors{"title": "Title is required"}},
		{"long title", form.TodoForm{Title: strings.Repeat("x", 101), Description: "d", Priority: 3}, form.FieldErrors{"title": "Title must be less than 100 characters"}},
		{"title 100 runes", form.TodoForm{Title: strings.Repeat("é", 100), Description: "d", Priority: 3}, nil},
		{"empty description", form.TodoForm{Title: "t", Description: "", Priority: 3}, form.FieldErrors{"description": "Description is required"}},
		{"long description", form.TodoForm{Title: "t", Description: strings.Repeat("x", 501), Priority: 3}, form.FieldErrors{"description": "Description must be less than 500 characters"}},
		{"priority zero", form.TodoForm{Title: "t", Description: "d", Priority: 0}, form.FieldErrors{"priority": "Priority must be between 1 and 5"}},
		{"priority six", form.TodoForm{Title: "t", Description: "d", Priority: 6}, form.FieldErrors{"priority": "Priority must be between 1 and 5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.form.Validate()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for field, msg := range tt.want {
				if got.Field(field) != msg {
					t.Errorf("field %s: got %q, want %q", field, got.Field(field), msg)
				}
			}
		})
	}
}

func TestTodoForm_Defaults(t *testing.T) {
	if f := form.NewTodoForm(); f.Priority != model.PriorityMedium {
		t.Errorf("expected default priority 3, got %d", f.Priority)
	}
	td := model.Todo{ID: 4, Title: "a", Description: "b", Priority: 5, Completed: true}
	f := form.EditTodoForm(td)
	if f.Title != "a" || f.Description != "b" || f.Priority != 5 {
		t.Errorf("unexpected edit form %+v", f)
	}
}

type fakeSaver struct {
	created []model.TodoInput
	updated map[int64]model.TodoInput
}

func (s *fakeSaver) Create(ctx context.Context, in model.TodoInput) error {
	s.created = append(s.created, in)
	return nil
}

func (s *fakeSaver) Update(ctx context.Context, id int64, in model.TodoInput) (model.Todo, error) {
	if s.updated == nil {
		s.updated = map[int64]model.TodoInput{}
	}
	s.updated[id] = in
	return model.Todo{ID: id}.Merge(in), nil
}

func TestTodoForm_Submit(t *testing.T) {
	s := &fakeSaver{}
	f := form.TodoForm{Title: "t", Description: "d", Priority: 2}

	if err := f.SubmitCreate(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.created) != 1 || s.created[0].Priority != 2 {
		t.Errorf("unexpected creates %+v", s.created)
	}

	got, err := f.SubmitUpdate(ctx, s, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 9 || s.updated[9].Title != "t" {
		t.Errorf("unexpected update result %+v", got)
	}

	if err := (form.TodoForm{}).SubmitCreate(ctx, s); err == nil {
		t.Error("expected validation error")
	}
	if len(s.created) != 1 {
		t.Error("invalid form reached the saver")
	}
}

func TestPasswordForm(t *testing.T) {
	tests := []struct {
		name string
		form form.PasswordForm
		want form.FieldErrors
	}{
		{"valid", form.PasswordForm{CurrentPassword: "old", NewPassword: "newpass", ConfirmPassword: "newpass"}, nil},
		{"missing current", form.PasswordForm{NewPassword: "newpass", ConfirmPassword: "newpass"}, form.FieldErrors{"current_password": "Current password is required"}},
		{"short new", form.PasswordForm{CurrentPassword: "old", NewPassword: "short", ConfirmPassword: "short"}, form.FieldErrors{"new_password": "New password must be at least 6 characters"}},
		{"mismatch", form.PasswordForm{CurrentPassword: "old", NewPassword: "newpass", ConfirmPassword: "newpasz"}, form.FieldErrors{"confirm_password": "Passwords don't match"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.form.Validate()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for field, msg := range tt.want {
				if got.Field(field) != msg {
					t.Errorf("field %s: got %q, want %q", field, got.Field(field), msg)
				}
			}
		})
	}
}

type settingsFake struct {
	pw        []model.PasswordChangeRequest
	phones    []string
	refreshes int
	phoneErr  error
}

func (s *settingsFake) ChangePassword(ctx context.Context, req model.PasswordChangeRequest) error {
	s.pw = append(s.pw, req)
	return nil
}

func (s *settingsFake) ChangePhone(ctx context.Context, phone string) error {
	s.phones = append(s.phones, phone)
	return s.phoneErr
}

func (s *settingsFake) RefreshUser(ctx context.Context) error {
	s.refreshes++
	return nil
}

func TestPasswordForm_Submit(t *testing.T) {
	s := &settingsFake{}
	f := form.PasswordForm{CurrentPassword: "old", NewPassword: "newpass", ConfirmPassword: "newpass"}
	if err := f.Submit(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.pw) != 1 || s.pw[0].CurrentPassword != "old" || s.pw[0].NewPassword != "newpass" {
		t.Errorf("unexpected payload %+v", s.pw)
	}
}

func TestPhoneForm_Submit(t *testing.T) {
	s := &settingsFake{}

	if err := (form.PhoneForm{}).Submit(ctx, s, s); err == nil {
		t.Fatal("expected validation error for empty phone")
	}
	if len(s.phones) != 0 {
		t.Error("empty phone reached the API")
	}

	if err := (form.PhoneForm{PhoneNumber: "555"}).Submit(ctx, s, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.refreshes != 1 {
		t.Errorf("expected a user refresh after phone change, got %d", s.refreshes)
	}

	s.phoneErr = errors.New("rejected")
	if err := (form.PhoneForm{PhoneNumber: "777"}).Submit(ctx, s, s); err == nil {
		t.Fatal("expected error")
	}
	if s.refreshes != 1 {
		t.Error("refresh must not run after a failed change")
	}
}

func TestFieldErrors_Error(t *testing.T) {
	fe := form.FieldErrors{"title": "Title is required", "description": "Description is required"}
	want := "invalid input: description: Description is required; title: Title is required"
	if fe.Error() != want {
		t.Errorf("got %q, want %q", fe.Error(), want)
	}
}
