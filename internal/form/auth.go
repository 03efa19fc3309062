package form

import (
	"context"

	"github.com/jaekwang-park/taskhub/internal/model"
)

type Registrar interface {
	Register(ctx context.Context, req model.RegisterRequest) error
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

type RegisterForm struct {
	Email           string `form:"email" validate:"email"`
	Username        string `form:"username" validate:"min=3,max=50"`
	FirstName       string `form:"first_name" validate:"min=1,max=50"`
	LastName        string `form:"last_name" validate:"min=1,max=50"`
	Password        string `form:"password" validate:"min=6"`
	ConfirmPassword string `form:"confirm_password"`
	PhoneNumber     string `form:"phone_number" validate:"min=1"`
}

var registerMessages = messages{
	"email.email":      "Invalid email address",
	"username.min":     "Username must be at least 3 characters",
	"username.max":     "Username must be less than 50 characters",
	"first_name.min":   "First name is required",
	"first_name.max":   "First name must be less than 50 characters",
	"last_name.min":    "Last name is required",
	"last_name.max":    "Last name must be less than 50 characters",
	"password.min":     "Password must be at least 6 characters",
	"phone_number.min": "Phone number is required",
}

const msgPasswordsMismatch = "Passwords don't match"

func (f RegisterForm) Validate() FieldErrors {
	if fe := check(f, registerMessages); len(fe) > 0 {
		return fe
	}
	if f.Password != f.ConfirmPassword {
		return FieldErrors{"confirm_password": msgPasswordsMismatch}
	}
	return nil
}

func (f RegisterForm) Payload() model.RegisterRequest {
	return model.RegisterRequest{
		Username:    f.Username,
		Email:       f.Email,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Password:    f.Password,
		Role:        model.RoleUser,
		PhoneNumber: f.PhoneNumber,
	}
}

// Submit registers the account and establishes a session for it.
func (f RegisterForm) Submit(ctx context.Context, r Registrar) error {
	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	return r.Register(ctx, f.Payload())
}

type LoginForm struct {
	Username string `form:"username" validate:"min=1"`
	Password string `form:"password" validate:"min=1"`
}

var loginMessages = messages{
	"username.min": "Username is required",
	"password.min": "Password is required",
}

func (f LoginForm) Validate() FieldErrors {
	return orNil(check(f, loginMessages))
}

func (f LoginForm) Submit(ctx context.Context, a Authenticator) error {
	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	return a.Login(ctx, f.Username, f.Password)
}
