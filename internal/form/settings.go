package form

import (
	"context"
	"fmt"

	"github.com/jaekwang-park/taskhub/internal/model"
)

type PasswordChanger interface {
	ChangePassword(ctx context.Context, req model.PasswordChangeRequest) error
}

type PhoneChanger interface {
	ChangePhone(ctx context.Context, phone string) error
}

type UserRefresher interface {
	RefreshUser(ctx context.Context) error
}

type PasswordForm struct {
	CurrentPassword string `form:"current_password" validate:"min=1"`
	NewPassword     string `form:"new_password" validate:"min=6"`
	ConfirmPassword string `form:"confirm_password"`
}

var passwordMessages = messages{
	"current_password.min": "Current password is required",
	"new_password.min":     "New password must be at least 6 characters",
}

func (f PasswordForm) Validate() FieldErrors {
	if fe := check(f, passwordMessages); len(fe) > 0 {
		return fe
	}
	if f.NewPassword != f.ConfirmPassword {
		return FieldErrors{"confirm_password": msgPasswordsMismatch}
	}
	return nil
}

func (f PasswordForm) Payload() model.PasswordChangeRequest {
	return model.PasswordChangeRequest{
		CurrentPassword: f.CurrentPassword,
		NewPassword:     f.NewPassword,
	}
}

func (f PasswordForm) Submit(ctx context.Context, c PasswordChanger) error {
	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	return c.ChangePassword(ctx, f.Payload())
}

type PhoneForm struct {
	PhoneNumber string `form:"phone_number" validate:"min=1"`
}

var phoneMessages = messages{
	"phone_number.min": "Phone number is required",
}

func (f PhoneForm) Validate() FieldErrors {
	return orNil(check(f, phoneMessages))
}

// Submit changes the number and then reloads the session's user so it shows
// the server's record.
func (f PhoneForm) Submit(ctx context.Context, c PhoneChanger, r UserRefresher) error {
	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	if err := c.ChangePhone(ctx, f.PhoneNumber); err != nil {
		return err
	}
	if err := r.RefreshUser(ctx); err != nil {
		return fmt.Errorf("phone number updated but profile refresh failed: %w", err)
	}
	return nil
}
