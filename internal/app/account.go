package app

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/jaekwang-park/taskhub/internal/form"
)

func (a *App) loginPage(ctx context.Context, r *renderer, args []string) error {
	var f form.LoginForm
	rest, err := parseFlags("login", args, a.errOut, func(fs *flag.FlagSet) {
		fs.StringVar(&f.Username, "username", "", "account username")
		fs.StringVar(&f.Password, "password", "", "account password")
	})
	if err != nil {
		return err
	}
	if err := noArgs("login", rest); err != nil {
		return err
	}
	if err := a.prompter().fill(ask("Username", &f.Username), ask("Password", &f.Password)); err != nil {
		return err
	}

	if err := f.Submit(ctx, a.session); err != nil {
		return err
	}
	u, _ := a.session.User()
	r.notice("Welcome back, %s", u.FirstName)
	return nil
}

func (a *App) registerPage(ctx context.Context, r *renderer, args []string) error {
	var f form.RegisterForm
	rest, err := parseFlags("register", args, a.errOut, func(fs *flag.FlagSet) {
		fs.StringVar(&f.Email, "email", "", "email address")
		fs.StringVar(&f.Username, "username", "", "3 to 50 characters")
		fs.StringVar(&f.FirstName, "first-name", "", "first name")
		fs.StringVar(&f.LastName, "last-name", "", "last name")
		fs.StringVar(&f.Password, "password", "", "at least 6 characters")
		fs.StringVar(&f.ConfirmPassword, "confirm-password", "", "repeat the password")
		fs.StringVar(&f.PhoneNumber, "phone", "", "phone number")
	})
	if err != nil {
		return err
	}
	if err := noArgs("register", rest); err != nil {
		return err
	}
	err = a.prompter().fill(
		ask("Email", &f.Email),
		ask("Username", &f.Username),
		ask("First name", &f.FirstName),
		ask("Last name", &f.LastName),
		ask("Password", &f.Password),
		ask("Confirm password", &f.ConfirmPassword),
		ask("Phone number", &f.PhoneNumber),
	)
	if err != nil {
		return err
	}

	if err := f.Submit(ctx, a.session); err != nil {
		return err
	}
	r.notice("Account created. You are now signed in.")
	return nil
}

func (a *App) logoutPage(ctx context.Context, r *renderer, args []string) error {
	if err := noArgs("logout", args); err != nil {
		return err
	}
	a.session.Logout(ctx)
	r.notice("Signed out")
	return nil
}

func (a *App) profilePage(ctx context.Context, r *renderer, args []string) error {
	if err := noArgs("profile", args); err != nil {
		return err
	}
	u, ok := a.session.User()
	if !ok {
		return ErrLoginRequired
	}
	return r.emit(u, func(w io.Writer) {
		fmt.Fprintf(w, "Name:\t%s\n", u.FullName())
		fmt.Fprintf(w, "Username:\t%s\n", u.Username)
		fmt.Fprintf(w, "Email:\t%s\n", u.Email)
		fmt.Fprintf(w, "Phone:\t%s\n", u.PhoneNumber)
		fmt.Fprintf(w, "Role:\t%s\n", u.Role.Label())
		fmt.Fprintf(w, "Active:\t%t\n", u.IsActive)
	})
}

func (a *App) settingsPage(ctx context.Context, r *renderer, args []string) error {
	sub, rest := subcommand(args, "")
	switch sub {
	case "password":
		var f form.PasswordForm
		rest, err := parseFlags("settings password", rest, a.errOut, func(fs *flag.FlagSet) {
			fs.StringVar(&f.CurrentPassword, "current", "", "current password")
			fs.StringVar(&f.NewPassword, "new", "", "new password, at least 6 characters")
			fs.StringVar(&f.ConfirmPassword, "confirm", "", "repeat the new password")
		})
		if err != nil {
			return err
		}
		if err := noArgs("settings password", rest); err != nil {
			return err
		}
		err = a.prompter().fill(
			ask("Current password", &f.CurrentPassword),
			ask("New password", &f.NewPassword),
			ask("Confirm new password", &f.ConfirmPassword),
		)
		if err != nil {
			return err
		}
		if err := f.Submit(ctx, a.api); err != nil {
			return err
		}
		r.notice("Password updated")
		return nil

	case "phone":
		var f form.PhoneForm
		rest, err := parseFlags("settings phone", rest, a.errOut, func(fs *flag.FlagSet) {
			fs.StringVar(&f.PhoneNumber, "phone", "", "new phone number")
		})
		if err != nil {
			return err
		}
		if err := noArgs("settings phone", rest); err != nil {
			return err
		}
		if err := a.prompter().fill(ask("Phone number", &f.PhoneNumber)); err != nil {
			return err
		}
		if err := f.Submit(ctx, a.api, a.session); err != nil {
			return err
		}
		r.notice("Phone number updated")
		return a.profilePage(ctx, r, nil)

	case "":
		return a.profilePage(ctx, r, nil)

	default:
		return fmt.Errorf("%w: unknown settings command %q", ErrUsage, sub)
	}
}

func (a *App) healthPage(ctx context.Context, r *renderer, args []string) error {
	if err := noArgs("health", args); err != nil {
		return err
	}
	h, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	return r.emit(h, func(w io.Writer) { fmt.Fprintf(w, "API:\t%s\n", h.Status) })
}
