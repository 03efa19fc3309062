package app

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/jaekwang-park/taskhub/internal/model"
	"github.com/jaekwang-park/taskhub/internal/todo"
)

func (a *App) adminPage(ctx context.Context, r *renderer, args []string) error {
	sub, rest := subcommand(args, "list")
	vm := todo.NewViewModel(a.api, todo.ScopeAll, a.logger)

	switch sub {
	case "list":
		var cf criteriaFlags
		rest, err := parseFlags("admin list", rest, a.errOut, func(fs *flag.FlagSet) { cf.define(fs, true) })
		if err != nil {
			return err
		}
		if err := noArgs("admin list", rest); err != nil {
			return err
		}
		c, err := cf.criteria()
		if err != nil {
			return err
		}
		if err := vm.Load(ctx); err != nil {
			return err
		}
		users := a.adminUsers(ctx)
		return a.renderList(r, vm, c, ownerLabels(users), len(users))

	case "delete":
		id, rest, err := leadingID(rest)
		if err != nil {
			return err
		}
		if err := noArgs("admin delete", rest); err != nil {
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

	case "users":
		if err := noArgs("admin users", rest); err != nil {
			return err
		}
		users, err := a.api.AdminListUsers(ctx)
		if err != nil {
			return err
		}
		return r.emit(users, func(w io.Writer) { writeUserTable(w, users) })

	default:
		return fmt.Errorf("%w: unknown admin command %q", ErrUsage, sub)
	}
}

// adminUsers fetches the owner names. The list still renders without them.
func (a *App) adminUsers(ctx context.Context) []model.User {
	users, err := a.api.AdminListUsers(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to load users for owner labels", "error", err)
		return nil
	}
	return users
}

func ownerLabels(users []model.User) func(int64) string {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return func(id int64) string {
		if name, ok := names[id]; ok {
			return name
		}
		return fmt.Sprintf("User #%d", id)
	}
}
