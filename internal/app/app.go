// Package app is the terminal front end. Each screen maps to a guarded route;
// the guard decides whether it runs, redirects or is refused before any
// page code issues a request.
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jaekwang-park/taskhub/internal/apiclient"
	"github.com/jaekwang-park/taskhub/internal/guard"
	"github.com/jaekwang-park/taskhub/internal/model"
	"github.com/jaekwang-park/taskhub/internal/session"
	"github.com/jaekwang-park/taskhub/internal/todo"
)

// Session is what the pages need from the session store.
type Session interface {
	guard.Session
	User() (model.User, bool)
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, req model.RegisterRequest) error
	Logout(ctx context.Context)
	RefreshUser(ctx context.Context) error
}

// API is what the pages need from the API client.
type API interface {
	todo.API
	ChangePassword(ctx context.Context, req model.PasswordChangeRequest) error
	ChangePhone(ctx context.Context, phone string) error
	AdminListUsers(ctx context.Context) ([]model.User, error)
	Health(ctx context.Context) (apiclient.HealthStatus, error)
}

var (
	_ Session = (*session.Store)(nil)
	_ API     = (*apiclient.Client)(nil)
)

type page func(ctx context.Context, r *renderer, args []string) error

type screen struct {
	name  string
	path  string // guarded route; empty for screens every session may use
	usage string
	run   page
}

type App struct {
	session Session
	api     API
	out     io.Writer
	errOut  io.Writer
	in      io.Reader
	logger  *slog.Logger

	screens map[string]screen
}

type Option func(*App)

func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

func WithInput(in io.Reader) Option {
	return func(a *App) { a.in = in }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

func New(s Session, api API, opts ...Option) *App {
	a := &App{
		session: s,
		api:     api,
		out:     os.Stdout,
		errOut:  os.Stderr,
		in:      os.Stdin,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.screens = a.buildScreens()
	return a
}

func (a *App) buildScreens() map[string]screen {
	pages := map[string]struct {
		usage string
		run   page
	}{
		"todos":    {"todos [list|add|edit ID|toggle ID|delete ID] [flags]", a.todosPage},
		"admin":    {"admin [list|delete ID|users] [flags]", a.adminPage},
		"settings": {"settings password|phone [flags]", a.settingsPage},
		"profile":  {"profile", a.profilePage},
		"login":    {"login [--username U] [--password P]", a.loginPage},
		"register": {"register [flags]", a.registerPage},
	}

	screens := make(map[string]screen, len(guard.Routes)+2)
	for _, route := range guard.Routes {
		p, ok := pages[route.Name]
		if !ok {
			panic(fmt.Sprintf("app: no page for route %q", route.Name))
		}
		screens[route.Name] = screen{name: route.Name, path: route.Path, usage: p.usage, run: p.run}
	}
	screens["logout"] = screen{name: "logout", usage: "logout", run: a.logoutPage}
	screens["health"] = screen{name: "health", usage: "health", run: a.healthPage}
	return screens
}

// Run executes one screen. args are the command line after the program name:
// global flags, the screen name, then the screen's own arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskhub", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	jsonOut := fs.Bool("json", false, "print results as JSON")
	fs.Usage = func() { a.printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	r := newRenderer(a.out, a.errOut, *jsonOut)

	rest := fs.Args()
	if len(rest) == 0 {
		a.printUsage(fs)
		return ErrUsage
	}

	err := a.dispatch(ctx, r, rest[0], rest[1:])
	if err != nil {
		r.failure(err)
	}
	return err
}

func (a *App) dispatch(ctx context.Context, r *renderer, name string, args []string) (err error) {
	defer a.recoverScreen(name, &err)

	scr, ok := a.screens[name]
	if !ok {
		return fmt.Errorf("%w: unknown screen %q", ErrUsage, name)
	}
	if scr.path == "" {
		return scr.run(ctx, r, args)
	}

	route, d, err := guard.Resolve(scr.path, a.session)
	if err != nil {
		return err
	}
	a.logger.DebugContext(ctx, "route resolved", "screen", name, "route", route.Name, "decision", d.String())

	switch {
	case d.Outcome == guard.Wait:
		return ErrSessionLoading
	case route.Path == scr.path:
		return scr.run(ctx, r, args)
	case route.Path == guard.PathLogin:
		return ErrLoginRequired
	default:
		// Redirected screens open with their default view.
		r.notice("redirected from %s to %s", name, route.Name)
		return a.screens[route.Name].run(ctx, r, nil)
	}
}

func (a *App) printUsage(fs *flag.FlagSet) {
	names := make([]string, 0, len(a.screens))
	for name := range a.screens {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: taskhub [--json] <screen> [args]\n\nscreens:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", a.screens[name].usage)
	}
	fmt.Fprint(a.errOut, b.String())
	fs.PrintDefaults()
}
