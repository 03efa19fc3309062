package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jaekwang-park/taskhub/internal/apiclient"
	"github.com/jaekwang-park/taskhub/internal/app"
	"github.com/jaekwang-park/taskhub/internal/model"
)

type fakeSession struct {
	user *model.User
}

func (f *fakeSession) Loading() bool         { return false }
func (f *fakeSession) IsAuthenticated() bool { return f.user != nil }
func (f *fakeSession) IsAdmin() bool         { return f.user != nil && f.user.IsAdmin() }

func (f *fakeSession) User() (model.User, bool) {
	if f.user == nil {
		return model.User{}, false
	}
	return *f.user, true
}

func (f *fakeSession) Login(ctx context.Context, username, password string) error { return nil }
func (f *fakeSession) Register(ctx context.Context, req model.RegisterRequest) error {
	return nil
}
func (f *fakeSession) Logout(ctx context.Context)            { f.user = nil }
func (f *fakeSession) RefreshUser(ctx context.Context) error { return nil }

// panicAPI embeds a nil interface, so every method it does not override panics.
type panicAPI struct {
	app.API
	healthFn func(ctx context.Context) (apiclient.HealthStatus, error)
}

func (p panicAPI) Health(ctx context.Context) (apiclient.HealthStatus, error) {
	return p.healthFn(ctx)
}

func TestApp_RecoversFromPanics(t *testing.T) {
	var logs, out, errOut bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	s := &fakeSession{user: &model.User{ID: 1, Username: "ivy", Role: model.RoleUser}}
	a := app.New(s, panicAPI{}, app.WithOutput(&out, &errOut), app.WithLogger(logger), app.WithInput(strings.NewReader("")))

	err := a.Run(context.Background(), []string{"todos"})
	if !errors.Is(err, app.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if !strings.Contains(logs.String(), "panic recovered") || !strings.Contains(logs.String(), `"screen":"todos"`) {
		t.Errorf("panic not logged: %s", logs.String())
	}
	if !strings.Contains(errOut.String(), "something went wrong") {
		t.Errorf("unexpected report %q", errOut.String())
	}
}

func TestApp_HealthIsUnguarded(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}
	api := panicAPI{healthFn: func(ctx context.Context) (apiclient.HealthStatus, error) {
		return apiclient.HealthStatus{Status: "Healthy"}, nil
	}}
	a := app.New(s, api,
		app.WithOutput(&out, io.Discard),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	if err := a.Run(context.Background(), []string{"--json", "health"}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "{\n  \"status\": \"Healthy\"\n}" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, app.ExitOK},
		{app.ErrUsage, app.ExitUsage},
		{app.ErrLoginRequired, app.ExitLoginRequired},
		{errors.New("boom"), app.ExitFailure},
		{app.ErrInternal, app.ExitFailure},
	}
	for _, tt := range tests {
		if got := app.ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
