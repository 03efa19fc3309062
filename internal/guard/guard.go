// Package guard decides whether a screen may be shown for the current
// session. Guards are pure: they read session state and never fetch or
// mutate anything.
package guard

import "fmt"

const (
	PathDashboard = "/"
	PathAdmin     = "/admin"
	PathSettings  = "/settings"
	PathProfile   = "/profile"
	PathLogin     = "/login"
	PathRegister  = "/register"
)

// Session is the read-only view of the session store a guard needs.
type Session interface {
	Loading() bool
	IsAuthenticated() bool
	IsAdmin() bool
}

type Outcome int

const (
	// Wait means the session is still being restored; render nothing yet.
	Wait Outcome = iota
	Render
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Decision struct {
	Outcome Outcome
	Target  string
}

func (d Decision) String() string {
	if d.Outcome == Redirect {
		return "redirect " + d.Target
	}
	return d.Outcome.String()
}

func render() Decision { return Decision{Outcome: Render} }
func wait() Decision { return Decision{Outcome: Wait} }
func redirect(target string) Decision { return Decision{Outcome: Redirect, Target: target} }

// Guard is a decision function over session state.
type Guard func(s Session) Decision

// Authenticated admits any logged-in user.
func Authenticated(s Session) Decision {
	if s.Loading() {
		return wait()
	}
	if !s.IsAuthenticated() {
		return redirect(PathLogin)
	}
	return render()
}

// Admin admits only administrators; other logged-in users go to the dashboard.
func Admin(s Session) Decision {
	if d := Authenticated(s); d.Outcome != Render {
		return d
	}
	if !s.IsAdmin() {
		return redirect(PathDashboard)
	}
	return render()
}

// Public admits only anonymous visitors, e.g. the login and register screens.
func Public(s Session) Decision {
	if s.Loading() {
		return wait()
	}
	if s.IsAuthenticated() {
		return redirect(PathDashboard)
	}
	return render()
}
