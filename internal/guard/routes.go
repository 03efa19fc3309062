package guard

import "fmt"

type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdmin
)

func (a Access) Guard() Guard {
	switch a {
	case AccessPublic:
		return Public
	case AccessAuthenticated:
		return Authenticated
	case AccessAdmin:
		return Admin
	default:
		panic(fmt.Sprintf("guard: unknown access level %d", int(a)))
	}
}

type Route struct {
	Path   string
	Name   string
	Access Access
}

// Routes is the screen table of the client.
var Routes = []Route{
	{Path: PathDashboard, Name: "todos", Access: AccessAuthenticated},
	{Path: PathAdmin, Name: "admin", Access: AccessAdmin},
	{Path: PathSettings, Name: "settings", Access: AccessAuthenticated},
	{Path: PathProfile, Name: "profile", Access: AccessAuthenticated},
	{Path: PathLogin, Name: "login", Access: AccessPublic},
	{Path: PathRegister, Name: "register", Access: AccessPublic},
}

func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// MaxRedirects bounds Resolve; the table never chains more than one hop.
const MaxRedirects = 4

// Resolve follows redirects from path until a route renders or the session is
// still loading. It returns the final route and decision.
func Resolve(path string, s Session) (Route, Decision, error) {
	for i := 0; i <= MaxRedirects; i++ {
		route, ok := Lookup(path)
		if !ok {
			return Route{}, Decision{}, fmt.Errorf("no route for %q", path)
		}
		d := route.Access.Guard()(s)
		if d.Outcome != Redirect {
			return route, d, nil
		}
		path = d.Target
	}
	return Route{}, Decision{}, fmt.Errorf("too many redirects resolving %q", path)
}
