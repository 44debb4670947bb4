// ABOUTME: In-process navigator with the web client's route table and entry guards
// ABOUTME: Guards are pure functions of session state evaluated before navigation commits

package router

import (
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/Depaula010/meusecretariofront/internal/session"
)

// Route paths
const (
	PathAuth         = "/auth"
	PathLogin        = "/auth/login"
	PathRegister     = "/auth/register"
	PathDashboard    = "/dashboard"
	PathFinances     = "/finances"
	PathTransactions = "/finances/transactions"
	PathAccounts     = "/finances/accounts"
	PathSettings     = "/settings"
	PathSubscription = "/subscription"
	PathNotFound     = "/not-found"
)

// ReturnURLParam carries the originally requested location to the login screen
const ReturnURLParam = "returnUrl"

// Access is the entry requirement of a route
type Access int

const (
	AccessOpen Access = iota
	AccessPublic
	AccessPrivate
)

// Route is an entry in the route table
type Route struct {
	Path   string
	Title  string
	Access Access
}

// Routes is the route table
var Routes = []Route{
	{Path: PathLogin, Title: "Login", Access: AccessPublic},
	{Path: PathRegister, Title: "Register", Access: AccessPublic},
	{Path: PathDashboard, Title: "Dashboard", Access: AccessPrivate},
	{Path: PathTransactions, Title: "Transactions", Access: AccessPrivate},
	{Path: PathAccounts, Title: "Accounts", Access: AccessPrivate},
	{Path: PathSettings, Title: "Settings", Access: AccessPrivate},
	{Path: PathSubscription, Title: "Subscription", Access: AccessPrivate},
	{Path: PathNotFound, Title: "Page not found", Access: AccessOpen},
}

// redirects maps bare parent paths to their default child
var redirects = map[string]string{
	"":           PathDashboard,
	"/":          PathDashboard,
	PathAuth:     PathLogin,
	PathFinances: PathTransactions,
}

// Location is a path plus query parameters
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation parses a raw "path?query" string
func ParseLocation(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{Path: raw}
	}
	loc := Location{Path: u.Path}
	if q := u.Query(); len(q) > 0 {
		loc.Query = q
	}
	return loc
}

// String renders the location as "path?query"
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// ReturnURL returns the returnUrl query parameter, if any
func (l Location) ReturnURL() string {
	return l.Query.Get(ReturnURLParam)
}

// LoginLocation builds the login location carrying returnURL
func LoginLocation(returnURL string) Location {
	loc := Location{Path: PathLogin}
	if returnURL != "" {
		loc.Query = url.Values{ReturnURLParam: []string{returnURL}}
	}
	return loc
}

// InAuthArea reports whether path is inside the public auth area
func InAuthArea(path string) bool {
	return path == PathAuth || strings.HasPrefix(path, PathAuth+"/")
}

// SafeReturnURL accepts only in-app absolute paths outside the auth area
func SafeReturnURL(raw string) (string, bool) {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if InAuthArea(u.Path) {
		return "", false
	}
	return raw, true
}

// Resolve follows redirects and returns the matching route. Unknown paths
// resolve to the not-found route.
func Resolve(path string) Route {
	if target, ok := redirects[path]; ok {
		path = target
	}
	path = strings.TrimSuffix(path, "/")
	if target, ok := redirects[path]; ok {
		path = target
	}
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
	}
	for _, r := range Routes {
		if r.Path == PathNotFound {
			return r
		}
	}
	return Route{Path: PathNotFound, Access: AccessOpen}
}

// Decision is the outcome of a guard. Location is the target when allowed,
// otherwise where the user is sent instead.
type Decision struct {
	Allowed  bool
	Location Location
}

// RequireAuth guards private routes. Unauthenticated users are sent to the
// login screen with target recorded as returnUrl.
func RequireAuth(state session.State, target Location) Decision {
	if state == session.Authenticated {
		return Decision{Allowed: true, Location: target}
	}
	return Decision{Allowed: false, Location: LoginLocation(target.String())}
}

// RequirePublic guards login/register. Authenticated users go to the dashboard.
func RequirePublic(state session.State, target Location) Decision {
	if state == session.Unauthenticated {
		return Decision{Allowed: true, Location: target}
	}
	return Decision{Allowed: false, Location: Location{Path: PathDashboard}}
}

// Guard evaluates the guard for route against target
func Guard(route Route, state session.State, target Location) Decision {
	switch route.Access {
	case AccessPrivate:
		return RequireAuth(state, target)
	case AccessPublic:
		return RequirePublic(state, target)
	default:
		return Decision{Allowed: true, Location: target}
	}
}

// StateSource reports the current session state
type StateSource interface {
	State() session.State
}

// Router tracks the current location and notifies subscribers on navigation
type Router struct {
	sessions StateSource

	mu      sync.Mutex
	current Location
	subs    map[int]chan Location
	nextID  int
}

// New creates a router positioned at the root path
func New(sessions StateSource) *Router {
	return &Router{
		sessions: sessions,
		current:  Location{Path: "/"},
		subs:     make(map[int]chan Location),
	}
}

// Go resolves target, applies its guard, and commits the resulting location
func (r *Router) Go(target string) Decision {
	loc := ParseLocation(target)
	route := Resolve(loc.Path)
	loc.Path = route.Path

	decision := Guard(route, r.sessions.State(), loc)
	if !decision.Allowed {
		slog.Debug("Navigation redirected by guard", "target", loc.String(), "redirect", decision.Location.String())
	}
	r.Navigate(decision.Location)
	return decision
}

// Navigate commits loc without evaluating guards
func (r *Router) Navigate(loc Location) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = loc
	for _, ch := range r.subs {
		select {
		case ch <- loc:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- loc
		}
	}
}

// Current returns the current location
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe returns a channel receiving committed locations; a slow reader
// only sees the latest one. The returned func unsubscribes and closes it.
func (r *Router) Subscribe() (<-chan Location, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	ch := make(chan Location, 1)
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.subs, id)
			close(ch)
		})
	}
}
