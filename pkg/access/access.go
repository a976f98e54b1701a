// Package access decides what a requested view path resolves to for a given
// authentication state.
package access

import (
	"net/http"
	"strings"

	"github.com/chris/apexfx-session/pkg/models"
	"github.com/go-chi/chi/v5"
)

// State is the authentication state seen by route resolution.
type State string

const (
	Anonymous          State = "anonymous"
	AuthenticatedUser  State = "authenticatedUser"
	AuthenticatedAdmin State = "authenticatedAdmin"
)

// Event drives State transitions.
type Event string

const (
	EventLogin      Event = "login"
	EventAdminLogin Event = "adminLogin"
	EventLogout     Event = "logout"
)

// Next returns the state after a successful event. Login and admin login are
// exclusive, so each replaces whatever mode was active.
func Next(state State, event Event) State {
	switch event {
	case EventLogin:
		return AuthenticatedUser
	case EventAdminLogin:
		return AuthenticatedAdmin
	case EventLogout:
		return Anonymous
	}
	return state
}

// StateFor maps a session mode to its gate state.
func StateFor(mode models.Mode) State {
	switch mode {
	case models.USER:
		return AuthenticatedUser
	case models.ADMIN:
		return AuthenticatedAdmin
	}
	return Anonymous
}

// Action is what the caller should do with a requested path.
type Action string

const (
	Render    Action = "render"
	ShowLogin Action = "showLogin"
	Redirect  Action = "redirect"
)

// View names a protected view.
type View string

const (
	Dashboard       View = "dashboard"
	Deposit         View = "deposit"
	Withdraw        View = "withdraw"
	Transactions    View = "transactions"
	Onboarding      View = "onboarding"
	Settings        View = "settings"
	AdminDashboard  View = "adminDashboard"
	AdminUsers      View = "adminUsers"
	AdminUserDetail View = "adminUserDetail"
	Login           View = "login"
	AdminLogin      View = "adminLogin"
)

const (
	// LandingPath is the default landing view for everyone.
	LandingPath = "/"
	// AdminPath is the admin entry point.
	AdminPath = "/admin"
)

// Decision is the outcome of Resolve. Target is set for redirects; Params holds
// path parameters such as the user id of an admin detail view.
type Decision struct {
	Action Action            `json:"action"`
	View   View              `json:"view,omitempty"`
	Target string            `json:"target,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

type routeKind int

const (
	landingRoute routeKind = iota
	userRoute
	adminRoute
)

type route struct {
	kind routeKind
	view View
}

var routes = map[string]route{
	"/":                 {landingRoute, Dashboard},
	"/deposit":          {userRoute, Deposit},
	"/withdraw":         {userRoute, Withdraw},
	"/transactions":     {userRoute, Transactions},
	"/onboarding":       {userRoute, Onboarding},
	"/settings":         {userRoute, Settings},
	"/admin":            {adminRoute, AdminDashboard},
	"/admin/users":      {adminRoute, AdminUsers},
	"/admin/users/{id}": {adminRoute, AdminUserDetail},
}

// Gate resolves view paths against the route table.
type Gate struct {
	mux *chi.Mux
}

// NewGate builds the routing tree used for matching.
func NewGate() *Gate {
	mux := chi.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	for pattern := range routes {
		mux.Get(pattern, noop)
	}
	return &Gate{mux: mux}
}

func (g *Gate) match(path string) (route, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	if !g.mux.Match(rctx, http.MethodGet, path) {
		return route{}, nil, false
	}
	r, ok := routes[rctx.RoutePattern()]
	if !ok {
		return route{}, nil, false
	}
	var params map[string]string
	for i, key := range rctx.URLParams.Keys {
		if params == nil {
			params = make(map[string]string)
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return r, params, true
}

func isAdminPath(path string) bool {
	return path == AdminPath || strings.HasPrefix(path, AdminPath+"/")
}

// Resolve maps a state and requested path to a decision.
//
// Unknown paths go to the landing view in every state, including ones under
// /admin. Known admin paths show the admin login to anyone but an
// administrator. User paths require user mode; admin mode does not satisfy
// them.
func (g *Gate) Resolve(state State, path string) Decision {
	if path == "" {
		path = LandingPath
	}

	r, params, known := g.match(path)
	if !known {
		return Decision{Action: Redirect, Target: LandingPath}
	}

	if isAdminPath(path) {
		if state != AuthenticatedAdmin {
			return Decision{Action: ShowLogin, View: AdminLogin}
		}
		return Decision{Action: Render, View: r.view, Params: params}
	}

	if state == AuthenticatedUser {
		return Decision{Action: Render, View: r.view, Params: params}
	}
	if r.kind == landingRoute {
		return Decision{Action: ShowLogin, View: Login}
	}
	return Decision{Action: Redirect, Target: LandingPath}
}
