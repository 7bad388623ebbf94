// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import (
	"log"
	"strings"

	"github.com/jeranaias/shopfront-tui/internal/session"
)

// =============================================================================
// CAPABILITIES & DECISIONS
// =============================================================================

// Capability is the access level a route requires.
type Capability int

const (
	// CapPublic routes render for anyone, signed in or not.
	CapPublic Capability = iota

	// CapAuthenticated routes require a signed-in user.
	CapAuthenticated

	// CapAdmin routes require a signed-in admin.
	CapAdmin
)

// String returns the capability name for logs and status output.
func (c Capability) String() string {
	switch c {
	case CapPublic:
		return "public"
	case CapAuthenticated:
		return "authenticated"
	case CapAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Action is what the caller should do with the requested path.
type Action int

const (
	// ActionSuspend means session state is still resolving: render nothing,
	// redirect nowhere, wait for the next state change.
	ActionSuspend Action = iota

	// ActionRender means show the requested view.
	ActionRender

	// ActionRedirectLogin means send the user to the login view. The path
	// they asked for has been recorded for after login.
	ActionRedirectLogin

	// ActionForbidden means the user is signed in but lacks the required
	// capability: show the forbidden view, do not redirect.
	ActionForbidden

	// ActionNotFound means no route matches the path.
	ActionNotFound
)

// String returns the action name for logs.
func (a Action) String() string {
	switch a {
	case ActionSuspend:
		return "suspend"
	case ActionRender:
		return "render"
	case ActionRedirectLogin:
		return "redirect_login"
	case ActionForbidden:
		return "forbidden"
	case ActionNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Action Action

	// RedirectTo is the path to navigate to for ActionRedirectLogin.
	RedirectTo string

	// Params holds values captured by :param segments of the matched
	// route, e.g. {"id": "p42"} for /admin/editproducts/p42.
	Params map[string]string
}

// =============================================================================
// ROUTE TABLE
// =============================================================================

// Route maps one path pattern to its required capability. Pattern segments
// starting with ':' match any single non-empty segment.
type Route struct {
	Pattern    string
	Capability Capability
}

// Well-known paths.
const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathRegister     = "/register"
	PathCart         = "/cart"
	PathCheckout     = "/checkout"
	PathProfile      = "/userProfile"
	PathOrders       = "/orders"
	PathAdminHome    = "/admin/dashboard"
	PathAdminUsers   = "/admin/users"
	PathAdminCatalog = "/admin/products"
)

// DefaultTable returns the storefront's route table.
func DefaultTable() []Route {
	return []Route{
		{PathHome, CapPublic},
		{"/products/:id", CapPublic},
		{PathLogin, CapPublic},
		{PathRegister, CapPublic},

		{PathCart, CapAuthenticated},
		{PathCheckout, CapAuthenticated},
		{PathProfile, CapAuthenticated},
		{PathOrders, CapAuthenticated},

		{PathAdminHome, CapAdmin},
		{PathAdminUsers, CapAdmin},
		{PathAdminCatalog, CapAdmin},
		{"/admin/addproducts", CapAdmin},
		{"/admin/editproducts/:id", CapAdmin},
		{"/admin/orders", CapAdmin},
	}
}

// =============================================================================
// REDIRECT STORE
// =============================================================================

// RedirectStore persists the "return here after login" path across the
// unauthenticated-redirect boundary. At most one path is held at a time.
type RedirectStore interface {
	// SetPendingRedirect records the path to return to after login.
	SetPendingRedirect(path string) error

	// ConsumePendingRedirect returns the recorded path and clears it in
	// the same step. Returns "" when none is pending.
	ConsumePendingRedirect() (string, error)
}

// =============================================================================
// GUARD
// =============================================================================

// Config holds the guard's navigation targets.
type Config struct {
	// LoginPath is where unauthenticated users are sent (default: /login).
	LoginPath string

	// LandingPath is the post-login default destination (default: /).
	LandingPath string

	// AdminLandingPath is the post-login destination for admins
	// (default: /admin/dashboard).
	AdminLandingPath string
}

// DefaultConfig returns the default guard configuration.
func DefaultConfig() Config {
	return Config{
		LoginPath:        PathLogin,
		LandingPath:      PathHome,
		AdminLandingPath: PathAdminHome,
	}
}

// Guard evaluates navigations against the route table and session state.
type Guard struct {
	table     []Route
	redirects RedirectStore
	cfg       Config
	logger    *log.Logger
}

// NewGuard creates a guard over the given table. A nil table uses
// DefaultTable.
func NewGuard(table []Route, redirects RedirectStore, cfg Config) *Guard {
	if table == nil {
		table = DefaultTable()
	}
	def := DefaultConfig()
	if cfg.LoginPath == "" {
		cfg.LoginPath = def.LoginPath
	}
	if cfg.LandingPath == "" {
		cfg.LandingPath = def.LandingPath
	}
	if cfg.AdminLandingPath == "" {
		cfg.AdminLandingPath = def.AdminLandingPath
	}
	return &Guard{table: table, redirects: redirects, cfg: cfg}
}

// SetLogger sets the diagnostic logger. A nil logger disables logging.
func (g *Guard) SetLogger(logger *log.Logger) {
	g.logger = logger
}

// Evaluate decides what to do with a requested path. Rule order matters:
//
//  1. Unknown path -> not found.
//  2. Session still resolving -> suspend. Never redirect, never render a
//     guarded view, before the initial check is done.
//  3. Public route -> render unconditionally. Public pages stay public
//     even for anonymous users; only guarded routes force a login.
//  4. Not authenticated -> record the path, redirect to login. The login
//     path itself is public (rule 3), so this can never loop.
//  5. Admin route without the admin flag -> forbidden, no redirect.
//  6. Otherwise -> render.
func (g *Guard) Evaluate(path string, st session.State) Decision {
	route, params, ok := g.match(path)
	if !ok {
		return Decision{Action: ActionNotFound}
	}

	if !st.InitialCheckDone || !st.Phase.Terminal() {
		return Decision{Action: ActionSuspend}
	}

	if route.Capability == CapPublic {
		return Decision{Action: ActionRender, Params: params}
	}

	if st.Phase != session.PhaseAuthenticated {
		if err := g.redirects.SetPendingRedirect(path); err != nil {
			g.logf("routes: recording redirect path failed: %v", err)
		}
		return Decision{Action: ActionRedirectLogin, RedirectTo: g.cfg.LoginPath}
	}

	if route.Capability == CapAdmin && !st.User.IsAdmin {
		return Decision{Action: ActionForbidden, Params: params}
	}

	return Decision{Action: ActionRender, Params: params}
}

// PostLoginPath resolves where to go once login succeeds: the pending
// redirect if one was recorded, otherwise the role's landing path. The
// pending path is consumed in the same step.
func (g *Guard) PostLoginPath(st session.State) string {
	pending, err := g.redirects.ConsumePendingRedirect()
	if err != nil {
		g.logf("routes: reading redirect path failed: %v", err)
	}
	if pending != "" {
		return pending
	}
	if st.User != nil && st.User.IsAdmin {
		return g.cfg.AdminLandingPath
	}
	return g.cfg.LandingPath
}

// LoginPath returns the configured login path.
func (g *Guard) LoginPath() string {
	return g.cfg.LoginPath
}

// =============================================================================
// PATH MATCHING
// =============================================================================

// match finds the first route whose pattern matches path, capturing any
// :param segments.
func (g *Guard) match(path string) (Route, map[string]string, bool) {
	segs := splitPath(path)
	for _, route := range g.table {
		if params, ok := matchPattern(splitPath(route.Pattern), segs); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func (g *Guard) logf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}
