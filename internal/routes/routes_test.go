// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/session"
)

// memRedirects is an in-memory RedirectStore for tests.
type memRedirects struct {
	path string
	sets int
}

func (m *memRedirects) SetPendingRedirect(path string) error {
	m.path = path
	m.sets++
	return nil
}

func (m *memRedirects) ConsumePendingRedirect() (string, error) {
	p := m.path
	m.path = ""
	return p, nil
}

func newTestGuard() (*Guard, *memRedirects) {
	redirects := &memRedirects{}
	return NewGuard(nil, redirects, DefaultConfig()), redirects
}

func resolved(phase session.Phase, user *session.User) session.State {
	return session.State{Phase: phase, User: user, InitialCheckDone: true}
}

func TestEvaluate_SuspendsWhileResolving(t *testing.T) {
	guard, redirects := newTestGuard()

	for _, phase := range []session.Phase{session.PhaseIdle, session.PhaseAuthenticating} {
		for _, path := range []string{PathHome, PathCart, PathAdminHome} {
			d := guard.Evaluate(path, session.State{Phase: phase})
			assert.Equal(t, ActionSuspend, d.Action, "phase=%s path=%s", phase, path)
		}
	}
	assert.Zero(t, redirects.sets, "suspend must not record a redirect")
}

func TestEvaluate_SuspendsBeforeInitialCheck(t *testing.T) {
	guard, _ := newTestGuard()

	// A terminal phase without the initial-check latch still suspends.
	d := guard.Evaluate(PathCart, session.State{Phase: session.PhaseAnonymous})
	assert.Equal(t, ActionSuspend, d.Action)
}

func TestEvaluate_PublicStaysPublic(t *testing.T) {
	guard, redirects := newTestGuard()

	for _, st := range []session.State{
		resolved(session.PhaseAnonymous, nil),
		resolved(session.PhaseFailed, nil),
		resolved(session.PhaseAuthenticated, &session.User{ID: "u1"}),
	} {
		for _, path := range []string{PathHome, PathLogin, PathRegister, "/products/p42"} {
			d := guard.Evaluate(path, st)
			assert.Equal(t, ActionRender, d.Action, "phase=%s path=%s", st.Phase, path)
		}
	}
	assert.Zero(t, redirects.sets)
}

func TestEvaluate_RedirectRoundTrip(t *testing.T) {
	guard, redirects := newTestGuard()

	d := guard.Evaluate(PathCart, resolved(session.PhaseAnonymous, nil))
	assert.Equal(t, ActionRedirectLogin, d.Action)
	assert.Equal(t, PathLogin, d.RedirectTo)
	assert.Equal(t, PathCart, redirects.path)

	st := resolved(session.PhaseAuthenticated, &session.User{ID: "u1"})
	assert.Equal(t, PathCart, guard.PostLoginPath(st))

	// Consumed: a second login lands on the default path.
	assert.Equal(t, PathHome, guard.PostLoginPath(st))
}

func TestEvaluate_FailedPhaseRedirectsFromGuarded(t *testing.T) {
	guard, _ := newTestGuard()

	d := guard.Evaluate(PathCheckout, resolved(session.PhaseFailed, nil))
	assert.Equal(t, ActionRedirectLogin, d.Action)
}

func TestEvaluate_AdminWithoutFlagIsForbidden(t *testing.T) {
	guard, redirects := newTestGuard()
	st := resolved(session.PhaseAuthenticated, &session.User{ID: "u1", IsAdmin: false})

	for _, path := range []string{PathAdminHome, PathAdminUsers, "/admin/editproducts/p1"} {
		d := guard.Evaluate(path, st)
		assert.Equal(t, ActionForbidden, d.Action, "path=%s", path)
		assert.Empty(t, d.RedirectTo, "forbidden must not redirect")
	}
	assert.Zero(t, redirects.sets)
}

func TestEvaluate_AdminRendersForAdmin(t *testing.T) {
	guard, _ := newTestGuard()
	st := resolved(session.PhaseAuthenticated, &session.User{ID: "u1", IsAdmin: true})

	d := guard.Evaluate(PathAdminHome, st)
	assert.Equal(t, ActionRender, d.Action)

	d = guard.Evaluate("/admin/editproducts/p42", st)
	require.Equal(t, ActionRender, d.Action)
	assert.Equal(t, "p42", d.Params["id"])
}

func TestEvaluate_UnknownPath(t *testing.T) {
	guard, _ := newTestGuard()

	d := guard.Evaluate("/no/such/page", resolved(session.PhaseAnonymous, nil))
	assert.Equal(t, ActionNotFound, d.Action)
}

func TestPostLoginPath_AdminLanding(t *testing.T) {
	guard, _ := newTestGuard()

	st := resolved(session.PhaseAuthenticated, &session.User{ID: "a1", IsAdmin: true})
	assert.Equal(t, PathAdminHome, guard.PostLoginPath(st))

	st = resolved(session.PhaseAuthenticated, &session.User{ID: "u1"})
	assert.Equal(t, PathHome, guard.PostLoginPath(st))
}

func TestPostLoginPath_PendingWinsOverRoleLanding(t *testing.T) {
	guard, redirects := newTestGuard()
	redirects.path = PathCheckout

	st := resolved(session.PhaseAuthenticated, &session.User{ID: "a1", IsAdmin: true})
	assert.Equal(t, PathCheckout, guard.PostLoginPath(st))
}

func TestLogoutThenGuardedPathRedirects(t *testing.T) {
	guard, _ := newTestGuard()

	st := resolved(session.PhaseAuthenticated, &session.User{ID: "u1"})
	require.Equal(t, ActionRender, guard.Evaluate(PathProfile, st).Action)

	st = resolved(session.PhaseAnonymous, nil)
	d := guard.Evaluate(PathProfile, st)
	assert.Equal(t, ActionRedirectLogin, d.Action)
	assert.Equal(t, PathLogin, d.RedirectTo)
}

func TestMatchPattern_ParamSegments(t *testing.T) {
	params, ok := matchPattern(splitPath("/products/:id"), splitPath("/products/p9"))
	require.True(t, ok)
	assert.Equal(t, "p9", params["id"])

	_, ok = matchPattern(splitPath("/products/:id"), splitPath("/products"))
	assert.False(t, ok)

	_, ok = matchPattern(splitPath("/products/:id"), splitPath("/orders/p9"))
	assert.False(t, ok)
}
