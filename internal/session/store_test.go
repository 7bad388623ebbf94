// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/api"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL)
	return NewStore(client, DefaultConfig()), client
}

func TestBootstrap_EmbeddedUser(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1","isAdmin":false}}`))
	})

	st := store.Bootstrap(context.Background())

	assert.Equal(t, PhaseAuthenticated, st.Phase)
	require.NotNil(t, st.User)
	assert.Equal(t, "u1", st.User.ID)
	assert.False(t, st.User.IsAdmin)
	assert.Nil(t, st.Err)
	assert.True(t, st.InitialCheckDone)
}

func TestBootstrap_BareFields(t *testing.T) {
	store, client := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"userId":"u2","isAdmin":true,"accessToken":"tok"}`))
	})

	st := store.Bootstrap(context.Background())

	assert.Equal(t, PhaseAuthenticated, st.Phase)
	require.NotNil(t, st.User)
	assert.Equal(t, "u2", st.User.ID)
	assert.True(t, st.User.IsAdmin)
	assert.Empty(t, st.User.Email)
	assert.True(t, client.HasAccessToken())
}

func TestBootstrap_Unauthenticated(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	st := store.Bootstrap(context.Background())

	assert.Equal(t, PhaseAnonymous, st.Phase)
	assert.Nil(t, st.User)
	assert.Nil(t, st.Err)
	assert.True(t, st.InitialCheckDone)
}

func TestBootstrap_RateLimited(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	st := store.Bootstrap(context.Background())

	assert.Equal(t, PhaseFailed, st.Phase)
	require.NotNil(t, st.Err)
	assert.Equal(t, ErrKindRateLimited, st.Err.Kind)
}

func TestBootstrap_NetworkError(t *testing.T) {
	store := NewStore(api.NewClient("http://127.0.0.1:1"), Config{
		AuthTimeout: 500 * time.Millisecond,
	})

	st := store.Bootstrap(context.Background())

	assert.Equal(t, PhaseFailed, st.Phase)
	require.NotNil(t, st.Err)
	assert.Equal(t, ErrKindNetworkError, st.Err.Kind)
	assert.True(t, st.InitialCheckDone)
}

func TestBootstrap_MalformedPayload(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isAdmin":true}`))
	})

	st := store.Bootstrap(context.Background())

	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Nil(t, st.User)
	require.NotNil(t, st.Err)
	assert.Equal(t, ErrKindMalformedSession, st.Err.Kind)
}

func TestBootstrap_PhaseOrdering(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"userId":"u1"}`))
	})

	var mu sync.Mutex
	var phases []Phase
	store.Subscribe(func(st State) {
		mu.Lock()
		phases = append(phases, st.Phase)
		mu.Unlock()
	})

	assert.Equal(t, PhaseIdle, store.Snapshot().Phase)
	store.Bootstrap(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, phases, 2)
	assert.Equal(t, PhaseAuthenticating, phases[0])
	assert.Equal(t, PhaseAuthenticated, phases[1])
}

func TestReportLogin_BackendMessage(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {})

	st := store.ReportLogin(nil, &api.APIError{Status: 400, Message: "Invalid credentials"})

	assert.Equal(t, PhaseFailed, st.Phase)
	require.NotNil(t, st.Err)
	assert.Equal(t, ErrKindLoginFailed, st.Err.Kind)
	assert.Equal(t, "Invalid credentials", st.Err.Message)
}

func TestReportLogin_MissingIdentifier(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {})

	st := store.ReportLogin(&api.User{Email: "a@b.c"}, nil)

	assert.Equal(t, PhaseFailed, st.Phase)
	require.NotNil(t, st.Err)
	assert.Equal(t, ErrKindMalformedSession, st.Err.Kind)
}

func TestReportLogin_TerminalIdempotence(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {})

	user := &api.User{ID: "u1", Email: "a@b.c", IsAdmin: true}
	first := store.ReportLogin(user, nil)
	second := store.ReportLogin(user, nil)

	assert.Equal(t, first.Phase, second.Phase)
	assert.Equal(t, first.User, second.User)
}

func TestLogout_ClearsSessionAndToken(t *testing.T) {
	store, client := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"userId":"u1","accessToken":"tok"}`))
	})

	store.Bootstrap(context.Background())
	require.True(t, client.HasAccessToken())

	st := store.Logout(context.Background())

	assert.Equal(t, PhaseAnonymous, st.Phase)
	assert.Nil(t, st.User)
	assert.False(t, client.HasAccessToken())
}

func TestLogout_DiscardsInflightBootstrap(t *testing.T) {
	release := make(chan struct{})
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"userId":"u1"}`))
	})

	done := make(chan State, 1)
	go func() {
		done <- store.Bootstrap(context.Background())
	}()

	// Let the bootstrap request reach the server, then log out before
	// the response arrives.
	time.Sleep(50 * time.Millisecond)
	store.Logout(context.Background())
	close(release)

	<-done
	assert.Equal(t, PhaseAnonymous, store.Snapshot().Phase)
}

func TestLoginCmd_ReportsFailure(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	cmd := store.LoginCmd(context.Background(), "a@b.c", "nope")
	assert.Equal(t, PhaseAuthenticating, store.Snapshot().Phase)

	msg, ok := cmd().(LoginResultMsg)
	require.True(t, ok)
	assert.Equal(t, PhaseFailed, msg.State.Phase)
	require.NotNil(t, msg.State.Err)
	assert.Equal(t, "Invalid credentials", msg.State.Err.Message)
}

func TestErrorAutoClear(t *testing.T) {
	store := NewStore(api.NewClient("http://127.0.0.1:1"), Config{
		AuthTimeout: 200 * time.Millisecond,
		ErrorTTL:    50 * time.Millisecond,
	})

	st := store.Bootstrap(context.Background())
	require.NotNil(t, st.Err)

	assert.Eventually(t, func() bool {
		return store.Snapshot().Err == nil
	}, time.Second, 10*time.Millisecond)

	// Phase stays Failed after the error clears.
	assert.Equal(t, PhaseFailed, store.Snapshot().Phase)
}

func TestErrorClear_CancelledByNewTransition(t *testing.T) {
	store := NewStore(api.NewClient("http://127.0.0.1:1"), Config{
		AuthTimeout: 200 * time.Millisecond,
		ErrorTTL:    100 * time.Millisecond,
	})

	st := store.Bootstrap(context.Background())
	require.Equal(t, PhaseFailed, st.Phase)

	st = store.ReportLogin(&api.User{ID: "u1"}, nil)
	require.Equal(t, PhaseAuthenticated, st.Phase)

	time.Sleep(200 * time.Millisecond)
	st = store.Snapshot()
	assert.Equal(t, PhaseAuthenticated, st.Phase)
	require.NotNil(t, st.User)
	assert.Equal(t, "u1", st.User.ID)
}

func TestClearError_Manual(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	st := store.Bootstrap(context.Background())
	require.NotNil(t, st.Err)

	store.ClearError()
	st = store.Snapshot()
	assert.Nil(t, st.Err)
	assert.Equal(t, PhaseFailed, st.Phase)
}
