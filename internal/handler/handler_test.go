// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/rennsz/landing/internal/auth"
	"github.com/rennsz/landing/internal/model"
	"github.com/rennsz/landing/internal/session"
	"github.com/rennsz/landing/internal/store"
	"github.com/rennsz/landing/internal/testutil"
)

const testAdminPassword = "correct horse battery"

// testEnv is an API server over a repository with a cookie jar of one.
type testEnv struct {
	t      *testing.T
	repo   store.Repository
	sm     *scs.SessionManager
	h      *Handler
	router http.Handler
	cookie *http.Cookie
}

func newTestEnv(t *testing.T, repo store.Repository) *testEnv {
	t.Helper()

	sm := session.New(session.NewMemoryStore(), true)
	h := New(repo, sm)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	h.Routes(r, nil)

	return &testEnv{t: t, repo: repo, sm: sm, h: h, router: r}
}

// forEachRepo runs fn against a test server over every repository flavour.
func forEachRepo(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	for name, repo := range testutil.Repositories(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, newTestEnv(t, repo))
		})
	}
}

func (e *testEnv) createUser(username, password string, isAdmin bool) *model.User {
	e.t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(e.t, err)
	u, err := e.repo.CreateUser(context.Background(), model.User{Username: username, Password: hash, IsAdmin: isAdmin})
	require.NoError(e.t, err)
	return u
}

// do sends a request carrying the current session cookie and remembers
// any cookie the response sets.
func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	e.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	for _, c := range rr.Result().Cookies() {
		if c.Name != e.sm.Cookie.Name {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			e.cookie = nil
		} else {
			e.cookie = c
		}
	}
	return rr
}

func (e *testEnv) login(username, password string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(http.MethodPost, "/api/admin/login",
		`{"username":"`+username+`","password":"`+password+`"}`)
}

// loginAdmin creates an admin and signs in as them.
func (e *testEnv) loginAdmin() *model.User {
	e.t.Helper()

	u := e.createUser("admin", testAdminPassword, true)
	rr := e.login("admin", testAdminPassword)
	require.Equal(e.t, http.StatusOK, rr.Code, rr.Body.String())
	require.NotNil(e.t, e.cookie, "login should set a session cookie")
	return u
}

func (e *testEnv) setNow(now time.Time) {
	e.h.now = func() time.Time { return now }
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, rr)["error"]
}
