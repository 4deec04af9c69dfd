// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rennsz/landing/internal/model"
	"github.com/rennsz/landing/internal/store"
)

func TestLogin_Success(t *testing.T) {
	forEachRepo(t, func(t *testing.T, env *testEnv) {
		admin := env.createUser("admin", testAdminPassword, true)

		rr := env.login("admin", testAdminPassword)
		require.Equal(t, http.StatusOK, rr.Code)

		got := decodeBody[model.Identity](t, rr)
		assert.Equal(t, model.Identity{ID: admin.ID, Username: "admin", IsAdmin: true}, got)
		assert.NotContains(t, rr.Body.String(), "password")

		me := env.do(http.MethodGet, "/api/admin/me", "")
		require.Equal(t, http.StatusOK, me.Code)
		assert.Equal(t, got, decodeBody[model.Identity](t, me))
	})
}

func TestLogin_RenewsSessionToken(t *testing.T) {
	env := newTestEnv(t, store.NewMemory())
	env.loginAdmin()
	before := env.cookie.Value

	rr := env.login("admin", testAdminPassword)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, env.cookie)
	assert.NotEqual(t, before, env.cookie.Value)
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	forEachRepo(t, func(t *testing.T, env *testEnv) {
		env.createUser("admin", testAdminPassword, true)

		unknown := env.login("nobody", testAdminPassword)
		wrong := env.login("admin", "not the password")

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, unknown.Code, wrong.Code)
		assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())
		assert.Equal(t, msgInvalidCredentials, errorMessage(t, wrong))
		assert.Nil(t, env.cookie)
	})
}

func TestLogin_UsernameIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t, store.NewMemory())
	env.createUser("admin", testAdminPassword, true)

	rr := env.login("Admin", testAdminPassword)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_NonAdminRejected(t *testing.T) {
	forEachRepo(t, func(t *testing.T, env *testEnv) {
		env.createUser("viewer", "viewer-password", false)

		rr := env.login("viewer", "viewer-password")
		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Not authorized", errorMessage(t, rr))
		assert.Nil(t, env.cookie, "no session may be retained")

		me := env.do(http.MethodGet, "/api/admin/me", "")
		assert.Equal(t, http.StatusUnauthorized, me.Code)
	})
}

func TestLogin_BadRequests(t *testing.T) {
	env := newTestEnv(t, store.NewMemory())

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{"username":`, wantMsg: msgInvalidJSON},
		{name: "missing password", body: `{"username":"admin"}`, wantMsg: msgCredentialsRequired},
		{name: "empty body", body: `{}`, wantMsg: msgCredentialsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/api/admin/login", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rr))
		})
	}
}

func TestLogin_MalformedStoredHash(t *testing.T) {
	env := newTestEnv(t, store.NewMemory())
	_, err := env.repo.CreateUser(context.Background(), model.User{Username: "admin", Password: "not-a-hash", IsAdmin: true})
	require.NoError(t, err)

	rr := env.login("admin", "anything")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, msgInternalError, errorMessage(t, rr))
}

func TestLogout(t *testing.T) {
	forEachRepo(t, func(t *testing.T, env *testEnv) {
		env.loginAdmin()

		rr := env.do(http.MethodPost, "/api/admin/logout", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true}`, rr.Body.String())

		me := env.do(http.MethodGet, "/api/admin/me", "")
		assert.Equal(t, http.StatusUnauthorized, me.Code)
		assert.Equal(t, "Not authenticated", errorMessage(t, me))
	})
}

func TestLogout_WithoutSession(t *testing.T) {
	env := newTestEnv(t, store.NewMemory())

	rr := env.do(http.MethodPost, "/api/admin/logout", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
}

func TestMe_Anonymous(t *testing.T) {
	env := newTestEnv(t, store.NewMemory())

	rr := env.do(http.MethodGet, "/api/admin/me", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Not authenticated", errorMessage(t, rr))
}

func TestChangePassword(t *testing.T) {
	forEachRepo(t, func(t *testing.T, env *testEnv) {
		env.loginAdmin()

		rr := env.do(http.MethodPost, "/api/admin/change-password", `{"currentPassword":"","newPassword":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgPasswordsRequired, errorMessage(t, rr))

		rr = env.do(http.MethodPost, "/api/admin/change-password", `{"currentPassword":"wrong","newPassword":"new-secret"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgCurrentPasswordWrong, errorMessage(t, rr))

		rr = env.do(http.MethodPost, "/api/admin/change-password",
			`{"currentPassword":"`+testAdminPassword+`","newPassword":"new-secret"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"message":"Password updated successfully"}`, rr.Body.String())

		// The session survives the change.
		me := env.do(http.MethodGet, "/api/admin/me", "")
		assert.Equal(t, http.StatusOK, me.Code)

		env.do(http.MethodPost, "/api/admin/logout", "")
		assert.Equal(t, http.StatusUnauthorized, env.login("admin", testAdminPassword).Code)
		assert.Equal(t, http.StatusOK, env.login("admin", "new-secret").Code)
	})
}

func TestChangePassword_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t, store.NewMemory())

	rr := env.do(http.MethodPost, "/api/admin/change-password", `{"currentPassword":"a","newPassword":"b"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
