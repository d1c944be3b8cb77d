package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	r, _ := setupTestApp(t)

	token := registerUser(t, r, "owner@test.dev")
	require.NotEmpty(t, token)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "",
		`{"email":"owner@test.dev","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody(t, w)
	loginToken, _ := resp["token"].(string)
	require.NotEmpty(t, loginToken)

	w = doJSON(t, r, http.MethodGet, "/auth/me", loginToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)
	user, _ := me["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "owner@test.dev", user["email"])
	assert.Equal(t, "Test User", user["name"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := setupTestApp(t)

	registerUser(t, r, "dup@test.dev")

	w := doJSON(t, r, http.MethodPost, "/auth/register", "",
		`{"email":"dup@test.dev","password":"password123","name":"Other"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r, _ := setupTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "",
		`{"email":"short@test.dev","password":"short","name":"S"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupTestApp(t)

	registerUser(t, r, "locked@test.dev")

	w := doJSON(t, r, http.MethodPost, "/auth/login", "",
		`{"email":"locked@test.dev","password":"not-the-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupTestApp(t)

	for _, path := range []string{"/api/clients", "/api/invoices", "/api/dashboard"} {
		w := doJSON(t, r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doJSON(t, r, http.MethodGet, "/api/clients", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
