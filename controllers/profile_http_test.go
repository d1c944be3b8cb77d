package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGetAndUpdate(t *testing.T) {
	r, _ := setupTestApp(t)
	token := registerUser(t, r, "profile@test.dev")

	w := doJSON(t, r, http.MethodGet, "/auth/profile", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody(t, w)
	assert.Equal(t, "Test User", profile["name"])
	assert.Equal(t, "Test Co", profile["company"])
	assert.Equal(t, true, profile["paymentRemindersEnabled"])

	w = doJSON(t, r, http.MethodPut, "/auth/profile", token,
		`{"name":"Renamed","company":"New Co"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/auth/profile/notifications", token,
		`{"paymentRemindersEnabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/auth/profile", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	profile = decodeBody(t, w)
	assert.Equal(t, "Renamed", profile["name"])
	assert.Equal(t, "New Co", profile["company"])
	assert.Equal(t, false, profile["paymentRemindersEnabled"])
}

func TestReminderLogHistoryEmpty(t *testing.T) {
	r, _ := setupTestApp(t)
	token := registerUser(t, r, "history@test.dev")

	w := doJSON(t, r, http.MethodGet, "/api/reminders", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
