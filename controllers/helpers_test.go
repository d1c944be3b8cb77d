package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"invoicing-backend/config"
	"invoicing-backend/models"
	"invoicing-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.ReminderLog{},
	))

	cfg := config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	return routes.SetupRouter(db, cfg, zap.NewNop()), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser creates an account via the API and returns its token.
func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123","name":"Test User","company":"Test Co"}`, email)
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	token, ok := resp["token"].(string)
	require.True(t, ok, "register response has no token")
	return token
}

// createClient creates a client over the API and returns its id.
func createClient(t *testing.T, r *gin.Engine, token, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":"c@test.dev","phone":"+15550003333","companyName":"Client Co","address":"2 Side St"}`, name)
	w := doJSON(t, r, http.MethodPost, "/api/clients", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	id, ok := resp["id"].(string)
	require.True(t, ok, "client response has no id")
	return id
}
