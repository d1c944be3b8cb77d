package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoicePayload(clientID, number, status string) string {
	statusField := ""
	if status != "" {
		statusField = fmt.Sprintf(`"status":%q,`, status)
	}
	return fmt.Sprintf(`{
		"clientId":%q,
		"invoiceNumber":%q,
		"issueDate":"2026-08-01T00:00:00Z",
		"dueDate":"2026-08-31T00:00:00Z",
		"amount":25.00,
		%s
		"notes":"net 30",
		"items":[
			{"description":"Design","quantity":2,"rate":10.00,"amount":20.00},
			{"description":"Hosting","quantity":1,"rate":5.00,"amount":5.00}
		]
	}`, clientID, number, statusField)
}

func TestInvoiceCreateAndGetWithItems(t *testing.T) {
	r, _ := setupTestApp(t)
	token := registerUser(t, r, "invoices@test.dev")
	clientID := createClient(t, r, token, "Billed Client")

	w := doJSON(t, r, http.MethodPost, "/api/invoices", token, invoicePayload(clientID, "INV-1", ""))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	assert.Equal(t, "draft", created["status"], "status defaults to draft")
	assert.NotContains(t, created, "items", "items are not echoed on create")
	invoiceID, _ := created["id"].(string)
	require.NotEmpty(t, invoiceID)

	w = doJSON(t, r, http.MethodGet, "/api/invoices/"+invoiceID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	invoice, _ := got["invoice"].(map[string]any)
	require.NotNil(t, invoice)
	assert.Equal(t, "INV-1", invoice["invoiceNumber"])

	items, _ := got["items"].([]any)
	require.Len(t, items, 2)
	first, _ := items[0].(map[string]any)
	second, _ := items[1].(map[string]any)
	assert.Equal(t, "Design", first["description"])
	assert.Equal(t, "Hosting", second["description"])
}

func TestInvoiceCreateRejectsUnknownClient(t *testing.T) {
	r, _ := setupTestApp(t)
	token := registerUser(t, r, "unknownclient@test.dev")

	w := doJSON(t, r, http.MethodPost, "/api/invoices", token,
		invoicePayload("00000000-0000-0000-0000-000000000001", "INV-X", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceCreateRejectsInvalidStatus(t *testing.T) {
	r, _ := setupTestApp(t)
	token := registerUser(t, r, "badstatus@test.dev")
	clientID := createClient(t, r, token, "Status Client")

	w := doJSON(t, r, http.MethodPost, "/api/invoices", token,
		invoicePayload(clientID, "INV-BAD", "overdue"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceUpdateReplacesFields(t *testing.T) {
	r, _ := setupTestApp(t)
	token := registerUser(t, r, "update@test.dev")
	clientID := createClient(t, r, token, "Update Client")

	w := doJSON(t, r, http.MethodPost, "/api/invoices", token, invoicePayload(clientID, "INV-2", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	invoiceID, _ := decodeBody(t, w)["id"].(string)

	update := fmt.Sprintf(`{
		"clientId":%q,
		"invoiceNumber":"INV-2-R1",
		"issueDate":"2026-08-02T00:00:00Z",
		"dueDate":"2026-09-15T00:00:00Z",
		"amount":30.00,
		"status":"sent",
		"notes":"extended terms"
	}`, clientID)
	w = doJSON(t, r, http.MethodPut, "/api/invoices/"+invoiceID, token, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody(t, w)
	assert.Equal(t, "INV-2-R1", updated["invoiceNumber"])
	assert.Equal(t, "sent", updated["status"])

	// Items survive invoice-level updates
	w = doJSON(t, r, http.MethodGet, "/api/invoices/"+invoiceID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	items, _ := decodeBody(t, w)["items"].([]any)
	assert.Len(t, items, 2)
}

func TestInvoiceDeleteThenNotFound(t *testing.T) {
	r, _ := setupTestApp(t)
	token := registerUser(t, r, "delete@test.dev")
	clientID := createClient(t, r, token, "Delete Client")

	w := doJSON(t, r, http.MethodPost, "/api/invoices", token, invoicePayload(clientID, "INV-3", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	invoiceID, _ := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodDelete, "/api/invoices/"+invoiceID, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/invoices/"+invoiceID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/invoices/"+invoiceID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceListIsolatedPerUser(t *testing.T) {
	r, _ := setupTestApp(t)
	tokenA := registerUser(t, r, "lista@test.dev")
	tokenB := registerUser(t, r, "listb@test.dev")
	clientID := createClient(t, r, tokenA, "List Client")

	w := doJSON(t, r, http.MethodPost, "/api/invoices", tokenA, invoicePayload(clientID, "INV-4", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	invoiceID, _ := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/invoices/"+invoiceID, tokenB, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/invoices", tokenB, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
