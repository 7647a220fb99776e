package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"retail-backoffice-api/internal/handler"
	"retail-backoffice-api/internal/repository"
	"retail-backoffice-api/internal/router"
	"retail-backoffice-api/internal/service"

	"github.com/stretchr/testify/require"
)

// testAPI bundles a router wired to an in-memory store.
type testAPI struct {
	router http.Handler
	store  *repository.MemoryStore
}

func newTestAPI() *testAPI {
	store := repository.NewMemoryStore()

	itemService := service.NewItemService(store)
	inventoryService := service.NewInventoryService(store, store)
	purchaseService := service.NewPurchaseService(store)

	r := router.New(router.Config{
		Health:    handler.NewHealthHandler(store, "test"),
		Items:     handler.NewItemHandler(itemService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Purchases: handler.NewPurchaseHandler(purchaseService),
	})

	return &testAPI{router: r, store: store}
}

// do performs a JSON request against the API.
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// doRaw performs a request with a raw string body.
func (a *testAPI) doRaw(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

// errorBody mirrors the error envelope written by pkg/response.
type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func (e errorBody) hasDetail(field string) bool {
	for _, d := range e.Error.Details {
		if d.Field == field {
			return true
		}
	}
	return false
}

// resultBody mirrors the success envelope written by pkg/response.
type resultBody struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}
