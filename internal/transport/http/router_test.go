package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders-api/internal/auth"
	"github.com/vladislavdragonenkov/orders-api/internal/domain"
	"github.com/vladislavdragonenkov/orders-api/internal/service/orders"
	"github.com/vladislavdragonenkov/orders-api/internal/storage/memory"
	httpapi "github.com/vladislavdragonenkov/orders-api/internal/transport/http"
)

type testAPI struct {
	router *gin.Engine
	guard  *auth.Guard
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	creds := memory.NewCredentialStore(domain.Credential{Username: "admin", PasswordHash: hash})
	tokens, err := auth.NewTokenManager("test-secret", time.Minute)
	require.NoError(t, err)
	guard := auth.NewGuard(creds, tokens, nil)

	svc := orders.NewService(memory.NewOrderRepository(), nil, nil)
	router := httpapi.NewRouter(svc, guard, nil, nil)

	return &testAPI{router: router, guard: guard}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func orderBody(id string) map[string]any {
	return map[string]any{
		"orderNumber":  id,
		"totalValue":   100,
		"creationDate": "2024-05-01T10:30:00Z",
		"items": []map[string]any{
			{"itemId": 7, "itemQuantity": 2, "itemValue": 50},
		},
	}
}

func TestAPI_CreateAndGetOrder(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	rec := api.do(t, http.MethodPost, "/orders", token, orderBody("A1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Message string `json:"message"`
		Order   struct {
			OrderID string `json:"orderId"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "order created successfully", created.Message)
	assert.Equal(t, "A1", created.Order.OrderID)

	rec = api.do(t, http.MethodGet, "/orders/A1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		OrderID string          `json:"orderId"`
		Value   json.RawMessage `json:"value"`
		Items   []struct {
			ProductID int64 `json:"productId"`
			Quantity  int32 `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "A1", got.OrderID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(7), got.Items[0].ProductID)
	assert.Equal(t, int32(2), got.Items[0].Quantity)
}

func TestAPI_CreateRejectsWithoutToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/orders", "", orderBody("A1"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestAPI_CreateRejectsBadToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/orders", "garbage", orderBody("A1"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAPI_CreateValidation(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	body := orderBody("A1")
	delete(body, "items")

	rec := api.do(t, http.MethodPost, "/orders", token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "items")
}

func TestAPI_CreateMalformedJSON(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestAPI_CreateDuplicateConflict(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	rec := api.do(t, http.MethodPost, "/orders", token, orderBody("A1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/orders", token, orderBody("A1"))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "order already exists")
}

func TestAPI_GetMissingOrder(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/orders/ghost", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "order not found")
}

func TestAPI_ListOrders(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	for _, id := range []string{"A1", "B2"} {
		rec := api.do(t, http.MethodPost, "/orders", token, orderBody(id))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := api.do(t, http.MethodGet, "/orders/list", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "A1", list[0].OrderID)
	assert.Equal(t, "B2", list[1].OrderID)
}

func TestAPI_UpdateOrder(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	rec := api.do(t, http.MethodPost, "/orders", token, orderBody("A1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	updated := orderBody("A1")
	updated["totalValue"] = 250
	rec = api.do(t, http.MethodPut, "/orders/A1", token, updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "order updated successfully")

	rec = api.do(t, http.MethodGet, "/orders/A1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "250")
}

// PUT с пустым списком позиций очищает заказ.
func TestAPI_UpdateClearsItems(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	rec := api.do(t, http.MethodPost, "/orders", token, orderBody("A1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	cleared := orderBody("A1")
	cleared["items"] = []map[string]any{}
	rec = api.do(t, http.MethodPut, "/orders/A1", token, cleared)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/orders/A1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Items []struct{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got.Items)
}

func TestAPI_UpdateMissingOrder(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	rec := api.do(t, http.MethodPut, "/orders/ghost", token, orderBody("ghost"))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_DeleteOrder(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	rec := api.do(t, http.MethodPost, "/orders", token, orderBody("A1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodDelete, "/orders/A1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "order deleted successfully")

	rec = api.do(t, http.MethodGet, "/orders/A1", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_DeleteMissingOrder(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	rec := api.do(t, http.MethodDelete, "/orders/ghost", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_LoginWrongPassword(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

// Пустые поля и несуществующий пользователь неотличимы в ответе.
func TestAPI_LoginEmptyFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/login", "", map[string]string{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

// Числовой и строковый itemId принимаются одинаково.
func TestAPI_CreateAcceptsStringItemID(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t)

	body := orderBody("A1")
	body["items"] = []map[string]any{
		{"itemId": "7", "itemQuantity": 2, "itemValue": 50},
	}

	rec := api.do(t, http.MethodPost, "/orders", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
}
