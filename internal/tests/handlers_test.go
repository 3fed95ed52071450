package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "tableside/internal/api/http"
	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires real services over a temp-dir file store, the same
// shape main assembles, minus Kafka and the background poller.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := newFileStore(t)

	handler := httpapi.NewHandler(
		service.NewMenuService(store),
		service.NewOrderService(store, nil, 0),
		service.NewAnalyticsService(store),
		cart.NewRegistry(),
		service.QRResolver{BaseURL: "https://restaurant.com"},
		domain.SeedTables("https://restaurant.com"),
		nil,
	)

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuHandlers(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/menu", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []domain.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 8)

	w = doJSON(t, r, "GET", "/api/menu?category=Pizza", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	w = doJSON(t, r, "POST", "/api/menu", `{"name":"Tiramisu","description":"Espresso-soaked","price":7.49,"category":"Desserts","availability":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.PlaceholderImage, created.ImageURL)

	w = doJSON(t, r, "POST", "/api/menu", `{"name":"","description":"","price":0,"category":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/menu/"+created.ID+"/availability", "")
	require.Equal(t, http.StatusOK, w.Code)
	var toggled domain.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.False(t, toggled.Availability)

	w = doJSON(t, r, "DELETE", "/api/menu/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "DELETE", "/api/menu/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", "/api/menu/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Contains(t, categories, "Pizza")
}

func TestCartAndCheckoutFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/cart/s1/items", `{"menu_item_id":"1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, "POST", "/api/cart/s1/items", `{"menu_item_id":"2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Lines      []domain.CartLine `json:"lines"`
		TotalPrice float64           `json:"total_price"`
		TotalItems int               `json:"total_items"`
	}
	w = doJSON(t, r, "GET", "/api/cart/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Lines, 2)
	assert.Equal(t, 2, view.TotalItems)
	assert.InDelta(t, 28.98, view.TotalPrice, 1e-9)

	// unknown item
	w = doJSON(t, r, "POST", "/api/cart/s1/items", `{"menu_item_id":"404"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// checkout without a name fails and mutates nothing
	w = doJSON(t, r, "POST", "/api/orders", `{"session_id":"s1","table_number":3,"customer_name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/orders", `{"session_id":"s1","table_number":3,"customer_name":"John"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.InDelta(t, 28.98, order.TotalAmount, 1e-9)
	assert.Len(t, order.Items, 2)

	// cart drained by checkout
	w = doJSON(t, r, "GET", "/api/cart/s1", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Lines)

	// checkout again on the empty cart
	w = doJSON(t, r, "POST", "/api/orders", `{"session_id":"s1","table_number":3,"customer_name":"John"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// tracking view
	w = doJSON(t, r, "GET", "/api/orders/"+order.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/orders/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderStatusHandlers(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, "POST", "/api/cart/s1/items", `{"menu_item_id":"1"}`)
	w := doJSON(t, r, "POST", "/api/orders", `{"session_id":"s1","table_number":1,"customer_name":"Jane"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	// kitchen queue
	w = doJSON(t, r, "GET", "/api/orders?status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	w = doJSON(t, r, "GET", "/api/orders?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// skipping a state is rejected
	w = doJSON(t, r, "POST", "/api/orders/"+order.ID+"/status", `{"status":"delivered"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/orders/"+order.ID+"/status", `{"status":"preparing"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/api/orders/unknown/status", `{"status":"preparing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", "/api/orders?status=preparing", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)

	// stepping forward without naming the target
	w = doJSON(t, r, "POST", "/api/orders/"+order.ID+"/advance", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, domain.StatusReady, order.Status)

	w = doJSON(t, r, "POST", "/api/orders/"+order.ID+"/advance", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, domain.StatusDelivered, order.Status)

	// delivered is terminal
	w = doJSON(t, r, "POST", "/api/orders/"+order.ID+"/advance", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/orders/unknown/advance", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTableHandlers(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/tables", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tables []domain.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tables))
	assert.Len(t, tables, 5)

	w = doJSON(t, r, "GET", "/api/tables/3/qr", "")
	require.Equal(t, http.StatusOK, w.Code)
	var qr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &qr))
	assert.Equal(t, "https://restaurant.com/menu?table=3", qr["link"])
	assert.Contains(t, qr["image_url"], "api.qrserver.com")

	w = doJSON(t, r, "GET", "/api/tables/3/qrcode", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = doJSON(t, r, "GET", "/api/tables/0/qr", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsSummaryHandler(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, "POST", "/api/cart/s1/items", `{"menu_item_id":"1"}`)
	doJSON(t, r, "POST", "/api/cart/s1/items", `{"menu_item_id":"1"}`)
	w := doJSON(t, r, "POST", "/api/orders", `{"session_id":"s1","table_number":2,"customer_name":"Jane"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/api/analytics/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary service.SalesSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalOrders)
	assert.InDelta(t, 25.98, summary.TotalRevenue, 1e-9)
	require.Len(t, summary.TopItems, 1)
	assert.Equal(t, 2, summary.TopItems[0].Quantity)
}

func TestPopularItemsHandler(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, store.IncrementItemSales(ctx, "Margherita Pizza", 3))
	require.NoError(t, store.IncrementItemSales(ctx, "Caesar Salad", 1))

	handler := httpapi.NewHandler(
		service.NewMenuService(store),
		service.NewOrderService(store, nil, 0),
		service.NewAnalyticsService(store),
		cart.NewRegistry(),
		service.QRResolver{BaseURL: "https://restaurant.com"},
		domain.SeedTables("https://restaurant.com"),
		nil,
	)
	handler.Rankings = store
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	w := doJSON(t, r, "GET", "/api/analytics/popular", "")
	require.Equal(t, http.StatusOK, w.Code)
	var top []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &top))
	assert.Equal(t, []string{"Margherita Pizza", "Caesar Salad"}, top)

	w = doJSON(t, r, "GET", "/api/analytics/popular?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &top))
	assert.Equal(t, []string{"Margherita Pizza"}, top)
}

func TestPopularItemsHandlerWithoutRankingBackend(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/analytics/popular", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
