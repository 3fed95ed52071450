package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Menu      service.MenuServiceInterface
	Orders    service.OrderServiceInterface
	Analytics service.AnalyticsServiceInterface
	Carts     *cart.Registry
	QR        service.QRResolver
	Tables    []domain.Table
	Poller    *service.OrderPoller
	// Rankings is nil unless a ranking backend (Redis) is configured.
	Rankings service.PopularityRanking
}

func NewHandler(menu service.MenuServiceInterface, orders service.OrderServiceInterface,
	analytics service.AnalyticsServiceInterface, carts *cart.Registry,
	qr service.QRResolver, tables []domain.Table, poller *service.OrderPoller) *Handler {
	return &Handler{
		Menu:      menu,
		Orders:    orders,
		Analytics: analytics,
		Carts:     carts,
		QR:        qr,
		Tables:    tables,
		Poller:    poller,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/menu/categories", h.menuCategories).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/menu/{id}", h.deleteMenuItem).Methods("DELETE")
	r.HandleFunc("/api/menu/{id}/availability", h.toggleAvailability).Methods("POST")

	r.HandleFunc("/api/cart/{session}", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/{session}", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/{session}/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/{session}/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/{session}/items/{itemId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/orders", h.checkout).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.advanceOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/advance", h.advanceOrderNext).Methods("POST")

	r.HandleFunc("/api/tables", h.listTables).Methods("GET")
	r.HandleFunc("/api/tables/{number}/qr", h.tableQRLink).Methods("GET")
	r.HandleFunc("/api/tables/{number}/qrcode", h.tableQRCode).Methods("GET")

	r.HandleFunc("/api/analytics/summary", h.analyticsSummary).Methods("GET")
	r.HandleFunc("/api/analytics/popular", h.popularItems).Methods("GET")
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "tableside",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.Filter{
		Search:        q.Get("search"),
		Category:      q.Get("category"),
		AvailableOnly: q.Get("available") == "true",
	}
	items, err := h.Menu.List(filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Menu.Add(&item); err != nil {
		if errors.Is(err, service.ErrInvalidMenuItem) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = mux.Vars(r)["id"]
	if err := h.Menu.Update(&item); err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			http.Error(w, "Menu item not found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidMenuItem):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.Remove(mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			http.Error(w, "Menu item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleAvailability(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.ToggleAvailability(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			http.Error(w, "Menu item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) menuCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type cartView struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalPrice float64           `json:"total_price"`
	TotalItems int               `json:"total_items"`
}

func (h *Handler) cartResponse(c *cart.Cart) cartView {
	return cartView{
		Lines:      c.Lines(),
		TotalPrice: c.TotalPrice(),
		TotalItems: c.TotalItems(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c := h.Carts.Get(mux.Vars(r)["session"])
	writeJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Carts.Get(mux.Vars(r)["session"]).Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuItemID string `json:"menu_item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.Menu.Get(req.MenuItemID)
	if err != nil {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}

	c := h.Carts.Get(mux.Vars(r)["session"])
	if err := c.AddItem(*item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	c := h.Carts.Get(vars["session"])
	c.UpdateQuantity(vars["itemId"], req.Quantity)
	writeJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c := h.Carts.Get(vars["session"])
	c.RemoveItem(vars["itemId"])
	writeJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID    string `json:"session_id"`
		TableNumber  int    `json:"table_number"`
		CustomerName string `json:"customer_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.TableNumber <= 0 {
		http.Error(w, "Invalid table number", http.StatusBadRequest)
		return
	}

	c := h.Carts.Get(req.SessionID)
	order, err := h.Orders.Place(r.Context(), c, req.TableNumber, req.CustomerName)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) || errors.Is(err, service.ErrCustomerNameRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// listOrders serves the kitchen and tracking views. Reads go through the
// poller's snapshot when one is wired, so all views share the same
// coarse-grained refresh.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	var orders []domain.Order
	var err error

	if h.Poller != nil {
		orders = h.Poller.Snapshot()
	} else if orders, err = h.Orders.List(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		if !domain.OrderStatus(status).Valid() {
			http.Error(w, "Unknown order status", http.StatusBadRequest)
			return
		}
		filtered := []domain.Order{}
		for _, order := range orders {
			if order.Status == domain.OrderStatus(status) {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Advance(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrUnknownStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// advanceOrderNext moves an order one step along the lifecycle, for kitchen
// boards that step orders forward without naming the target status.
func (h *Handler) advanceOrderNext(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.AdvanceNext(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tables)
}

func (h *Handler) tableNumber(r *http.Request) (int, bool) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}

func (h *Handler) tableQRLink(w http.ResponseWriter, r *http.Request) {
	number, ok := h.tableNumber(r)
	if !ok {
		http.Error(w, "Invalid table number", http.StatusBadRequest)
		return
	}
	link := h.QR.Link(number)
	writeJSON(w, http.StatusOK, map[string]string{
		"link":      link,
		"image_url": h.QR.ImageURL(link),
	})
}

func (h *Handler) tableQRCode(w http.ResponseWriter, r *http.Request) {
	number, ok := h.tableNumber(r)
	if !ok {
		http.Error(w, "Invalid table number", http.StatusBadRequest)
		return
	}
	png, err := h.QR.PNG(number)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) analyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.Summary()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) popularItems(w http.ResponseWriter, r *http.Request) {
	if h.Rankings == nil {
		http.Error(w, "Popularity ranking not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 5
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	items, err := h.Rankings.TopItems(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
