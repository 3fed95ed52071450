package domain

import "time"

// PlaceholderImage replaces any menu item image that is missing or broken.
const PlaceholderImage = "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=400"

type MenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
	Availability bool    `json:"availability"`
}

// CartLine pairs a menu item snapshot with the quantity selected in one
// session. Quantity is always >= 1; a line at zero is removed, not kept.
type CartLine struct {
	Item     MenuItem `json:"item"`
	Quantity int      `json:"quantity"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// nextStatus is the full transition table: each state has exactly one legal
// successor and delivered is terminal. Skipping states is rejected.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// Next returns the legal successor status, or false for delivered.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	return nextStatus[s] == target
}

type Order struct {
	ID           string      `json:"id"`
	TableNumber  int         `json:"table_number"`
	CustomerName string      `json:"customer_name,omitempty"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Items        []OrderLine `json:"items"`
}

// OrderLine copies the menu item's name and price at order time. Later
// catalog edits must never change what a past order shows or charged.
type OrderLine struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"order_id"`
	MenuItemID   string  `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

type Table struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Seats     int    `json:"seats"`
	QRCodeURL string `json:"qr_code_url"`
}

type OrderEvent struct {
	Type        string      `json:"type"`
	OrderID     string      `json:"order_id"`
	TableNumber int         `json:"table_number"`
	Status      OrderStatus `json:"status"`
	Items       []OrderLine `json:"items,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

const (
	EventOrderPlaced   = "order_placed"
	EventStatusChanged = "status_changed"
)
