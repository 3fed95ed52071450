package cart

import (
	"errors"
	"sync"

	"tableside/internal/domain"
)

// ErrItemUnavailable is returned when an item whose availability flag is
// off is added; the cart is left untouched.
var ErrItemUnavailable = errors.New("menu item is not available")

// Cart holds one browsing session's selected items. It lives in memory
// only and is never persisted; checkout drains it into an order.
type Cart struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// AddItem increments the quantity of an existing line for the same item id,
// or appends a new line at quantity 1.
func (c *Cart) AddItem(item domain.MenuItem) error {
	if !item.Availability {
		return ErrItemUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return nil
		}
	}
	c.lines = append(c.lines, domain.CartLine{Item: item, Quantity: 1})
	return nil
}

// UpdateQuantity sets the line's quantity; zero or below removes the line.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line; removing an absent id is a no-op.
func (c *Cart) RemoveItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// TotalPrice sums price times quantity over all lines. Rounding to currency
// precision is the presentation layer's job, not the cart's.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]domain.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}
