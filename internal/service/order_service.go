package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/storage"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUnknownStatus        = errors.New("unknown order status")
	ErrInvalidTransition    = errors.New("illegal status transition")
)

type OrderService struct {
	repo         OrderRepository
	publisher    OrderPublisher
	paymentDelay time.Duration
}

// NewOrderService builds the order lifecycle manager. publisher may be nil;
// paymentDelay stands in for a payment gateway round trip and is zero in
// tests.
func NewOrderService(repo OrderRepository, publisher OrderPublisher, paymentDelay time.Duration) *OrderService {
	return &OrderService{
		repo:         repo,
		publisher:    publisher,
		paymentDelay: paymentDelay,
	}
}

// Place snapshots the cart into a new pending order, persists it and clears
// the cart. The order lines copy item id, name and current price, so later
// catalog edits never change past orders.
func (s *OrderService) Place(ctx context.Context, c *cart.Cart, tableNumber int, customerName string) (*domain.Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrCustomerNameRequired
	}
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if s.paymentDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.paymentDelay):
		}
	}

	now := time.Now()
	order := domain.Order{
		ID:           newID(),
		TableNumber:  tableNumber,
		CustomerName: customerName,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, line := range lines {
		order.Items = append(order.Items, domain.OrderLine{
			ID:           fmt.Sprintf("%s-%d", order.ID, i),
			OrderID:      order.ID,
			MenuItemID:   line.Item.ID,
			MenuItemName: line.Item.Name,
			Quantity:     line.Quantity,
			Price:        line.Item.Price,
		})
		order.TotalAmount += line.Item.Price * float64(line.Quantity)
	}

	if err := s.repo.AppendOrder(order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	c.Clear()

	s.publish(ctx, domain.OrderEvent{
		Type:        domain.EventOrderPlaced,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Status:      order.Status,
		Items:       order.Items,
		Timestamp:   now,
	})

	log.Printf("[orders] placed order %s for table %d, total %.2f", order.ID, tableNumber, order.TotalAmount)
	return &order, nil
}

// Advance moves an order to target if and only if target is the immediate
// successor of the current status. Unknown ids are reported, not swallowed.
func (s *OrderService) Advance(ctx context.Context, id string, target domain.OrderStatus) (*domain.Order, error) {
	if !target.Valid() {
		return nil, ErrUnknownStatus
	}

	order, err := s.repo.GetOrder(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.CanAdvanceTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	now := time.Now()
	if err := s.repo.UpdateOrderStatus(id, target, now); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	order.Status = target
	order.UpdatedAt = now

	s.publish(ctx, domain.OrderEvent{
		Type:        domain.EventStatusChanged,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Status:      target,
		Timestamp:   now,
	})

	log.Printf("[orders] order %s advanced to %s", id, target)
	return order, nil
}

// AdvanceNext moves an order one step along the lifecycle, the way the
// kitchen board's next button does, without the caller naming the target.
func (s *OrderService) AdvanceNext(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next, ok := order.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, order.Status)
	}
	return s.Advance(ctx, id, next)
}

func (s *OrderService) Get(id string) (*domain.Order, error) {
	order, err := s.repo.GetOrder(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.repo.LoadOrders()
}

// ByStatus filters the order collection, preserving insertion order.
func (s *OrderService) ByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.repo.LoadOrders()
	if err != nil {
		return nil, err
	}

	matched := []domain.Order{}
	for _, order := range orders {
		if order.Status == status {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("[orders] publish %s for order %s failed: %v", event.Type, event.OrderID, err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
