package service

import (
	"context"
	"time"

	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/storage"
)

type MenuRepository interface {
	LoadMenu() ([]domain.MenuItem, error)
	SaveMenu(items []domain.MenuItem) error
}

type OrderRepository interface {
	LoadOrders() ([]domain.Order, error)
	GetOrder(id string) (*domain.Order, error)
	AppendOrder(order domain.Order) error
	UpdateOrderStatus(id string, status domain.OrderStatus, updatedAt time.Time) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

// SalesRanker records item sales for popularity rankings.
type SalesRanker interface {
	IncrementItemSales(ctx context.Context, itemName string, quantity int) error
}

// PopularityRanking reads back the ranking the event consumer maintains.
type PopularityRanking interface {
	TopItems(ctx context.Context, n int) ([]string, error)
}

type MenuServiceInterface interface {
	List(f Filter) ([]domain.MenuItem, error)
	Get(id string) (*domain.MenuItem, error)
	Categories() ([]string, error)
	Add(item *domain.MenuItem) error
	Update(item *domain.MenuItem) error
	Remove(id string) error
	ToggleAvailability(id string) (*domain.MenuItem, error)
}

type OrderServiceInterface interface {
	Place(ctx context.Context, c *cart.Cart, tableNumber int, customerName string) (*domain.Order, error)
	Advance(ctx context.Context, id string, target domain.OrderStatus) (*domain.Order, error)
	AdvanceNext(ctx context.Context, id string) (*domain.Order, error)
	Get(id string) (*domain.Order, error)
	List() ([]domain.Order, error)
	ByStatus(status domain.OrderStatus) ([]domain.Order, error)
}

type AnalyticsServiceInterface interface {
	Summary() (*SalesSummary, error)
}

var (
	_ MenuRepository    = (*storage.FileStore)(nil)
	_ OrderRepository   = (*storage.FileStore)(nil)
	_ MenuRepository    = (*storage.RedisStore)(nil)
	_ OrderRepository   = (*storage.RedisStore)(nil)
	_ MenuRepository    = (*storage.PostgresStore)(nil)
	_ OrderRepository   = (*storage.PostgresStore)(nil)
	_ OrderPublisher    = (*storage.KafkaPublisher)(nil)
	_ SalesRanker       = (*storage.RedisStore)(nil)
	_ PopularityRanking = (*storage.RedisStore)(nil)
)
