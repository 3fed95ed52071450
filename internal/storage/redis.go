package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tableside/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	redisMenuKey    = "tableside:menu"
	redisOrdersKey  = "tableside:orders"
	redisPopularKey = "tableside:popular:items"
)

// RedisStore persists the menu and order collections as JSON blobs, keeping
// the same wholesale read/replace contract as the file store, and maintains
// a sorted set of item sales for popularity rankings.
type RedisStore struct {
	Client *redis.Client
	ctx    context.Context
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		Client: client,
		ctx:    context.Background(),
	}
}

func (s *RedisStore) LoadMenu() ([]domain.MenuItem, error) {
	raw, err := s.Client.Get(s.ctx, redisMenuKey).Result()
	if err == redis.Nil {
		return domain.SeedMenu(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	var items []domain.MenuItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return domain.SeedMenu(), nil
	}
	return items, nil
}

func (s *RedisStore) SaveMenu(items []domain.MenuItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Client.Set(s.ctx, redisMenuKey, raw, 0).Err()
}

func (s *RedisStore) LoadOrders() ([]domain.Order, error) {
	raw, err := s.Client.Get(s.ctx, redisOrdersKey).Result()
	if err == redis.Nil {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	orders := []domain.Order{}
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

func (s *RedisStore) saveOrders(orders []domain.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return s.Client.Set(s.ctx, redisOrdersKey, raw, 0).Err()
}

func (s *RedisStore) GetOrder(id string) (*domain.Order, error) {
	orders, err := s.LoadOrders()
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *RedisStore) AppendOrder(order domain.Order) error {
	orders, err := s.LoadOrders()
	if err != nil {
		return err
	}
	return s.saveOrders(append(orders, order))
}

func (s *RedisStore) UpdateOrderStatus(id string, status domain.OrderStatus, updatedAt time.Time) error {
	orders, err := s.LoadOrders()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			orders[i].UpdatedAt = updatedAt
			return s.saveOrders(orders)
		}
	}
	return ErrNotFound
}

func (s *RedisStore) IncrementItemSales(ctx context.Context, itemName string, quantity int) error {
	return s.Client.ZIncrBy(ctx, redisPopularKey, float64(quantity), itemName).Err()
}

// TopItems returns up to n item names ranked by quantity sold, best first.
func (s *RedisStore) TopItems(ctx context.Context, n int) ([]string, error) {
	return s.Client.ZRevRange(ctx, redisPopularKey, 0, int64(n-1)).Result()
}
