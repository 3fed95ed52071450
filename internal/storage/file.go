package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tableside/internal/domain"
)

// ErrNotFound is returned by every backend when a record id is absent.
var ErrNotFound = errors.New("record not found")

const (
	keyMenu   = "menu"
	keyOrders = "orders"
)

// FileStore keeps the whole state as one JSON document on disk with an
// in-memory mirror, so a write is immediately visible to the next read.
// A missing or unparseable file falls back to empty state; callers get
// defaults, never a startup error.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path: path,
		data: map[string]json.RawMessage{},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[store] cannot read %s, starting empty: %v", path, err)
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("[store] corrupt state file %s, starting empty: %v", path, err)
		s.data = map[string]json.RawMessage{}
	}
	return s
}

// read unmarshals the value under key into dest. Returns false when the key
// is absent or the stored value does not parse as dest's shape.
func (s *FileStore) read(key string, dest interface{}) bool {
	raw, ok := s.data[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[store] malformed value for %q, using default: %v", key, err)
		return false
	}
	return true
}

func (s *FileStore) write(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	s.data[key] = raw
	return s.flush()
}

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (s *FileStore) LoadMenu() ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.MenuItem
	if !s.read(keyMenu, &items) {
		return domain.SeedMenu(), nil
	}
	return items, nil
}

func (s *FileStore) SaveMenu(items []domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(keyMenu, items)
}

func (s *FileStore) LoadOrders() ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrdersLocked(), nil
}

func (s *FileStore) loadOrdersLocked() []domain.Order {
	orders := []domain.Order{}
	s.read(keyOrders, &orders)
	return orders
}

func (s *FileStore) GetOrder(id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.loadOrdersLocked() {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) AppendOrder(order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := append(s.loadOrdersLocked(), order)
	return s.write(keyOrders, orders)
}

func (s *FileStore) UpdateOrderStatus(id string, status domain.OrderStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.loadOrdersLocked()
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			orders[i].UpdatedAt = updatedAt
			return s.write(keyOrders, orders)
		}
	}
	return ErrNotFound
}
