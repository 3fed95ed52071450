package service

import (
	"context"
	"log"
	"sync"
	"time"

	"tableside/internal/domain"
)

// OrderPoller re-reads the persisted order collection at a fixed interval
// and replaces its snapshot wholesale. No deltas, no backoff; readers see
// at most one interval of staleness. Stop releases the timer.
type OrderPoller struct {
	repo     OrderRepository
	interval time.Duration

	mu     sync.RWMutex
	orders []domain.Order

	cancel context.CancelFunc
	done   chan struct{}
}

func NewOrderPoller(repo OrderRepository, interval time.Duration) *OrderPoller {
	return &OrderPoller{
		repo:     repo,
		interval: interval,
	}
}

func (p *OrderPoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.refresh()

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.refresh()
			}
		}
	}()
}

func (p *OrderPoller) refresh() {
	orders, err := p.repo.LoadOrders()
	if err != nil {
		log.Printf("[poller] refresh failed, keeping last snapshot: %v", err)
		return
	}
	p.mu.Lock()
	p.orders = orders
	p.mu.Unlock()
}

// Snapshot returns a copy of the orders read at the last poll.
func (p *OrderPoller) Snapshot() []domain.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	orders := make([]domain.Order, len(p.orders))
	copy(orders, p.orders)
	return orders
}

func (p *OrderPoller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}
