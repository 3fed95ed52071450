package cart

import "sync"

// Registry maps a session key to its cart, creating carts on first use.
// Carts vanish with the process; that is the session-scoped contract.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: map[string]*Cart{}}
}

func (r *Registry) Get(session string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[session]
	if !ok {
		c = New()
		r.carts[session] = c
	}
	return c
}

func (r *Registry) Drop(session string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, session)
}
