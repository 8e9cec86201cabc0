package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mateuszroksana/my-backend/internal/repository"
)

// OrderRepository implements repository.OrderRepository using an in-memory
// map. Used for development and testing.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]repository.Order
}

// NewOrderRepository creates a new in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]repository.Order)}
}

// Insert stores a new order with a generated id.
func (r *OrderRepository) Insert(ctx context.Context, order repository.Order) (repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = uuid.NewString()
	r.orders[order.ID] = order
	return order, nil
}

// ListAll returns every stored order.
func (r *OrderRepository) ListAll(ctx context.Context) ([]repository.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]repository.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

// UpdateStatus sets the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status repository.Status) (repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return repository.Order{}, repository.ErrNotFound
	}

	order.Status = status
	r.orders[id] = order
	return order, nil
}
