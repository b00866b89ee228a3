package order

import (
	"context"
	"sync"
	"time"
)

// Repository is the order store. Orders are append-only; the only mutation is
// a conditional status transition.
type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByMarket(ctx context.Context, marketID string) ([]*Order, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	GetAll(ctx context.Context) ([]*Order, error)

	// UpdateStatus moves the order from -> to and stamps the matching
	// timestamp with at. It fails with ErrInvalidTransition when the stored
	// status is not from.
	UpdateStatus(ctx context.Context, id string, from, to OrderStatus, at time.Time) (*Order, error)
}

type repository struct {
	mu     sync.RWMutex
	order  []string
	orders map[string]*Order
}

func NewRepository() Repository {
	return &repository{orders: make(map[string]*Order)}
}

func (r *repository) Create(_ context.Context, o *Order) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return nil, ErrDuplicateOrder
	}
	r.orders[o.ID] = o.clone()
	r.order = append(r.order, o.ID)
	return o.clone(), nil
}

func (r *repository) GetByID(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o.clone(), nil
}

func (r *repository) GetByMarket(_ context.Context, marketID string) ([]*Order, error) {
	return r.filter(func(o *Order) bool { return o.MarketID == marketID }), nil
}

func (r *repository) GetByCustomer(_ context.Context, customerID string) ([]*Order, error) {
	return r.filter(func(o *Order) bool { return o.CustomerID == customerID }), nil
}

func (r *repository) GetAll(_ context.Context) ([]*Order, error) {
	return r.filter(func(*Order) bool { return true }), nil
}

func (r *repository) UpdateStatus(_ context.Context, id string, from, to OrderStatus, at time.Time) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if o.Status != from || !CanTransition(from, to) {
		return nil, ErrInvalidTransition
	}

	o.Status = to
	switch to {
	case StatusConfirmed:
		o.ConfirmedAt = &at
	case StatusCancelled:
		o.CancelledAt = &at
	}
	return o.clone(), nil
}

func (r *repository) filter(keep func(*Order) bool) []*Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Order, 0)
	for _, id := range r.order {
		if o := r.orders[id]; keep(o) {
			out = append(out, o.clone())
		}
	}
	return out
}
