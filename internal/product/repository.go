package product

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository is the catalog store. Every stock write, whatever its origin,
// goes through setStockLocked so the non-negative invariant holds on all paths.
type Repository interface {
	GetByMarket(ctx context.Context, marketID string) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*Product, error)
	UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) (*Product, error)
	UpdateStock(ctx context.Context, id string, stock int) (*Product, error)

	// CompareAndSwapStock sets stock only when the current value equals
	// expected, otherwise it fails with ErrStockConflict.
	CompareAndSwapStock(ctx context.Context, id string, expected, stock int) (*Product, error)

	// AdjustStock adds delta to the current stock in one step.
	AdjustStock(ctx context.Context, id string, delta int) (*Product, error)

	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*Product
	now      func() time.Time
}

func NewRepository() Repository {
	return &repository{
		products: make(map[string]*Product),
		now:      time.Now,
	}
}

func (r *repository) GetByMarket(_ context.Context, marketID string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, id := range r.order {
		if p := r.products[id]; p.MarketID == marketID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *repository) GetByID(_ context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

// Create inserts p. An empty ID is replaced by "<marketID>-product-<uuid>" and
// zero timestamps are set to now; seeded products keep theirs.
func (r *repository) Create(_ context.Context, p Product) (*Product, error) {
	if strings.TrimSpace(p.MarketID) == "" {
		return nil, ErrMarketRequired
	}
	if err := validatePrice(p.Price); err != nil {
		return nil, err
	}
	if err := validateDiscount(p.Discount); err != nil {
		return nil, err
	}
	if err := validateStock(p.Stock); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = p.MarketID + "-product-" + uuid.NewString()
	}
	if _, ok := r.products[p.ID]; ok {
		return nil, ErrDuplicateProduct
	}

	now := r.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	stored := p
	r.products[p.ID] = &stored
	r.order = append(r.order, p.ID)
	return &p, nil
}

func (r *repository) Update(_ context.Context, id string, in UpdateProductInput) (*Product, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	if in.Stock != nil {
		if err := r.setStockLocked(p, *in.Stock); err != nil {
			return nil, err
		}
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	p.UpdatedAt = r.now()

	clone := *p
	return &clone, nil
}

func (r *repository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*Product, error) {
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	return r.Update(ctx, id, UpdateProductInput{Price: &price})
}

func (r *repository) UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) (*Product, error) {
	if err := validateDiscount(discount); err != nil {
		return nil, err
	}
	return r.Update(ctx, id, UpdateProductInput{Discount: &discount})
}

func (r *repository) UpdateStock(_ context.Context, id string, stock int) (*Product, error) {
	return r.writeStock(id, func(*Product) (int, error) {
		return stock, nil
	})
}

func (r *repository) CompareAndSwapStock(_ context.Context, id string, expected, stock int) (*Product, error) {
	return r.writeStock(id, func(p *Product) (int, error) {
		if p.Stock != expected {
			return 0, ErrStockConflict
		}
		return stock, nil
	})
}

func (r *repository) AdjustStock(_ context.Context, id string, delta int) (*Product, error) {
	return r.writeStock(id, func(p *Product) (int, error) {
		return p.Stock + delta, nil
	})
}

func (r *repository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// writeStock resolves the target stock under the write lock and applies it.
func (r *repository) writeStock(id string, target func(p *Product) (int, error)) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	stock, err := target(p)
	if err != nil {
		return nil, err
	}
	if err := r.setStockLocked(p, stock); err != nil {
		return nil, err
	}

	clone := *p
	return &clone, nil
}

// setStockLocked is the single stock setter. r.mu must be held for writing.
func (r *repository) setStockLocked(p *Product, stock int) error {
	if err := validateStock(stock); err != nil {
		return err
	}
	p.Stock = stock
	p.UpdatedAt = r.now()
	return nil
}
