package market

import "context"

// Repository is the read side of the market registry. Markets are seeded at
// start-up and never change afterwards.
type Repository interface {
	GetAll(ctx context.Context) ([]Market, error)
	GetByID(ctx context.Context, id string) (*Market, error)
	Exists(ctx context.Context, id string) bool
}

type repository struct {
	order   []string
	markets map[string]Market
}

// NewRepository builds a registry from seed markets, keeping their order.
func NewRepository(seed []Market) (Repository, error) {
	r := &repository{markets: make(map[string]Market, len(seed))}
	for _, m := range seed {
		if m.ID == "" {
			return nil, ErrMarketIDMissing
		}
		if _, ok := r.markets[m.ID]; ok {
			return nil, ErrDuplicateMarket
		}
		r.markets[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return r, nil
}

func (r *repository) GetAll(_ context.Context) ([]Market, error) {
	out := make([]Market, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.markets[id])
	}
	return out, nil
}

func (r *repository) GetByID(_ context.Context, id string) (*Market, error) {
	m, ok := r.markets[id]
	if !ok {
		return nil, ErrMarketNotFound
	}
	return &m, nil
}

func (r *repository) Exists(_ context.Context, id string) bool {
	_, ok := r.markets[id]
	return ok
}
