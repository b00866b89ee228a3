package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mercado-be/internal/logger"
	"mercado-be/internal/metrics"
	"mercado-be/internal/pricing"
	"mercado-be/internal/product"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultReserveMaxAttempts = 3

type Service interface {
	// CreateOrder validates the requested lines against live stock, reserves
	// stock for all of them and persists a PENDING order. On failure no stock
	// change survives.
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	ConfirmOrder(ctx context.Context, orderID string) (*Order, error)
	CancelOrder(ctx context.Context, orderID string) (*Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrdersByMarket(ctx context.Context, marketID string) ([]*Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	Stats() metrics.OrderSnapshot
}

type Options struct {
	// ReserveMaxAttempts bounds how many times the validate+commit sequence
	// runs when stock changes underneath it. Values below 1 mean the default.
	ReserveMaxAttempts int

	// CreateTimeout limits a whole CreateOrder call. Zero disables it.
	CreateTimeout time.Duration

	Now   func() time.Time
	NewID func() string
}

type service struct {
	repo        Repository
	productRepo product.Repository

	maxAttempts   int
	createTimeout time.Duration
	now           func() time.Time
	newID         func() string

	metrics metrics.OrderMetrics
}

func NewService(repo Repository, productRepo product.Repository, opts Options) Service {
	s := &service{
		repo:          repo,
		productRepo:   productRepo,
		maxAttempts:   opts.ReserveMaxAttempts,
		createTimeout: opts.CreateTimeout,
		now:           opts.Now,
		newID:         opts.NewID,
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = defaultReserveMaxAttempts
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return "order-" + uuid.NewString() }
	}
	return s
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("customer_id", input.CustomerID),
		zap.String("market_id", input.MarketID),
		zap.Int("item_count", len(input.Items)),
	)

	timer := metrics.StartTimer()
	defer func() { s.metrics.CreateLatency.Observe(timer.Duration()) }()

	if err := validateCreateInput(input); err != nil {
		s.metrics.Rejected.Inc()
		log.Warn("invalid order input", zap.Error(err))
		return nil, err
	}

	if s.createTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.createTimeout)
		defer cancel()
	}

	var (
		created *Order
		attempt int
	)
	operation := func() error {
		attempt++
		o, err := s.assemble(ctx, input, log.With(zap.Int("attempt", attempt)))
		if err == nil {
			created = o
			return nil
		}
		if errors.Is(err, product.ErrStockConflict) {
			s.metrics.ReservationConflicts.Inc()
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(s.maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		s.metrics.Rejected.Inc()
		log.Warn("create order failed", zap.Int("attempts", attempt), zap.Error(err))
		return nil, err
	}

	s.metrics.Created.Inc()
	log.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("total_amount", created.TotalAmount.StringFixed(2)),
	)
	return created, nil
}

func validateCreateInput(input CreateOrderInput) error {
	if strings.TrimSpace(input.CustomerID) == "" {
		return ErrCustomerRequired
	}
	if strings.TrimSpace(input.MarketID) == "" {
		return ErrMarketRequired
	}
	if len(input.Items) == 0 {
		return ErrNoItems
	}
	for i, it := range input.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("item %d (product %s): %w", i, it.ProductID, ErrInvalidQuantity)
		}
	}
	return nil
}

type line struct {
	quantity int
	product  product.Product
}

// assemble runs one validate+commit sequence.
func (s *service) assemble(ctx context.Context, input CreateOrderInput, log *zap.Logger) (*Order, error) {
	// 1. Pre-validation, no mutation. Lines naming the same product are
	// checked against the stock left after the earlier lines.
	lines := make([]line, 0, len(input.Items))
	available := make(map[string]int, len(input.Items))
	snapshot := make(map[string]int, len(input.Items))

	for _, it := range input.Items {
		p, err := s.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", it.ProductID, err)
		}
		if p.MarketID != input.MarketID {
			return nil, fmt.Errorf("product %s: %w", p.ID, ErrCrossMarketItem)
		}

		left, seen := available[p.ID]
		if !seen {
			left = p.Stock
			snapshot[p.ID] = p.Stock
		}
		if left < it.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   it.Quantity,
				Available:   left,
			}
		}
		available[p.ID] = left - it.Quantity
		lines = append(lines, line{quantity: it.Quantity, product: *p})
	}

	// 2. Commit, one line at a time in input order.
	orderID := s.newID()
	arena := &reservationArena{}
	items := make([]OrderItem, 0, len(lines))
	subtotals := make([]decimal.Decimal, 0, len(lines))

	for i, l := range lines {
		if err := ctx.Err(); err != nil {
			return nil, s.rollback(ctx, arena, err, log)
		}

		expected := snapshot[l.product.ID]
		if _, err := s.productRepo.CompareAndSwapStock(ctx, l.product.ID, expected, expected-l.quantity); err != nil {
			return nil, s.rollback(ctx, arena, fmt.Errorf("reserve product %s: %w", l.product.ID, err), log)
		}
		snapshot[l.product.ID] = expected - l.quantity
		arena.record(l.product.ID, l.quantity)

		subtotal := pricing.Subtotal(l.product.Price, l.product.Discount, l.quantity)
		subtotals = append(subtotals, subtotal)
		items = append(items, OrderItem{
			ID:          fmt.Sprintf("%s-item-%d", orderID, i+1),
			OrderID:     orderID,
			ProductID:   l.product.ID,
			ProductName: l.product.Name,
			Quantity:    l.quantity,
			UnitPrice:   l.product.Price,
			Discount:    l.product.Discount,
			Subtotal:    subtotal,
		})
	}

	// 3. Persist.
	saved, err := s.repo.Create(ctx, &Order{
		ID:          orderID,
		CustomerID:  input.CustomerID,
		MarketID:    input.MarketID,
		Items:       items,
		TotalAmount: pricing.Sum(subtotals...),
		Status:      StatusPending,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, s.rollback(ctx, arena, fmt.Errorf("save order: %w", err), log)
	}
	return saved, nil
}

// rollback releases every reservation in arena and returns cause unchanged.
func (s *service) rollback(ctx context.Context, arena *reservationArena, cause error, log *zap.Logger) error {
	if arena.len() == 0 {
		return cause
	}

	s.metrics.Rollbacks.Inc()
	log.Warn("rolling back stock reservations",
		zap.Int("reservations", arena.len()),
		zap.Error(cause),
	)

	// Releases must run even when ctx is what failed.
	releaseCtx := context.WithoutCancel(ctx)
	for _, err := range arena.undo(releaseCtx, func(ctx context.Context, r reservation) error {
		return s.restoreStock(ctx, r.productID, r.quantity, log)
	}) {
		log.Error("failed to release reservation", zap.Error(err))
	}
	return cause
}

// restoreStock adds quantity back to a product. A product deleted in the
// meantime is skipped.
func (s *service) restoreStock(ctx context.Context, productID string, quantity int, log *zap.Logger) error {
	_, err := s.productRepo.AdjustStock(ctx, productID, quantity)
	if errors.Is(err, product.ErrProductNotFound) {
		log.Warn("product no longer exists, stock not restored",
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore %d of product %s: %w", quantity, productID, err)
	}
	return nil
}

func (s *service) ConfirmOrder(ctx context.Context, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ConfirmOrder"),
		zap.String("order_id", orderID),
	)

	updated, err := s.transition(ctx, orderID, StatusConfirmed)
	if err != nil {
		log.Warn("confirm order rejected", zap.Error(err))
		return nil, err
	}

	s.metrics.Confirmed.Inc()
	log.Info("order confirmed")
	return updated, nil
}

func (s *service) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", orderID),
	)

	// The transition is claimed before stock is restored so that two
	// concurrent cancels can never both restore.
	cancelled, err := s.transition(ctx, orderID, StatusCancelled)
	if err != nil {
		log.Warn("cancel order rejected", zap.Error(err))
		return nil, err
	}

	restoreCtx := context.WithoutCancel(ctx)
	for _, item := range cancelled.Items {
		if err := s.restoreStock(restoreCtx, item.ProductID, item.Quantity, log); err != nil {
			log.Error("failed to restore stock on cancel",
				zap.String("item_id", item.ID),
				zap.Error(err),
			)
		}
	}

	s.metrics.Cancelled.Inc()
	log.Info("order cancelled", zap.Int("items_restored", len(cancelled.Items)))
	return cancelled, nil
}

func (s *service) transition(ctx context.Context, orderID string, to OrderStatus) (*Order, error) {
	current, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusPending {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, current.Status, ErrInvalidTransition)
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, StatusPending, to, s.now())
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}
	return updated, nil
}

func (s *service) GetOrderByID(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *service) GetOrdersByMarket(ctx context.Context, marketID string) ([]*Order, error) {
	return s.repo.GetByMarket(ctx, marketID)
}

func (s *service) GetOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return s.repo.GetByCustomer(ctx, customerID)
}

func (s *service) Stats() metrics.OrderSnapshot {
	return s.metrics.Snapshot()
}
