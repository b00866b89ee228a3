package cart

import (
	"context"
	"fmt"
	"sync"

	"mercado-be/internal/logger"
	"mercado-be/internal/order"
	"mercado-be/internal/pricing"
	"mercado-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Session is one customer's cart. A cart only ever holds products of the
// selected market. It is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	marketID string
	items    []CartItem

	orders order.Service
}

func NewSession(orders order.Service) *Session {
	return &Session{orders: orders}
}

func (s *Session) MarketID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marketID
}

// SetMarket selects the market to buy from. Switching to a different market
// empties the cart.
func (s *Session) SetMarket(marketID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.marketID != "" && s.marketID != marketID {
		s.items = nil
	}
	s.marketID = marketID
}

// AddToCart adds quantity units of p, merging with an existing line. The
// first product added selects its market when none is selected yet.
func (s *Session) AddToCart(p product.ProductWithFinalPrice, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.marketID == "" {
		s.marketID = p.MarketID
	}
	if p.MarketID != s.marketID {
		return fmt.Errorf("product %s in %s, cart in %s: %w", p.ID, p.MarketID, s.marketID, ErrMarketMismatch)
	}

	i := s.indexLocked(p.ID)
	total := quantity
	if i >= 0 {
		total += s.items[i].Quantity
	}
	if total > p.Stock {
		return fmt.Errorf("product %s: requested %d, stock %d: %w", p.ID, total, p.Stock, ErrInsufficientStock)
	}

	if i >= 0 {
		s.items[i].Product = p
		s.items[i].Quantity = total
		return nil
	}
	s.items = append(s.items, CartItem{Product: p, Quantity: quantity})
	return nil
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it.
func (s *Session) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	if quantity <= 0 {
		s.removeLocked(i)
		return nil
	}
	if stock := s.items[i].Product.Stock; quantity > stock {
		return fmt.Errorf("product %s: requested %d, stock %d: %w", productID, quantity, stock, ErrInsufficientStock)
	}
	s.items[i].Quantity = quantity
	return nil
}

func (s *Session) RemoveFromCart(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	s.removeLocked(i)
	return nil
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *Session) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartItem(nil), s.items...)
}

// TotalAmount is the sum of final price times quantity, rounded to cents.
// It is an estimate; the order total is priced at checkout.
func (s *Session) TotalAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	amounts := make([]decimal.Decimal, 0, len(s.items))
	for _, it := range s.items {
		amounts = append(amounts, it.Product.FinalPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return pricing.Sum(amounts...)
}

func (s *Session) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Checkout places an order for the cart contents. The cart is cleared only
// when the order is created; on failure it is left as it was.
func (s *Session) Checkout(ctx context.Context, customerID string) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "Checkout"),
		zap.String("customer_id", customerID),
	)

	s.mu.Lock()
	marketID := s.marketID
	items := append([]CartItem(nil), s.items...)
	s.mu.Unlock()

	if marketID == "" {
		return nil, ErrMarketNotSelected
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	o, err := s.orders.CreateOrder(ctx, ToOrderInput(customerID, marketID, items))
	if err != nil {
		log.Warn("checkout failed", zap.String("market_id", marketID), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	if s.marketID == marketID {
		s.items = nil
	}
	s.mu.Unlock()

	log.Info("checkout completed", zap.String("order_id", o.ID))
	return o, nil
}

func (s *Session) indexLocked(productID string) int {
	for i, it := range s.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Session) removeLocked(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}
