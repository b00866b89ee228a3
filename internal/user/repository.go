package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type repository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
	now     func() time.Time
}

func NewRepository() Repository {
	return &repository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// Create stores u. Emails are unique ignoring case; an empty ID gets a uuid.
func (r *repository) Create(_ context.Context, u User) (*User, error) {
	if strings.TrimSpace(u.Email) == "" {
		return nil, ErrEmailRequired
	}
	switch u.Role {
	case RoleCustomer:
		if u.MarketID != nil {
			return nil, ErrAdminMarket
		}
	case RoleAdmin:
		if u.MarketID == nil || *u.MarketID == "" {
			return nil, ErrAdminMarket
		}
	default:
		return nil, ErrInvalidRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, ErrEmailExists
	}
	if u.ID == "" {
		u.ID = "user-" + uuid.NewString()
	}
	if _, ok := r.byID[u.ID]; ok {
		return nil, ErrDuplicateUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now()
	}

	stored := u
	r.byID[u.ID] = &stored
	r.byEmail[key] = u.ID
	return &u, nil
}

func (r *repository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *repository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
