package user

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	MarketID     *string   `json:"market_id,omitempty"` // admins only
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageMarket reports whether u administers marketID.
func CanManageMarket(u *User, marketID string) bool {
	return u != nil && u.IsAdmin() && u.MarketID != nil && *u.MarketID == marketID
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}
