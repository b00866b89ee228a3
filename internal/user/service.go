package user

import (
	"context"
	"strings"

	"mercado-be/internal/logger"

	"go.uber.org/zap"
)

// TokenIssuer signs session tokens; auth.Manager implements it.
type TokenIssuer interface {
	GenerateToken(userID, email, role string, marketID *string) (string, error)
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

// Register creates a customer account and returns a session token for it.
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	if strings.TrimSpace(input.Email) == "" {
		return nil, "", ErrEmailRequired
	}
	if input.Password == "" {
		return nil, "", ErrPasswordRequired
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, "", err
	}

	u, err := s.repo.Create(ctx, User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hashed,
		Role:         RoleCustomer,
	})
	if err != nil {
		log.Warn("failed to create user", zap.String("email", input.Email), zap.Error(err))
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, string(u.Role), u.MarketID)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, "", err
	}

	log.Info("register service completed", zap.String("user_id", u.ID))
	return u, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("email not found", zap.String("email", email))
		return nil, "", err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Warn("password not match", zap.String("user_id", u.ID))
		return nil, "", ErrInvalidPassword
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, string(u.Role), u.MarketID)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, "", err
	}

	log.Info("login succeeded", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, token, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}
