package main

import (
	"mercado-be/internal/auth"
	"mercado-be/internal/category"
	"mercado-be/internal/config"
	"mercado-be/internal/db"
	"mercado-be/internal/order"
	"mercado-be/internal/product"
	"mercado-be/internal/report"
	"mercado-be/internal/user"
)

// app wires one freshly seeded marketplace.
type app struct {
	db         *db.Database
	tokens     *auth.Manager
	products   product.Service
	categories category.Service
	orders     order.Service
	users      user.Service
	reports    report.Service
}

func newApp(cfg *config.Config) (*app, error) {
	database, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	orderSvc := order.NewService(database.Orders, database.Products, order.Options{
		ReserveMaxAttempts: cfg.ReserveMaxAttempts,
		CreateTimeout:      cfg.CreateOrderTimeout,
	})

	return &app{
		db:         database,
		tokens:     tokens,
		products:   product.NewService(database.Products, database.Markets),
		categories: category.NewService(database.Products),
		orders:     orderSvc,
		users:      user.NewService(database.Users, tokens),
		reports:    report.NewService(orderSvc, database.Markets),
	}, nil
}
