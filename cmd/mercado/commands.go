package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mercado-be/internal/auth"
	"mercado-be/internal/cart"
	"mercado-be/internal/config"
	"mercado-be/internal/logger"
	"mercado-be/internal/order"
	"mercado-be/internal/user"

	"go.uber.org/zap"
)

const usage = `usage: mercado <command> [flags]

commands:
  markets                                   list markets
  products -market ID                       list a market's products with final prices
  categories -market ID [-name N]           list categories, or the products of one
  search   -market ID -q TEXT               search products by name or category
  login    -email E -password P             print a session token
  checkout -email E -password P -market ID -item PRODUCT:QTY [-item ...]
           [-confirm | -cancel] [-admin-email E -admin-password P]
                                            place an order, optionally confirm or cancel it
  report   -market ID[,ID...]               sales report per market`

var (
	errUsage     = errors.New("usage")
	errForbidden = errors.New("user cannot manage this market")
)

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx, reqID := logger.EnsureRequestID(ctx)
	logger.FromCtx(ctx).Debug("running command",
		zap.String("command", args[0]),
		zap.String("request_id", reqID),
	)

	switch args[0] {
	case "markets":
		return a.markets(ctx, out)
	case "products":
		return a.productsCmd(ctx, args[1:], out)
	case "categories":
		return a.categoriesCmd(ctx, args[1:], out)
	case "search":
		return a.search(ctx, args[1:], out)
	case "login":
		return a.login(ctx, args[1:], out)
	case "checkout":
		return a.checkout(ctx, args[1:], out)
	case "report":
		return a.report(ctx, args[1:], out)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func (a *app) markets(ctx context.Context, out io.Writer) error {
	markets, err := a.db.Markets.GetAll(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, markets)
}

func (a *app) productsCmd(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	marketID := fs.String("market", "", "market id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	products, err := a.products.GetProductsByMarket(ctx, *marketID)
	if err != nil {
		return err
	}
	return writeJSON(out, products)
}

func (a *app) categoriesCmd(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	marketID := fs.String("market", "", "market id")
	name := fs.String("name", "", "category name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	if *name != "" {
		products, err := a.categories.GetProducts(ctx, *marketID, *name)
		if err != nil {
			return err
		}
		return writeJSON(out, products)
	}
	categories, err := a.categories.GetCategories(ctx, *marketID)
	if err != nil {
		return err
	}
	return writeJSON(out, categories)
}

func (a *app) search(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	marketID := fs.String("market", "", "market id")
	query := fs.String("q", "", "search text")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	products, err := a.categories.Search(ctx, *marketID, *query)
	if err != nil {
		return err
	}
	return writeJSON(out, products)
}

func (a *app) login(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "user password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	u, token, err := a.users.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return writeJSON(out, struct {
		User  *user.User `json:"user"`
		Token string     `json:"token"`
	}{u, token})
}

func (a *app) checkout(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "customer email")
	password := fs.String("password", "", "customer password")
	marketID := fs.String("market", "", "market id")
	confirm := fs.Bool("confirm", false, "confirm the order as the market admin")
	cancel := fs.Bool("cancel", false, "cancel the order as the market admin")
	adminEmail := fs.String("admin-email", "", "market admin email")
	adminPassword := fs.String("admin-password", "", "market admin password")
	var items itemList
	fs.Var(&items, "item", "PRODUCT:QTY, repeatable")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if *confirm && *cancel {
		return fmt.Errorf("-confirm and -cancel are exclusive: %w", errUsage)
	}

	ctx, err := a.authenticate(ctx, *email, *password)
	if err != nil {
		return err
	}
	caller, _ := auth.UserFromContext(ctx)

	session := cart.NewSession(a.orders)
	session.SetMarket(*marketID)
	for _, it := range items {
		p, err := a.products.GetProductByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if err := session.AddToCart(*p, it.Quantity); err != nil {
			return err
		}
	}

	placed, err := session.Checkout(ctx, caller.UserID)
	if err != nil {
		return err
	}

	if *confirm || *cancel {
		adminCtx, err := a.authenticate(ctx, *adminEmail, *adminPassword)
		if err != nil {
			return err
		}
		if err := a.authorizeMarket(adminCtx, placed.MarketID); err != nil {
			return err
		}
		if *confirm {
			placed, err = a.orders.ConfirmOrder(adminCtx, placed.ID)
		} else {
			placed, err = a.orders.CancelOrder(adminCtx, placed.ID)
		}
		if err != nil {
			return err
		}
	}
	return writeJSON(out, placed)
}

func (a *app) report(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	markets := fs.String("market", "", "comma separated market ids")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	ids := strings.Split(*markets, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}
	reports, err := a.reports.GenerateReports(ctx, ids)
	if err != nil {
		return err
	}
	return writeJSON(out, reports)
}

// authenticate logs the user in and returns ctx carrying the token claims.
func (a *app) authenticate(ctx context.Context, email, password string) (context.Context, error) {
	_, token, err := a.users.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	claims, err := a.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return auth.WithUser(ctx, claims), nil
}

func (a *app) authorizeMarket(ctx context.Context, marketID string) error {
	claims, ok := auth.UserFromContext(ctx)
	if !ok {
		return errForbidden
	}
	u, err := a.db.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if !user.CanManageMarket(u, marketID) {
		return fmt.Errorf("%s on %s: %w", u.Email, marketID, errForbidden)
	}
	return nil
}

// itemList collects repeated -item PRODUCT:QTY flags.
type itemList []order.ItemInput

func (l *itemList) String() string {
	parts := make([]string, 0, len(*l))
	for _, it := range *l {
		parts = append(parts, fmt.Sprintf("%s:%d", it.ProductID, it.Quantity))
	}
	return strings.Join(parts, ",")
}

func (l *itemList) Set(v string) error {
	id, qty, ok := strings.Cut(v, ":")
	if !ok || id == "" {
		return fmt.Errorf("item %q: want PRODUCT:QTY", v)
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return fmt.Errorf("item %q: invalid quantity", v)
	}
	*l = append(*l, order.ItemInput{ProductID: id, Quantity: n})
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
