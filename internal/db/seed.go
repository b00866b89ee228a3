package db

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial content of a database. Prices and discounts are
// decimal strings; user passwords are plaintext and hashed on load.
type Seed struct {
	Markets  []MarketSeed  `yaml:"markets"`
	Products []ProductSeed `yaml:"products"`
	Users    []UserSeed    `yaml:"users"`
}

type MarketSeed struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	AdminID     string    `yaml:"admin_id"`
	CreatedAt   time.Time `yaml:"created_at"`
}

type ProductSeed struct {
	ID          string    `yaml:"id"`
	MarketID    string    `yaml:"market_id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Price       string    `yaml:"price"`
	Stock       int       `yaml:"stock"`
	Discount    string    `yaml:"discount"`
	ImageURL    string    `yaml:"image_url"`
	Category    string    `yaml:"category"`
	CreatedAt   time.Time `yaml:"created_at"`
}

type UserSeed struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Email     string    `yaml:"email"`
	Password  string    `yaml:"password"`
	Role      string    `yaml:"role"`
	MarketID  string    `yaml:"market_id"`
	CreatedAt time.Time `yaml:"created_at"`
}

// LoadSeed reads a YAML seed from path. An empty path selects the built-in seed.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &s, nil
}
