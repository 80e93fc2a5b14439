package main

import (
	"context"
	"fmt"
	"os"

	"fernwear/internal/config"

	"github.com/jackc/pgx/v5"
)

// Seeds a handful of catalogue products for local development.
func main() {
	cfg, err := config.LoadMigrate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	products := []struct {
		id, name, description, category string
		price                           int64
		sizes                           []string
	}{
		{"P001", "Fern Oversized Tee", "Organic cotton tee in forest green", "tops", 899, []string{"S", "M", "L", "XL"}},
		{"P002", "Loom Linen Shirt", "Breathable handloom linen shirt", "tops", 1499, []string{"M", "L", "XL"}},
		{"P003", "Canopy Cargo Pants", "Relaxed fit with six pockets", "bottoms", 1999, []string{"30", "32", "34", "36"}},
		{"P004", "Moss Knit Beanie", "Chunky knit, one size", "accessories", 499, nil},
	}

	for _, p := range products {
		_, err := conn.Exec(ctx, `
			INSERT INTO products (id, name, description, price, category, sizes)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, p.id, p.name, p.description, p.price, p.category, p.sizes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to insert %s: %v\n", p.id, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeded %d products\n", len(products))
}
