package repository

import (
	"context"
	"testing"
	"time"

	"fernwear/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	createSchema(t, pool)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price BIGINT NOT NULL CHECK (price >= 0),
			category TEXT NOT NULL,
			sizes TEXT[] NOT NULL DEFAULT '{}',
			images TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			total_amount BIGINT NOT NULL CHECK (total_amount >= 0),
			shipping_amount BIGINT NOT NULL DEFAULT 0,
			tax_amount BIGINT NOT NULL DEFAULT 0,
			checkout_session_id TEXT NOT NULL DEFAULT '',
			shipping_first_name TEXT NOT NULL DEFAULT '',
			shipping_last_name TEXT NOT NULL DEFAULT '',
			shipping_mobile TEXT NOT NULL DEFAULT '',
			shipping_address_1 TEXT NOT NULL DEFAULT '',
			shipping_address_2 TEXT NOT NULL DEFAULT '',
			shipping_city TEXT NOT NULL DEFAULT '',
			shipping_state TEXT NOT NULL DEFAULT '',
			shipping_postal_code TEXT NOT NULL DEFAULT '',
			shipping_country TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			size TEXT NOT NULL DEFAULT '',
			unit_price BIGINT NOT NULL CHECK (unit_price >= 0),
			total_price BIGINT NOT NULL CHECK (total_price >= 0)
		);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedProducts inserts test products into the database.
func seedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	ctx := context.Background()

	query := `
		INSERT INTO products (id, name, description, price, category, sizes, images, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, p := range products {
		sizes := p.Sizes
		if sizes == nil {
			sizes = []string{}
		}
		images := p.Images
		if images == nil {
			images = []string{}
		}
		_, err := pool.Exec(ctx, query, p.ID, p.Name, p.Description, p.Price, p.Category, sizes, images, p.CreatedAt)
		require.NoError(t, err)
	}
}

func TestProductRepository_GetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	now := time.Now()
	testProducts := []model.Product{
		{ID: "P001", Name: "Canopy Cargo Pants", Price: 1999, Category: "bottoms", Sizes: []string{"32", "34"}, CreatedAt: now},
		{ID: "P002", Name: "Fern Oversized Tee", Price: 899, Category: "tops", Sizes: []string{"S", "M", "L"}, CreatedAt: now},
		{ID: "P003", Name: "Loom Linen Shirt", Price: 1499, Category: "tops", Sizes: []string{"M", "L"}, CreatedAt: now},
		{ID: "P004", Name: "Moss Knit Beanie", Price: 499, Category: "accessories", CreatedAt: now},
	}
	seedProducts(t, pool, testProducts)

	ctx := context.Background()

	tests := []struct {
		name     string
		limit    int
		offset   int
		expected int
	}{
		{
			name:     "Get all products",
			limit:    10,
			offset:   0,
			expected: 4,
		},
		{
			name:     "Limit applied",
			limit:    2,
			offset:   0,
			expected: 2,
		},
		{
			name:     "Offset applied",
			limit:    10,
			offset:   3,
			expected: 1,
		},
		{
			name:     "Offset beyond end",
			limit:    10,
			offset:   10,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.GetAll(ctx, tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Len(t, products, tt.expected)
		})
	}
}

func TestProductRepository_GetAll_Ordering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	now := time.Now()
	seedProducts(t, pool, []model.Product{
		{ID: "P001", Name: "Zephyr Windbreaker", Price: 2499, Category: "outerwear", CreatedAt: now},
		{ID: "P002", Name: "Aster Crop Top", Price: 799, Category: "tops", CreatedAt: now},
	})

	products, err := repo.GetAll(context.Background(), 10, 0)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Aster Crop Top", products[0].Name)
	assert.Equal(t, "Zephyr Windbreaker", products[1].Name)
}

func TestProductRepository_GetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	now := time.Now()
	seedProducts(t, pool, []model.Product{
		{ID: "P001", Name: "Fern Oversized Tee", Description: "Organic cotton", Price: 899, Category: "tops", Sizes: []string{"S", "M"}, CreatedAt: now},
	})

	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		product, err := repo.GetByID(ctx, "P001")

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Fern Oversized Tee", product.Name)
		assert.Equal(t, int64(899), product.Price)
		assert.Equal(t, []string{"S", "M"}, product.Sizes)
	})

	t.Run("Not found", func(t *testing.T) {
		product, err := repo.GetByID(ctx, "P999")

		require.NoError(t, err)
		assert.Nil(t, product)
	})
}

func TestProductRepository_GetByIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	now := time.Now()
	seedProducts(t, pool, []model.Product{
		{ID: "P001", Name: "Fern Oversized Tee", Price: 899, Category: "tops", CreatedAt: now},
		{ID: "P002", Name: "Loom Linen Shirt", Price: 1499, Category: "tops", CreatedAt: now},
		{ID: "P003", Name: "Moss Knit Beanie", Price: 499, Category: "accessories", CreatedAt: now},
	})

	ctx := context.Background()

	t.Run("Multiple ids", func(t *testing.T) {
		products, err := repo.GetByIDs(ctx, []string{"P001", "P003"})

		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("Unknown ids skipped", func(t *testing.T) {
		products, err := repo.GetByIDs(ctx, []string{"P002", "P999"})

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "P002", products[0].ID)
	})

	t.Run("Empty input", func(t *testing.T) {
		products, err := repo.GetByIDs(ctx, nil)

		require.NoError(t, err)
		assert.Nil(t, products)
	})
}
