package integration

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fernwear/internal/metrics"
	"fernwear/internal/payment"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// serverMetrics is shared across tests: prometheus collectors register in
// the default registry and can only be registered once per process.
var (
	serverMetrics     *metrics.ServerMetrics
	serverMetricsOnce sync.Once
)

func testMetrics() *metrics.ServerMetrics {
	serverMetricsOnce.Do(func() {
		serverMetrics = metrics.NewServerMetrics()
	})
	return serverMetrics
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

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

		CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_orders_session ON orders (checkout_session_id);

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
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		name     string
		price    int64
		category string
	}{
		{"P001", "Fern Oversized Tee", 500, "tops"},
		{"P002", "Loom Linen Shirt", 1499, "tops"},
		{"P003", "Canopy Cargo Pants", 1999, "bottoms"},
		{"P004", "Moss Knit Beanie", 499, "accessories"},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price, category) VALUES ($1, $2, $3, $4)",
			p.id, p.name, p.price, p.category,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// WritePromoList writes a gzipped promo code list and returns its path.
func WritePromoList(t *testing.T, codes []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "promo.gz")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create promo list: %v", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	for _, code := range codes {
		if _, err := fmt.Fprintln(gz, code); err != nil {
			t.Fatalf("failed to write promo list: %v", err)
		}
	}

	return path
}

// stubSessionClient stands in for the payment platform, handing out
// sequential session ids and remembering the last request.
type stubSessionClient struct {
	counter    atomic.Int64
	LastParams *payment.SessionParams
}

func (s *stubSessionClient) CreateSession(_ context.Context, params *payment.SessionParams) (*payment.Session, error) {
	s.LastParams = params
	n := s.counter.Add(1)
	return &payment.Session{
		ID:  fmt.Sprintf("cs_test_%d", n),
		URL: fmt.Sprintf("https://pay.example.com/cs_test_%d", n),
	}, nil
}
