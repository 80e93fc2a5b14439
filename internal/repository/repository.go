package repository

import (
	"context"

	"fernwear/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// OrderRepository defines the interface for order data access operations.
// Order header and items are written within a caller-provided transaction
// so a failed item insert never leaves a header without lines.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns
	// (nil, nil, nil) when no order exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetBySessionID retrieves the order tied to a checkout session.
	// Returns (nil, nil, nil) when no order matches.
	GetBySessionID(ctx context.Context, sessionID string) (*model.Order, []model.OrderItem, error)

	// GetLatestByUser retrieves the most recently created order for a user.
	// Returns (nil, nil, nil) when the user has no orders.
	GetLatestByUser(ctx context.Context, userID string) (*model.Order, []model.OrderItem, error)
}
