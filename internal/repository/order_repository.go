package repository

import (
	"context"
	"fmt"

	"fernwear/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, order_number, user_id, status, payment_status,
	total_amount, shipping_amount, tax_amount, checkout_session_id,
	shipping_first_name, shipping_last_name, shipping_mobile,
	shipping_address_1, shipping_address_2, shipping_city, shipping_state,
	shipping_postal_code, shipping_country, created_at, updated_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order header within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, user_id, status, payment_status,
			total_amount, shipping_amount, tax_amount, checkout_session_id,
			shipping_first_name, shipping_last_name, shipping_mobile,
			shipping_address_1, shipping_address_2, shipping_city, shipping_state,
			shipping_postal_code, shipping_country, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.Status,
		order.PaymentStatus,
		order.TotalAmount,
		order.ShippingAmount,
		order.TaxAmount,
		order.CheckoutSessionID,
		order.ShippingFirstName,
		order.ShippingLastName,
		order.ShippingMobile,
		order.ShippingAddress1,
		order.ShippingAddress2,
		order.ShippingCity,
		order.ShippingState,
		order.ShippingPostalCode,
		order.ShippingCountry,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("order_number", order.OrderNumber).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, size, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Size,
			item.UnitPrice,
			item.TotalPrice,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	return r.queryOrder(ctx, query, id)
}

// GetBySessionID retrieves the order tied to a checkout session.
func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, []model.OrderItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE checkout_session_id = $1`, orderColumns)
	return r.queryOrder(ctx, query, sessionID)
}

// GetLatestByUser retrieves the most recently created order for a user.
func (r *orderRepository) GetLatestByUser(ctx context.Context, userID string) (*model.Order, []model.OrderItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, orderColumns)
	return r.queryOrder(ctx, query, userID)
}

// queryOrder runs a single-row order query and loads the matching items.
func (r *orderRepository) queryOrder(ctx context.Context, query string, arg any) (*model.Order, []model.OrderItem, error) {
	var order model.Order
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.Status,
		&order.PaymentStatus,
		&order.TotalAmount,
		&order.ShippingAmount,
		&order.TaxAmount,
		&order.CheckoutSessionID,
		&order.ShippingFirstName,
		&order.ShippingLastName,
		&order.ShippingMobile,
		&order.ShippingAddress1,
		&order.ShippingAddress2,
		&order.ShippingCity,
		&order.ShippingState,
		&order.ShippingPostalCode,
		&order.ShippingCountry,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}

	return &order, items, nil
}

// getItems loads all line items for an order.
func (r *orderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, size, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Size,
			&item.UnitPrice,
			&item.TotalPrice,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
