package service

import (
	"context"

	"fernwear/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue browsing.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CheckoutService creates payment sessions and records orders.
type CheckoutService interface {
	// CreateSession validates the cart, creates a hosted checkout session
	// and records the order. idemKey is the client-supplied Idempotency-Key,
	// or "" to fall back to a cart fingerprint.
	CreateSession(ctx context.Context, req *model.CheckoutRequest, userID, idemKey string) (*model.CheckoutResponse, error)
}

// OrderService defines read operations for the order-success page.
type OrderService interface {
	// GetForSession retrieves the order for a completed checkout session,
	// falling back to the user's most recent order when no session match
	// exists. Returns nil when neither is found.
	GetForSession(ctx context.Context, sessionID, userID string) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
}
