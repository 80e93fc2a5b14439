package integration

import (
	"context"
	"testing"
	"time"

	"fernwear/internal/config"
	"fernwear/internal/events"
	"fernwear/internal/idempotency"
	"fernwear/internal/model"
	"fernwear/internal/promo"
	"fernwear/internal/repository"
	"fernwear/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutPersistence_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	SeedProducts(t, testDB.Pool)

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	sessions := &stubSessionClient{}

	checkoutService := service.NewCheckoutService(
		sessions,
		productRepo,
		orderRepo,
		promo.NewDisabledValidator(),
		events.NewNopPublisher(),
		idempotency.NewCache(15*time.Minute),
		config.CheckoutConfig{Currency: "inr", ShippingFee: 99, TaxRate: 0.18, IdempotencyTTL: 900},
		logger,
	)

	req := &model.CheckoutRequest{
		Items: []model.CheckoutItem{
			{ProductID: "P001", Name: "Fern Oversized Tee", Price: 500, Quantity: 2, Size: "M"},
			{ProductID: "P003", Name: "Canopy Cargo Pants", Price: 1999, Quantity: 1, Size: "32"},
		},
		CustomerEmail: "asha@example.com",
		CustomerName:  "Asha Menon",
		SuccessURL:    "https://shop.example.com/order-success",
		CancelURL:     "https://shop.example.com/cart",
	}

	resp, err := checkoutService.CreateSession(ctx, req, "user-1", "")
	require.NoError(t, err)
	require.NotNil(t, resp)

	t.Run("Order header and items committed together", func(t *testing.T) {
		order, items, err := orderRepo.GetBySessionID(ctx, resp.SessionID)

		require.NoError(t, err)
		require.NotNil(t, order)

		// 500*2 + 1999 + 99 shipping = 3098, tax = round(3098*0.18) = 558.
		assert.Equal(t, int64(3098), order.TotalAmount)
		assert.Equal(t, int64(99), order.ShippingAmount)
		assert.Equal(t, int64(558), order.TaxAmount)
		assert.Equal(t, "user-1", order.UserID)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)

		require.Len(t, items, 2)
		var lineTotal int64
		for _, item := range items {
			assert.Equal(t, item.UnitPrice*int64(item.Quantity), item.TotalPrice)
			lineTotal += item.TotalPrice
		}
		assert.Equal(t, order.TotalAmount-order.ShippingAmount, lineTotal)
	})

	t.Run("Order visible through GetLatestByUser", func(t *testing.T) {
		order, items, err := orderRepo.GetLatestByUser(ctx, "user-1")

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, resp.SessionID, order.CheckoutSessionID)
		assert.Len(t, items, 2)
	})

	t.Run("Placeholder shipping address recorded", func(t *testing.T) {
		order, _, err := orderRepo.GetBySessionID(ctx, resp.SessionID)

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "Asha", order.ShippingFirstName)
		assert.Equal(t, "Menon", order.ShippingLastName)
		assert.Equal(t, "Address will be updated from webhook", order.ShippingAddress1)
		assert.Equal(t, "India", order.ShippingCountry)
	})
}
