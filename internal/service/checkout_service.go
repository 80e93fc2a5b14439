package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"fernwear/internal/config"
	"fernwear/internal/events"
	"fernwear/internal/idempotency"
	"fernwear/internal/model"
	"fernwear/internal/payment"
	"fernwear/internal/promo"
	"fernwear/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const shippingLineItemName = "Shipping"

// checkoutService implements CheckoutService.
type checkoutService struct {
	sessions    payment.SessionClient
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	validator   promo.Validator
	publisher   events.Publisher
	dedup       *idempotency.Cache
	cfg         config.CheckoutConfig
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	sessions payment.SessionClient,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	validator promo.Validator,
	publisher events.Publisher,
	dedup *idempotency.Cache,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		sessions:    sessions,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		validator:   validator,
		publisher:   publisher,
		dedup:       dedup,
		cfg:         cfg,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// CreateSession validates the cart, creates a hosted checkout session and
// records the order. The order write is best-effort: a persistence failure
// is logged but the session id is still returned, so payment can proceed
// even when local bookkeeping fails.
func (s *checkoutService) CreateSession(ctx context.Context, req *model.CheckoutRequest, userID, idemKey string) (*model.CheckoutResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.validateProducts(ctx, req.Items); err != nil {
		return nil, err
	}

	// Free shipping when a valid promo code is supplied.
	shippingFee := s.cfg.ShippingFee
	if req.PromoCode != nil && *req.PromoCode != "" {
		if err := s.validator.Validate(ctx, *req.PromoCode); err != nil {
			s.logger.Warn().
				Str("promo_code", *req.PromoCode).
				Err(err).
				Msg("invalid promo code")
			return nil, err
		}
		shippingFee = 0
		s.logger.Debug().Str("promo_code", *req.PromoCode).Msg("promo code validated, shipping waived")
	}

	// Duplicate submissions (double-click, client retry) return the session
	// already created for the same key instead of creating a second one.
	if idemKey == "" {
		idemKey = idempotency.Fingerprint(userID, req)
	}
	if sessionID, ok := s.dedup.Get(idemKey); ok {
		s.logger.Info().
			Str("session_id", sessionID).
			Msg("duplicate checkout request, returning existing session")
		return &model.CheckoutResponse{SessionID: sessionID}, nil
	}

	session, err := s.createPaymentSession(ctx, req, shippingFee)
	if err != nil {
		return nil, err
	}

	order, items := s.buildOrder(req, userID, session.ID, shippingFee)

	// Partial-failure policy: the payment session exists on the platform
	// regardless, so a failed order write must not fail the checkout.
	if err := s.persistOrder(ctx, order, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", session.ID).
			Str("order_number", order.OrderNumber).
			Msg("failed to record order, returning session anyway")
	} else {
		if err := s.publisher.PublishOrderCreated(ctx, order, items); err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", order.ID.String()).
				Msg("failed to publish order event")
		}

		s.logger.Info().
			Str("order_id", order.ID.String()).
			Str("order_number", order.OrderNumber).
			Str("session_id", session.ID).
			Int64("total_amount", order.TotalAmount).
			Int("item_count", len(items)).
			Msg("order recorded")
	}

	s.dedup.Put(idemKey, session.ID)

	return &model.CheckoutResponse{SessionID: session.ID}, nil
}

// createPaymentSession builds the line items and requests a one-time
// payment session from the platform.
func (s *checkoutService) createPaymentSession(ctx context.Context, req *model.CheckoutRequest, shippingFee int64) (*payment.Session, error) {
	lineItems := make([]payment.LineItem, 0, len(req.Items)+1)
	for _, item := range req.Items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Name,
			UnitAmount: item.Price * 100, // rupees to paise
			Quantity:   int64(item.Quantity),
			ProductID:  item.ProductID,
			Size:       item.Size,
		})
	}
	if shippingFee > 0 {
		lineItems = append(lineItems, payment.LineItem{
			Name:       shippingLineItemName,
			UnitAmount: shippingFee * 100,
			Quantity:   1,
		})
	}

	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize cart items: %w", err)
	}

	session, err := s.sessions.CreateSession(ctx, &payment.SessionParams{
		LineItems:     lineItems,
		Currency:      s.cfg.Currency,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		Metadata: map[string]string{
			"customer_name": req.CustomerName,
			"items":         string(itemsJSON),
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("payment session creation failed")
		return nil, err
	}

	return session, nil
}

// buildOrder computes the amounts and assembles the order header and items.
// The shipping address holds placeholder values until the payment webhook
// supplies the real one.
func (s *checkoutService) buildOrder(req *model.CheckoutRequest, userID, sessionID string, shippingFee int64) (*model.Order, []model.OrderItem) {
	var subtotal int64
	for _, item := range req.Items {
		subtotal += item.Price * int64(item.Quantity)
	}
	total := subtotal + shippingFee
	tax := int64(math.Round(float64(total) * s.cfg.TaxRate))

	firstName, lastName := splitName(req.CustomerName)

	now := time.Now()
	order := &model.Order{
		ID:                 uuid.New(),
		OrderNumber:        fmt.Sprintf("ORD-%d", now.UnixMilli()),
		UserID:             userID,
		Status:             model.OrderStatusPending,
		PaymentStatus:      model.PaymentStatusPending,
		TotalAmount:        total,
		ShippingAmount:     shippingFee,
		TaxAmount:          tax,
		CheckoutSessionID:  sessionID,
		ShippingFirstName:  firstName,
		ShippingLastName:   lastName,
		ShippingAddress1:   "Address will be updated from webhook",
		ShippingCity:       "City",
		ShippingState:      "State",
		ShippingPostalCode: "000000",
		ShippingCountry:    "India",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Size:        item.Size,
			UnitPrice:   item.Price,
			TotalPrice:  item.Price * int64(item.Quantity),
		}
	}

	return order, items
}

// persistOrder writes the order header and all items in one transaction so
// an order can never exist with a partial item set.
func (s *checkoutService) persistOrder(ctx context.Context, order *model.Order, items []model.OrderItem) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback order transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return nil
}

// validateRequest rejects bad carts before any external call is made.
func (s *checkoutService) validateRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("checkout request is nil")
	}

	if len(req.Items) == 0 {
		return model.ErrEmptyCart
	}

	if req.CustomerEmail == "" || req.CustomerName == "" {
		return model.ErrMissingCustomer
	}

	if req.SuccessURL == "" || req.CancelURL == "" {
		return fmt.Errorf("success and cancel URLs are required")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		if item.Price < 0 {
			return model.ErrInvalidPrice
		}
	}

	return nil
}

// validateProducts checks the submitted product ids against the catalogue.
// A lookup failure is logged and skipped so a catalogue outage cannot block
// checkout; only a definitive miss rejects the cart.
func (s *checkoutService) validateProducts(ctx context.Context, items []model.CheckoutItem) error {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not verify cart products against catalogue")
		return nil
	}

	known := make(map[string]bool, len(products))
	for _, product := range products {
		known[product.ID] = true
	}

	for _, id := range ids {
		if !known[id] {
			s.logger.Warn().Str("product_id", id).Msg("unknown product in cart")
			return model.ErrUnknownProduct
		}
	}

	return nil
}

// splitName splits a display name into first and last parts, the same way
// the storefront's profile form does.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
