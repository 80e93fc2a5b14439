package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// stripeClient implements SessionClient against the Stripe Checkout API.
type stripeClient struct {
	api    *client.API
	logger zerolog.Logger
}

// NewStripeClient creates a Stripe-backed session client. The client is
// handed to its consumers explicitly rather than living as a package-level
// singleton.
func NewStripeClient(secretKey string, logger zerolog.Logger) SessionClient {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &stripeClient{
		api:    api,
		logger: logger.With().Str("component", "stripe-client").Logger(),
	}
}

// CreateSession creates a one-time-payment checkout session with card
// payments, redirect URLs and the caller's metadata attached.
func (c *stripeClient) CreateSession(ctx context.Context, p *SessionParams) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.LineItems))
	for _, li := range p.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.ProductID != "" {
			productData.Metadata = map[string]string{
				"product_id": li.ProductID,
				"size":       li.Size,
			}
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(p.Currency),
				UnitAmount:  stripe.Int64(li.UnitAmount),
				ProductData: productData,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context:  ctx,
			Metadata: p.Metadata,
		},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		CustomerEmail:      stripe.String(p.CustomerEmail),
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Error().
			Err(err).
			Int("line_items", len(lineItems)).
			Msg("failed to create checkout session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	c.logger.Debug().
		Str("session_id", sess.ID).
		Msg("checkout session created")

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}
