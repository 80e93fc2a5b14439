package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Transitions past "pending" are driven by payment webhooks
// and fulfilment, which live outside this service.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Order represents an order header. Amount fields are computed server-side,
// never taken from the request. The shipping address holds placeholder
// values until the payment platform webhook supplies the real one.
type Order struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	OrderNumber        string    `json:"orderNumber" db:"order_number"`
	UserID             string    `json:"userId" db:"user_id"`
	Status             string    `json:"status" db:"status"`
	PaymentStatus      string    `json:"paymentStatus" db:"payment_status"`
	TotalAmount        int64     `json:"totalAmount" db:"total_amount"`
	ShippingAmount     int64     `json:"shippingAmount" db:"shipping_amount"`
	TaxAmount          int64     `json:"taxAmount" db:"tax_amount"`
	CheckoutSessionID  string    `json:"checkoutSessionId" db:"checkout_session_id"`
	ShippingFirstName  string    `json:"shippingFirstName" db:"shipping_first_name"`
	ShippingLastName   string    `json:"shippingLastName" db:"shipping_last_name"`
	ShippingMobile     string    `json:"shippingMobile,omitempty" db:"shipping_mobile"`
	ShippingAddress1   string    `json:"shippingAddress1" db:"shipping_address_1"`
	ShippingAddress2   string    `json:"shippingAddress2,omitempty" db:"shipping_address_2"`
	ShippingCity       string    `json:"shippingCity" db:"shipping_city"`
	ShippingState      string    `json:"shippingState" db:"shipping_state"`
	ShippingPostalCode string    `json:"shippingPostalCode" db:"shipping_postal_code"`
	ShippingCountry    string    `json:"shippingCountry" db:"shipping_country"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order, snapshotting the product
// name and unit price at purchase time. Immutable after insert.
type OrderItem struct {
	ID          uuid.UUID `json:"-" db:"id"`
	OrderID     uuid.UUID `json:"-" db:"order_id"`
	ProductID   string    `json:"productId" db:"product_id"`
	ProductName string    `json:"productName" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Size        string    `json:"size,omitempty" db:"size"`
	UnitPrice   int64     `json:"unitPrice" db:"unit_price"`
	TotalPrice  int64     `json:"totalPrice" db:"total_price"`
}

// CheckoutItem is a cart line item as submitted by the storefront client.
type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

// CheckoutRequest is the payload for creating a checkout session.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	CustomerEmail string         `json:"customer_email"`
	CustomerName  string         `json:"customer_name"`
	SuccessURL    string         `json:"success_url"`
	CancelURL     string         `json:"cancel_url"`
	PromoCode     *string        `json:"promo_code,omitempty"`
}

// CheckoutResponse carries the opaque payment session identifier back to
// the client, which redirects to the platform's hosted page.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
}

// OrderResponse is the order header plus its line items.
type OrderResponse struct {
	Order *Order      `json:"order"`
	Items []OrderItem `json:"items"`
}
