package payment

import "context"

// LineItem is one entry on the hosted checkout page. UnitAmount is in minor
// currency units (paise).
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
	ProductID  string
	Size       string
}

// SessionParams describes a one-time-payment checkout session.
type SessionParams struct {
	LineItems     []LineItem
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Session is the created checkout session. ID is the opaque token the
// storefront redirects with.
type Session struct {
	ID  string
	URL string
}

// SessionClient creates hosted checkout sessions on the payment platform.
type SessionClient interface {
	CreateSession(ctx context.Context, params *SessionParams) (*Session, error)
}
