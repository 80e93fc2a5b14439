package promo

import "context"

// Validator checks free-shipping promo codes submitted at checkout.
type Validator interface {
	// Validate checks if a promo code grants free shipping. A valid code
	// must appear in at least MinMatchCount of the loaded code lists.
	Validate(ctx context.Context, code string) error

	// Close releases resources held by the validator.
	Close() error
}

// CodeSet represents a set of promo codes for fast lookup.
type CodeSet interface {
	// Contains checks if a code exists in the set.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int
}

// Loader defines the interface for loading promo code lists. Lists are
// gzipped, one code per line.
type Loader interface {
	Load(ctx context.Context, path string) (CodeSet, error)
}
