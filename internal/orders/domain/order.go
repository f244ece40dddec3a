package orders

import (
	"context"
	"errors"
)

// Order is a store-resident synthetic order. Orders are created by the
// intake flow and are read-only to the collaboration engine.
type Order struct {
	ID          string
	OrderNumber string
	Enterprise  string
	Category    string
	Status      string
	Amount      float64
	Currency    string
	CreatedAt   string
	UpdatedAt   string
}

// ErrInvalidLimit is returned for non-positive sample or list limits.
var ErrInvalidLimit = errors.New("orders: limit must be positive")

// Repository reads orders from the store.
type Repository interface {
	// SampleIDs returns up to limit order ids in random order.
	SampleIDs(ctx context.Context, limit int) ([]string, error)
	// List returns up to limit orders, newest first.
	List(ctx context.Context, limit int) ([]Order, error)
}
