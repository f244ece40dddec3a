package settlement

import (
	"context"
	"errors"
)

// Settlement statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Risk levels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// FallbackSettlementTime is used when no payment method row exists or
// the top method carries no average time.
const FallbackSettlementTime = 2

// DefaultPaymentMethod is reported when the payments table is empty.
const DefaultPaymentMethod = "T/T"

// Settlement is the per-order financial record.
type Settlement struct {
	ID             string
	OrderID        string
	Status         string
	SettlementTime float64
	RiskLevel      string
}

// PaymentMethod is an aggregate payment-channel row.
type PaymentMethod struct {
	Method  string
	AvgTime float64
}

var (
	ErrNilSettlement = errors.New("settlement: nil record")
	ErrEmptyOrderID  = errors.New("settlement: empty order id")
)

// Repository persists settlements. FindByOrder returns (nil, nil) when
// no row exists for the order.
type Repository interface {
	FindByOrder(ctx context.Context, orderID string) (*Settlement, error)
	Insert(ctx context.Context, record *Settlement) error
	Complete(ctx context.Context, orderID string, settlementTime float64, riskLevel string) error
}

// PaymentMethodReader exposes the highest-amount payment method.
// TopByAmount returns (nil, nil) when the payments table is empty.
type PaymentMethodReader interface {
	TopByAmount(ctx context.Context) (*PaymentMethod, error)
}
