package customs

import (
	"context"
	"errors"
)

// Declaration statuses.
const (
	StatusDeclared   = "declared"
	StatusInspecting = "inspecting"
	StatusCleared    = "cleared"
	StatusHeld       = "held"
)

// HeldProbability is the chance an inspection ends in a hold.
const HeldProbability = 0.12

// Constants applied by the inspection state machine.
const (
	InitialCompliance = 80
	InitialRiskScore  = 20

	InspectingClearanceTime = 1.2

	HeldClearanceTime = 4.5
	HeldCompliance    = 72
	HeldRiskScore     = 65

	ClearedClearanceTime = 2.1
	ClearedCompliance    = 98
	ClearedRiskScore     = 12
)

// Declaration is the per-order customs clearance record.
type Declaration struct {
	ID            string
	DeclarationNo string
	Product       string
	Enterprise    string
	Status        string
	ClearanceTime float64
	Compliance    float64
	RiskScore     float64
	OrderID       string
}

var (
	ErrNilDeclaration = errors.New("customs: nil declaration")
	ErrEmptyOrderID   = errors.New("customs: empty order id")
)

// Repository persists declarations. FindByOrder returns (nil, nil)
// when no row exists for the order.
type Repository interface {
	FindByOrder(ctx context.Context, orderID string) (*Declaration, error)
	Insert(ctx context.Context, record *Declaration) error
	// MarkInspecting advances a declared row to inspecting.
	MarkInspecting(ctx context.Context, id string, clearanceTime float64) error
	// Resolve terminates an inspection as cleared or held.
	Resolve(ctx context.Context, id, status string, clearanceTime, compliance, riskScore float64) error
}
