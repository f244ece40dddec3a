package memory

import (
	"context"
	"sync"

	customs "crossborder-cloud/internal/customs/domain"
)

// DeclarationRepository is an in-memory repository for declarations.
type DeclarationRepository struct {
	mu   sync.RWMutex
	data map[string]*customs.Declaration
}

// NewDeclarationRepository constructs a repository.
func NewDeclarationRepository() *DeclarationRepository {
	return &DeclarationRepository{data: make(map[string]*customs.Declaration)}
}

// FindByOrder loads the declaration for an order.
func (r *DeclarationRepository) FindByOrder(ctx context.Context, orderID string) (*customs.Declaration, error) {
	_ = ctx
	if orderID == "" {
		return nil, customs.ErrEmptyOrderID
	}

	r.mu.RLock()
	record := r.data[orderID]
	r.mu.RUnlock()
	if record == nil {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

// Insert stores a new declaration row.
func (r *DeclarationRepository) Insert(ctx context.Context, record *customs.Declaration) error {
	_ = ctx
	if record == nil {
		return customs.ErrNilDeclaration
	}
	if record.OrderID == "" {
		return customs.ErrEmptyOrderID
	}

	copied := *record
	r.mu.Lock()
	r.data[record.OrderID] = &copied
	r.mu.Unlock()
	return nil
}

// MarkInspecting advances a declared row to inspecting.
func (r *DeclarationRepository) MarkInspecting(ctx context.Context, id string, clearanceTime float64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.data {
		if record.ID == id {
			record.Status = customs.StatusInspecting
			record.ClearanceTime = clearanceTime
			return nil
		}
	}
	return nil
}

// Resolve terminates an inspection as cleared or held.
func (r *DeclarationRepository) Resolve(ctx context.Context, id, status string, clearanceTime, compliance, riskScore float64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.data {
		if record.ID == id {
			record.Status = status
			record.ClearanceTime = clearanceTime
			record.Compliance = compliance
			record.RiskScore = riskScore
			return nil
		}
	}
	return nil
}
