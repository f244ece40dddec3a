package memory

import (
	"context"
	"sync"

	settlement "crossborder-cloud/internal/settlement/domain"
)

// SettlementRepository is an in-memory repository for settlements.
type SettlementRepository struct {
	mu   sync.RWMutex
	data map[string]*settlement.Settlement
}

// NewSettlementRepository constructs a repository.
func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{data: make(map[string]*settlement.Settlement)}
}

// FindByOrder loads the settlement for an order.
func (r *SettlementRepository) FindByOrder(ctx context.Context, orderID string) (*settlement.Settlement, error) {
	_ = ctx
	if orderID == "" {
		return nil, settlement.ErrEmptyOrderID
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

// Insert stores a new settlement row.
func (r *SettlementRepository) Insert(ctx context.Context, record *settlement.Settlement) error {
	_ = ctx
	if record == nil {
		return settlement.ErrNilSettlement
	}
	if record.OrderID == "" {
		return settlement.ErrEmptyOrderID
	}

	copied := *record
	r.mu.Lock()
	r.data[record.OrderID] = &copied
	r.mu.Unlock()
	return nil
}

// Complete marks the order's settlement completed.
func (r *SettlementRepository) Complete(ctx context.Context, orderID string, settlementTime float64, riskLevel string) error {
	_ = ctx
	if orderID == "" {
		return settlement.ErrEmptyOrderID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	record := r.data[orderID]
	if record == nil {
		return nil
	}
	record.Status = settlement.StatusCompleted
	record.SettlementTime = settlementTime
	record.RiskLevel = riskLevel
	return nil
}
