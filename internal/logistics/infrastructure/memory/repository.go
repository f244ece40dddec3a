package memory

import (
	"context"
	"sync"

	logistics "crossborder-cloud/internal/logistics/domain"
)

// ShipmentRepository is an in-memory repository for shipments. Rows
// are kept in insertion order per order so the latest booking wins.
type ShipmentRepository struct {
	mu   sync.RWMutex
	data map[string][]*logistics.Shipment
}

// NewShipmentRepository constructs a repository.
func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{data: make(map[string][]*logistics.Shipment)}
}

// FindLatestByOrder loads the most recently inserted shipment for an
// order.
func (r *ShipmentRepository) FindLatestByOrder(ctx context.Context, orderID string) (*logistics.Shipment, error) {
	_ = ctx
	if orderID == "" {
		return nil, logistics.ErrEmptyOrderID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.data[orderID]
	if len(rows) == 0 {
		return nil, nil
	}
	copied := *rows[len(rows)-1]
	return &copied, nil
}

// Insert stores a new shipment row.
func (r *ShipmentRepository) Insert(ctx context.Context, record *logistics.Shipment) error {
	_ = ctx
	if record == nil {
		return logistics.ErrNilShipment
	}
	if record.OrderID == "" {
		return logistics.ErrEmptyOrderID
	}

	copied := *record
	r.mu.Lock()
	r.data[record.OrderID] = append(r.data[record.OrderID], &copied)
	r.mu.Unlock()
	return nil
}

// Advance moves a shipment to its next leg.
func (r *ShipmentRepository) Advance(ctx context.Context, id, status string, actualTime, efficiency float64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rows := range r.data {
		for _, record := range rows {
			if record.ID == id {
				record.Status = status
				record.ActualTime = actualTime
				record.Efficiency = efficiency
				return nil
			}
		}
	}
	return nil
}
