package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	logistics "crossborder-cloud/internal/logistics/domain"
)

// ShipmentRepository persists shipments via database/sql.
type ShipmentRepository struct {
	db *sql.DB
}

// NewShipmentRepository constructs a repository.
func NewShipmentRepository(db *sql.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// FindLatestByOrder loads the most recently booked shipment for an
// order.
func (r *ShipmentRepository) FindLatestByOrder(ctx context.Context, orderID string) (*logistics.Shipment, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("logistics repo: nil db")
	}
	if orderID == "" {
		return nil, logistics.ErrEmptyOrderID
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, tracking_no, origin, destination, status, estimated_time, actual_time, efficiency, order_id, created_at
FROM logistics
WHERE order_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`, orderID)

	var record logistics.Shipment
	if err := row.Scan(
		&record.ID,
		&record.TrackingNo,
		&record.Origin,
		&record.Destination,
		&record.Status,
		&record.EstimatedTime,
		&record.ActualTime,
		&record.Efficiency,
		&record.OrderID,
		&record.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Insert stores a new shipment row.
func (r *ShipmentRepository) Insert(ctx context.Context, record *logistics.Shipment) error {
	if r == nil || r.db == nil {
		return errors.New("logistics repo: nil db")
	}
	if record == nil {
		return logistics.ErrNilShipment
	}
	if record.OrderID == "" {
		return logistics.ErrEmptyOrderID
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO logistics (id, tracking_no, origin, destination, status, estimated_time, actual_time, efficiency, order_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.ID,
		record.TrackingNo,
		record.Origin,
		record.Destination,
		record.Status,
		record.EstimatedTime,
		record.ActualTime,
		record.Efficiency,
		record.OrderID,
		record.CreatedAt,
	)
	return err
}

// Advance moves a shipment to its next leg.
func (r *ShipmentRepository) Advance(ctx context.Context, id, status string, actualTime, efficiency float64) error {
	if r == nil || r.db == nil {
		return errors.New("logistics repo: nil db")
	}

	_, err := r.db.ExecContext(ctx, `
UPDATE logistics
SET status = $1, actual_time = $2, efficiency = $3
WHERE id = $4`,
		status,
		actualTime,
		efficiency,
		id,
	)
	return err
}
