package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	settlement "crossborder-cloud/internal/settlement/domain"
)

// SettlementRepository persists settlements via database/sql.
type SettlementRepository struct {
	db *sql.DB
}

// NewSettlementRepository constructs a repository.
func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// FindByOrder loads the canonical settlement for an order.
func (r *SettlementRepository) FindByOrder(ctx context.Context, orderID string) (*settlement.Settlement, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("settlement repo: nil db")
	}
	if orderID == "" {
		return nil, settlement.ErrEmptyOrderID
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, order_id, status, settlement_time, risk_level
FROM settlements
WHERE order_id = $1
LIMIT 1`, orderID)

	var record settlement.Settlement
	if err := row.Scan(&record.ID, &record.OrderID, &record.Status, &record.SettlementTime, &record.RiskLevel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Insert stores a new settlement row.
func (r *SettlementRepository) Insert(ctx context.Context, record *settlement.Settlement) error {
	if r == nil || r.db == nil {
		return errors.New("settlement repo: nil db")
	}
	if record == nil {
		return settlement.ErrNilSettlement
	}
	if record.OrderID == "" {
		return settlement.ErrEmptyOrderID
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO settlements (id, order_id, status, settlement_time, risk_level)
VALUES ($1, $2, $3, $4, $5)`,
		record.ID,
		record.OrderID,
		record.Status,
		record.SettlementTime,
		record.RiskLevel,
	)
	return err
}

// Complete marks the order's settlement completed with the given
// duration and risk level.
func (r *SettlementRepository) Complete(ctx context.Context, orderID string, settlementTime float64, riskLevel string) error {
	if r == nil || r.db == nil {
		return errors.New("settlement repo: nil db")
	}
	if orderID == "" {
		return settlement.ErrEmptyOrderID
	}

	_, err := r.db.ExecContext(ctx, `
UPDATE settlements
SET status = $1, settlement_time = $2, risk_level = $3
WHERE order_id = $4`,
		settlement.StatusCompleted,
		settlementTime,
		riskLevel,
		orderID,
	)
	return err
}

// PaymentMethodReader reads aggregate payment rows.
type PaymentMethodReader struct {
	db *sql.DB
}

// NewPaymentMethodReader constructs a reader.
func NewPaymentMethodReader(db *sql.DB) *PaymentMethodReader {
	return &PaymentMethodReader{db: db}
}

// TopByAmount returns the payment method with the highest total amount.
func (r *PaymentMethodReader) TopByAmount(ctx context.Context) (*settlement.PaymentMethod, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("payment reader: nil db")
	}

	row := r.db.QueryRowContext(ctx, `
SELECT method, avg_time
FROM payments
ORDER BY amount DESC
LIMIT 1`)

	var method settlement.PaymentMethod
	if err := row.Scan(&method.Method, &method.AvgTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}
