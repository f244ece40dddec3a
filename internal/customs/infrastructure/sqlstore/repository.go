package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	customs "crossborder-cloud/internal/customs/domain"
)

// DeclarationRepository persists customs declarations via database/sql.
type DeclarationRepository struct {
	db *sql.DB
}

// NewDeclarationRepository constructs a repository.
func NewDeclarationRepository(db *sql.DB) *DeclarationRepository {
	return &DeclarationRepository{db: db}
}

// FindByOrder loads the canonical declaration for an order.
func (r *DeclarationRepository) FindByOrder(ctx context.Context, orderID string) (*customs.Declaration, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("customs repo: nil db")
	}
	if orderID == "" {
		return nil, customs.ErrEmptyOrderID
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, declaration_no, product, enterprise, status, clearance_time, compliance, risk_score, order_id
FROM customs_clearances
WHERE order_id = $1
LIMIT 1`, orderID)

	var record customs.Declaration
	if err := row.Scan(
		&record.ID,
		&record.DeclarationNo,
		&record.Product,
		&record.Enterprise,
		&record.Status,
		&record.ClearanceTime,
		&record.Compliance,
		&record.RiskScore,
		&record.OrderID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Insert stores a new declaration row.
func (r *DeclarationRepository) Insert(ctx context.Context, record *customs.Declaration) error {
	if r == nil || r.db == nil {
		return errors.New("customs repo: nil db")
	}
	if record == nil {
		return customs.ErrNilDeclaration
	}
	if record.OrderID == "" {
		return customs.ErrEmptyOrderID
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO customs_clearances (id, declaration_no, product, enterprise, status, clearance_time, compliance, risk_score, order_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID,
		record.DeclarationNo,
		record.Product,
		record.Enterprise,
		record.Status,
		record.ClearanceTime,
		record.Compliance,
		record.RiskScore,
		record.OrderID,
	)
	return err
}

// MarkInspecting advances a declared row to inspecting.
func (r *DeclarationRepository) MarkInspecting(ctx context.Context, id string, clearanceTime float64) error {
	if r == nil || r.db == nil {
		return errors.New("customs repo: nil db")
	}

	_, err := r.db.ExecContext(ctx, `
UPDATE customs_clearances
SET status = $1, clearance_time = $2
WHERE id = $3`,
		customs.StatusInspecting,
		clearanceTime,
		id,
	)
	return err
}

// Resolve terminates an inspection as cleared or held.
func (r *DeclarationRepository) Resolve(ctx context.Context, id, status string, clearanceTime, compliance, riskScore float64) error {
	if r == nil || r.db == nil {
		return errors.New("customs repo: nil db")
	}

	_, err := r.db.ExecContext(ctx, `
UPDATE customs_clearances
SET status = $1, clearance_time = $2, compliance = $3, risk_score = $4
WHERE id = $5`,
		status,
		clearanceTime,
		compliance,
		riskScore,
		id,
	)
	return err
}
