package consistency

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"crossborder-cloud/internal/observability/metrics"
)

// SyncScoreKey is the system_metrics row holding the latest score.
const SyncScoreKey = "data_sync_delay"

// scanCap bounds the number of findings written per scan.
const scanCap = 50

// Clock supplies audit log timestamps.
type Clock interface {
	Now() time.Time
}

// Checker recomputes the cross-stage sync score and records data
// quality findings.
type Checker struct {
	db     *sql.DB
	clock  Clock
	logger *log.Logger
}

// NewChecker constructs a Checker.
func NewChecker(db *sql.DB, clock Clock, logger *log.Logger) (*Checker, error) {
	if db == nil {
		return nil, errors.New("consistency checker: nil db")
	}
	if clock == nil {
		return nil, errors.New("consistency checker: nil clock")
	}
	return &Checker{db: db, clock: clock, logger: logger}, nil
}

// Score derives the sync score from stage counts. Shipments stuck
// before transit weigh fully; undeclared or uncleared customs weigh
// half. The result is clamped to [0, 2], higher meaning healthier.
func Score(total, clearedCustoms, blockedLogistics int64) float64 {
	if total <= 0 {
		total = 1
	}
	score := 2 - (float64(blockedLogistics)/float64(total) + float64(total-clearedCustoms)/float64(total)*0.5)
	if score < 0 {
		return 0
	}
	if score > 2 {
		return 2
	}
	return score
}

// Check recomputes the score from live counts and stores it under
// SyncScoreKey.
func (c *Checker) Check(ctx context.Context) (float64, error) {
	total, err := c.count(ctx, `SELECT COUNT(*) FROM orders`)
	if err != nil {
		return 0, err
	}
	cleared, err := c.count(ctx, `SELECT COUNT(*) FROM customs_clearances WHERE status = 'cleared'`)
	if err != nil {
		return 0, err
	}
	blocked, err := c.count(ctx, `SELECT COUNT(*) FROM logistics WHERE status = 'customs' OR status = 'pickup'`)
	if err != nil {
		return 0, err
	}

	score := Score(total, cleared, blocked)
	if _, err := c.db.ExecContext(ctx, `
INSERT INTO system_metrics (key, value)
VALUES ($1, $2)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, SyncScoreKey, score); err != nil {
		return 0, err
	}
	metrics.SetSyncScore(score)
	return score, nil
}

// QualityScan flags cross-stage anomalies and appends each finding to
// the audit log, capped at scanCap entries per run.
func (c *Checker) QualityScan(ctx context.Context) ([]string, error) {
	var issues []string

	clearedUnsettled, err := c.strings(ctx, `
SELECT o.order_number
FROM orders o
WHERE EXISTS (SELECT 1 FROM customs_clearances cc WHERE cc.order_id = o.id AND cc.status = 'cleared')
  AND EXISTS (SELECT 1 FROM settlements s WHERE s.order_id = o.id AND s.status != 'completed')`)
	if err != nil {
		return nil, err
	}
	for _, orderNumber := range clearedUnsettled {
		issues = append(issues, "customs cleared but order unsettled: "+orderNumber)
	}

	heldOrders, err := c.strings(ctx, `
SELECT o.order_number
FROM orders o
WHERE EXISTS (SELECT 1 FROM customs_clearances cc WHERE cc.order_id = o.id AND cc.status = 'held')`)
	if err != nil {
		return nil, err
	}
	for _, orderNumber := range heldOrders {
		issues = append(issues, "declaration held at inspection: "+orderNumber)
	}

	staleShipments, err := c.strings(ctx, `
SELECT tracking_no
FROM logistics
WHERE status = 'completed' AND actual_time <= 0`)
	if err != nil {
		return nil, err
	}
	for _, trackingNo := range staleShipments {
		issues = append(issues, "completed shipment missing actual time: "+trackingNo)
	}

	recorded := issues
	if len(recorded) > scanCap {
		recorded = recorded[:scanCap]
	}
	now := c.clock.Now().UTC().Format(time.RFC3339)
	for _, issue := range recorded {
		if _, err := c.db.ExecContext(ctx, `
INSERT INTO audit_logs (message, created_at)
VALUES ($1, $2)`, "[Risk] "+issue, now); err != nil {
			return nil, err
		}
	}
	return issues, nil
}

func (c *Checker) count(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Checker) strings(ctx context.Context, query string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
