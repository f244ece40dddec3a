package store

import (
	"context"
	"fmt"
	"time"

	"crossborder-cloud/internal/random"
)

// Clock supplies seed timestamps.
type Clock interface {
	Now() time.Time
}

var seedEnterprises = []struct {
	name     string
	category string
}{
	{"上海美妆集团", "beauty"},
	{"深圳电子科技", "electronics"},
	{"广州食品进出口", "wine"},
	{"宁波服装贸易", "textile"},
	{"青岛机械制造", "appliance"},
}

var seedStatuses = []string{"pending", "processing", "customs", "shipping", "completed", "blocked"}

var seedCurrencies = []string{"USD", "EUR", "GBP", "CNY"}

var seedPayments = []struct {
	method      string
	volume      int
	amount      float64
	successRate float64
	avgTime     float64
}{
	{"L/C", 3421, 12500000, 99.8, 2.1},
	{"T/T", 5678, 8900000, 98.5, 1.8},
	{"Alipay", 8923, 5600000, 99.9, 0.5},
	{"WeChat Pay", 4567, 3200000, 99.7, 0.3},
	{"Digital Currency", 234, 1800000, 95.2, 3.5},
}

var seedMetrics = []struct {
	key   string
	value float64
}{
	{"data_sync_delay", 0.8},
	{"system_load", 68.5},
}

// Seed fills an empty database with demo orders, the aggregate
// payment channels and default system metrics. A database that
// already carries orders keeps them; payment and metric rows are
// upsert-free inserts guarded by ON CONFLICT DO NOTHING, so Seed is
// safe to call on every start.
func (s *Store) Seed(ctx context.Context, orderCount int, rng random.Source, clock Clock) error {
	if rng == nil || clock == nil {
		return fmt.Errorf("store: seed requires random source and clock")
	}

	var existing int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&existing); err != nil {
		return err
	}
	if existing == 0 {
		if err := s.seedOrders(ctx, orderCount, rng, clock); err != nil {
			return err
		}
	}

	for _, p := range seedPayments {
		if _, err := s.DB.ExecContext(ctx, `
INSERT INTO payments (method, volume, amount, success_rate, avg_time)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT(method) DO NOTHING`,
			p.method, p.volume, p.amount, p.successRate, p.avgTime); err != nil {
			return err
		}
	}

	for _, m := range seedMetrics {
		if _, err := s.DB.ExecContext(ctx, `
INSERT INTO system_metrics (key, value)
VALUES ($1, $2)
ON CONFLICT(key) DO NOTHING`, m.key, m.value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedOrders(ctx context.Context, orderCount int, rng random.Source, clock Clock) error {
	now := clock.Now().UTC()
	for i := 0; i < orderCount; i++ {
		id := fmt.Sprintf("O%d", 10000+i)
		pick := rng.Intn(len(seedEnterprises))
		created := now.Add(-time.Duration(rng.Intn(24)) * time.Hour)
		updated := created.Add(time.Duration(rng.Intn(6)) * time.Hour)
		if _, err := s.DB.ExecContext(ctx, `
INSERT INTO orders (id, order_number, enterprise, category, status, amount, currency, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id,
			"ORD-"+id,
			seedEnterprises[pick].name,
			seedEnterprises[pick].category,
			seedStatuses[rng.Intn(len(seedStatuses))],
			float64(50000+rng.Intn(200000)),
			seedCurrencies[rng.Intn(len(seedCurrencies))],
			created.Format(time.RFC3339),
			updated.Format(time.RFC3339),
		); err != nil {
			return err
		}
	}
	return nil
}
