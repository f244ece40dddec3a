package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"crossborder-cloud/internal/random"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "platform.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s
}

func TestOpenDetectsDialect(t *testing.T) {
	s := openTestStore(t)
	if s.Dialect != DialectSQLite {
		t.Fatalf("expected sqlite dialect, got %q", s.Dialect)
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
}

func TestSeedFillsEmptyDatabaseOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rng := random.New(42)

	if err := s.Seed(ctx, 30, rng, fixedClock{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Seed(ctx, 30, rng, fixedClock{}); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var orders int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orders); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orders != 30 {
		t.Fatalf("expected 30 orders after reseed, got %d", orders)
	}

	var payments int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&payments); err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if payments != int64(len(seedPayments)) {
		t.Fatalf("expected %d payment channels, got %d", len(seedPayments), payments)
	}

	var syncScore float64
	if err := s.DB.QueryRowContext(ctx, `SELECT value FROM system_metrics WHERE key = 'data_sync_delay'`).Scan(&syncScore); err != nil {
		t.Fatalf("read sync score: %v", err)
	}
	if syncScore != 0.8 {
		t.Fatalf("expected default sync score 0.8, got %v", syncScore)
	}
}

func TestAuditLogsAutoincrement(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.DB.ExecContext(ctx, `
INSERT INTO audit_logs (message, created_at)
VALUES ($1, $2)`, "[System] startup", fixedClock{}.Now().Format(time.RFC3339)); err != nil {
			t.Fatalf("insert audit row %d: %v", i, err)
		}
	}

	var maxID int64
	if err := s.DB.QueryRowContext(ctx, `SELECT MAX(id) FROM audit_logs`).Scan(&maxID); err != nil {
		t.Fatalf("read max id: %v", err)
	}
	if maxID != 3 {
		t.Fatalf("expected 3 audit rows, got max id %d", maxID)
	}
}
