package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	orders "crossborder-cloud/internal/orders/domain"
	"crossborder-cloud/internal/random"
	"crossborder-cloud/internal/store"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
}

func openSeededStore(t *testing.T, orderCount int) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "platform.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := s.Seed(ctx, orderCount, random.New(7), fixedClock{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestSampleIDsRespectsLimit(t *testing.T) {
	s := openSeededStore(t, 10)
	repo := NewOrderRepository(s.DB)
	ctx := context.Background()

	ids, err := repo.SampleIDs(ctx, 4)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(ids) != 4 {
		t.Fatalf("expected 4 ids, got %d", len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id in sample: %s", id)
		}
		seen[id] = true
	}

	all, err := repo.SampleIDs(ctx, 50)
	if err != nil {
		t.Fatalf("sample all: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("expected every order, got %d", len(all))
	}
}

func TestSampleIDsRejectsBadLimit(t *testing.T) {
	s := openSeededStore(t, 1)
	repo := NewOrderRepository(s.DB)

	if _, err := repo.SampleIDs(context.Background(), 0); !errors.Is(err, orders.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestListReturnsSeededOrders(t *testing.T) {
	s := openSeededStore(t, 5)
	repo := NewOrderRepository(s.DB)

	listed, err := repo.List(context.Background(), 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 5 {
		t.Fatalf("expected 5 orders, got %d", len(listed))
	}
	for _, item := range listed {
		if item.ID == "" || item.OrderNumber == "" || item.Enterprise == "" {
			t.Fatalf("incomplete order row: %+v", item)
		}
	}
}
