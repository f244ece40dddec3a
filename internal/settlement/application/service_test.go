package application

import (
	"context"
	"testing"

	settlement "crossborder-cloud/internal/settlement/domain"
	settlementmem "crossborder-cloud/internal/settlement/infrastructure/memory"
)

type stubRandom struct {
	n int
}

func (s stubRandom) Float64() float64     { return 0.5 }
func (s stubRandom) Intn(int) int         { return s.n }
func (s stubRandom) Int63n(n int64) int64 { return int64(s.n) }

type stubPayments struct {
	top *settlement.PaymentMethod
}

func (s stubPayments) TopByAmount(context.Context) (*settlement.PaymentMethod, error) {
	return s.top, nil
}

func TestEnsureIsIdempotent(t *testing.T) {
	repo := settlementmem.NewSettlementRepository()
	service, err := NewService(repo, stubPayments{}, stubRandom{n: 42})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	if err := service.Ensure(ctx, "O10001"); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	first, err := repo.FindByOrder(ctx, "O10001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if first == nil {
		t.Fatal("expected settlement row after ensure")
	}
	if first.Status != settlement.StatusPending {
		t.Fatalf("expected pending status, got %q", first.Status)
	}
	if first.SettlementTime != 0 {
		t.Fatalf("expected zero settlement time, got %v", first.SettlementTime)
	}
	if first.RiskLevel != settlement.RiskMedium {
		t.Fatalf("expected medium risk, got %q", first.RiskLevel)
	}

	if err := service.Ensure(ctx, "O10001"); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	second, err := repo.FindByOrder(ctx, "O10001")
	if err != nil {
		t.Fatalf("find after second ensure: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second ensure replaced the row: %q != %q", second.ID, first.ID)
	}
}

func TestSettlePaymentUsesTopMethod(t *testing.T) {
	repo := settlementmem.NewSettlementRepository()
	service, err := NewService(repo, stubPayments{top: &settlement.PaymentMethod{Method: "L/C", AvgTime: 2.1}}, stubRandom{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	if err := service.Ensure(ctx, "O10002"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	method, err := service.SettlePayment(ctx, "O10002")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if method != "L/C" {
		t.Fatalf("expected L/C, got %q", method)
	}

	record, err := repo.FindByOrder(ctx, "O10002")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if record.Status != settlement.StatusCompleted {
		t.Fatalf("expected completed, got %q", record.Status)
	}
	if record.SettlementTime != 2.1 {
		t.Fatalf("expected settlement time 2.1, got %v", record.SettlementTime)
	}
	if record.RiskLevel != settlement.RiskLow {
		t.Fatalf("expected low risk, got %q", record.RiskLevel)
	}
}

func TestSettlePaymentFallsBackWithoutPayments(t *testing.T) {
	repo := settlementmem.NewSettlementRepository()
	service, err := NewService(repo, stubPayments{}, stubRandom{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	if err := service.Ensure(ctx, "O10003"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	method, err := service.SettlePayment(ctx, "O10003")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if method != settlement.DefaultPaymentMethod {
		t.Fatalf("expected default method, got %q", method)
	}

	record, err := repo.FindByOrder(ctx, "O10003")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if record.SettlementTime != settlement.FallbackSettlementTime {
		t.Fatalf("expected fallback time %d, got %v", settlement.FallbackSettlementTime, record.SettlementTime)
	}
}

func TestSettlePaymentFallsBackOnZeroAvgTime(t *testing.T) {
	repo := settlementmem.NewSettlementRepository()
	service, err := NewService(repo, stubPayments{top: &settlement.PaymentMethod{Method: "Alipay", AvgTime: 0}}, stubRandom{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	if err := service.Ensure(ctx, "O10004"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := service.SettlePayment(ctx, "O10004"); err != nil {
		t.Fatalf("settle: %v", err)
	}

	record, err := repo.FindByOrder(ctx, "O10004")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if record.SettlementTime != settlement.FallbackSettlementTime {
		t.Fatalf("expected fallback time, got %v", record.SettlementTime)
	}
}
