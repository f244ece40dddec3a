package application

import (
	"context"
	"errors"
	"fmt"

	"crossborder-cloud/internal/random"
	settlement "crossborder-cloud/internal/settlement/domain"
)

// Service implements the settlement stage of the pipeline.
type Service struct {
	repo     settlement.Repository
	payments settlement.PaymentMethodReader
	rng      random.Source
}

// NewService constructs a Service.
func NewService(repo settlement.Repository, payments settlement.PaymentMethodReader, rng random.Source) (*Service, error) {
	if repo == nil {
		return nil, errors.New("settlement service: nil repo")
	}
	if payments == nil {
		return nil, errors.New("settlement service: nil payment reader")
	}
	if rng == nil {
		return nil, errors.New("settlement service: nil random source")
	}
	return &Service{repo: repo, payments: payments, rng: rng}, nil
}

// Ensure creates the settlement row for the order if none exists.
// A second call for the same order is a no-op.
func (s *Service) Ensure(ctx context.Context, orderID string) error {
	if orderID == "" {
		return settlement.ErrEmptyOrderID
	}
	existing, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.repo.Insert(ctx, &settlement.Settlement{
		ID:             fmt.Sprintf("S%06d", s.rng.Intn(1_000_000)),
		OrderID:        orderID,
		Status:         settlement.StatusPending,
		SettlementTime: 0,
		RiskLevel:      settlement.RiskMedium,
	})
}

// SettlePayment completes the order's settlement using the duration of
// the highest-amount payment method and downgrades risk to low. The
// method used is returned for logging.
func (s *Service) SettlePayment(ctx context.Context, orderID string) (string, error) {
	if orderID == "" {
		return "", settlement.ErrEmptyOrderID
	}
	top, err := s.payments.TopByAmount(ctx)
	if err != nil {
		return "", err
	}

	method := settlement.DefaultPaymentMethod
	settlementTime := float64(settlement.FallbackSettlementTime)
	if top != nil {
		method = top.Method
		if top.AvgTime != 0 {
			settlementTime = top.AvgTime
		}
	}

	if err := s.repo.Complete(ctx, orderID, settlementTime, settlement.RiskLow); err != nil {
		return "", err
	}
	return method, nil
}
