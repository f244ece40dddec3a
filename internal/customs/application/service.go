package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	customs "crossborder-cloud/internal/customs/domain"
	"crossborder-cloud/internal/random"
)

// Placeholder labels carried by declarations until the intake flow
// assigns real product and enterprise data.
const (
	placeholderProduct    = "general cargo"
	placeholderEnterprise = "unassigned"
)

// Clock supplies the time used for declaration numbers.
type Clock interface {
	Now() time.Time
}

// Service implements the customs stage of the pipeline.
type Service struct {
	repo  customs.Repository
	rng   random.Source
	clock Clock
}

// NewService constructs a Service.
func NewService(repo customs.Repository, rng random.Source, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("customs service: nil repo")
	}
	if rng == nil {
		return nil, errors.New("customs service: nil random source")
	}
	if clock == nil {
		return nil, errors.New("customs service: nil clock")
	}
	return &Service{repo: repo, rng: rng, clock: clock}, nil
}

// Ensure creates the declaration row for the order if none exists.
func (s *Service) Ensure(ctx context.Context, orderID string) error {
	if orderID == "" {
		return customs.ErrEmptyOrderID
	}
	existing, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.repo.Insert(ctx, &customs.Declaration{
		ID:            fmt.Sprintf("C%06d", s.rng.Intn(1_000_000)),
		DeclarationNo: fmt.Sprintf("CD%d", s.clock.Now().UnixMilli()),
		Product:       placeholderProduct,
		Enterprise:    placeholderEnterprise,
		Status:        customs.StatusDeclared,
		ClearanceTime: 0,
		Compliance:    customs.InitialCompliance,
		RiskScore:     customs.InitialRiskScore,
		OrderID:       orderID,
	})
}

// Progress advances the declaration one state-machine step. A declared
// row enters inspection; an inspecting row resolves to held with
// probability HeldProbability, otherwise cleared. Terminal states are
// left untouched.
func (s *Service) Progress(ctx context.Context, orderID string) error {
	if orderID == "" {
		return customs.ErrEmptyOrderID
	}
	current, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	switch current.Status {
	case customs.StatusDeclared:
		return s.repo.MarkInspecting(ctx, current.ID, customs.InspectingClearanceTime)
	case customs.StatusInspecting:
		if s.rng.Float64() < customs.HeldProbability {
			return s.repo.Resolve(ctx, current.ID, customs.StatusHeld,
				customs.HeldClearanceTime, customs.HeldCompliance, customs.HeldRiskScore)
		}
		return s.repo.Resolve(ctx, current.ID, customs.StatusCleared,
			customs.ClearedClearanceTime, customs.ClearedCompliance, customs.ClearedRiskScore)
	default:
		return nil
	}
}
