package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	logistics "crossborder-cloud/internal/logistics/domain"
	"crossborder-cloud/internal/random"
)

// Clock supplies the booking timestamp for new shipments.
type Clock interface {
	Now() time.Time
}

// Service implements the logistics stage of the pipeline.
type Service struct {
	repo  logistics.Repository
	rng   random.Source
	clock Clock
}

// NewService constructs a Service.
func NewService(repo logistics.Repository, rng random.Source, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("logistics service: nil repo")
	}
	if rng == nil {
		return nil, errors.New("logistics service: nil random source")
	}
	if clock == nil {
		return nil, errors.New("logistics service: nil clock")
	}
	return &Service{repo: repo, rng: rng, clock: clock}, nil
}

// Ensure books a shipment for the order if none exists. The booking
// picks a random origin and destination pair and a fresh tracking
// number.
func (s *Service) Ensure(ctx context.Context, orderID string) error {
	if orderID == "" {
		return logistics.ErrEmptyOrderID
	}
	existing, err := s.repo.FindLatestByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.repo.Insert(ctx, &logistics.Shipment{
		ID:            fmt.Sprintf("L%06d", s.rng.Intn(1_000_000)),
		TrackingNo:    fmt.Sprintf("TR%010d", s.rng.Int63n(10_000_000_000)),
		Origin:        logistics.Origins[s.rng.Intn(len(logistics.Origins))],
		Destination:   logistics.Destinations[s.rng.Intn(len(logistics.Destinations))],
		Status:        logistics.StatusPickup,
		EstimatedTime: logistics.DefaultEstimatedTime,
		ActualTime:    0,
		Efficiency:    0,
		OrderID:       orderID,
		CreatedAt:     s.clock.Now().UTC().Format(time.RFC3339),
	})
}

// Progress advances the latest shipment one leg. Completion records
// the actual transit time and the resulting efficiency; every other
// leg keeps both at zero. Missing shipments are a no-op.
func (s *Service) Progress(ctx context.Context, orderID string) error {
	if orderID == "" {
		return logistics.ErrEmptyOrderID
	}
	current, err := s.repo.FindLatestByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	next := logistics.NextStatus(current.Status)
	actualTime := 0.0
	if next == logistics.StatusCompleted {
		actualTime = current.EstimatedTime - logistics.CompletionTimeSaving
	}
	efficiency := logistics.EfficiencyFor(actualTime, current.EstimatedTime)
	return s.repo.Advance(ctx, current.ID, next, actualTime, efficiency)
}
