package logistics

import (
	"context"
	"errors"
	"math"
)

// Shipment statuses. Customs appears when a shipment is rerouted
// through an inspection hold and resumes at the delivery leg.
const (
	StatusPickup    = "pickup"
	StatusTransit   = "transit"
	StatusCustoms   = "customs"
	StatusDelivery  = "delivery"
	StatusCompleted = "completed"
)

// DefaultEstimatedTime is the transit estimate, in hours, given to a
// freshly booked shipment.
const DefaultEstimatedTime = 72

// CompletionTimeSaving is subtracted from the estimate to produce the
// actual time when a shipment completes.
const CompletionTimeSaving = 2

// Origins and Destinations are the port cities shipments are booked
// between.
var (
	Origins      = []string{"上海", "深圳", "广州", "宁波", "青岛"}
	Destinations = []string{"纽约", "伦敦", "东京", "悉尼", "新加坡", "洛杉矶", "巴黎"}
)

// Shipment is the per-order logistics record. Progressing an order
// always acts on the latest shipment row.
type Shipment struct {
	ID            string
	TrackingNo    string
	Origin        string
	Destination   string
	Status        string
	EstimatedTime float64
	ActualTime    float64
	Efficiency    float64
	OrderID       string
	CreatedAt     string
}

var (
	ErrNilShipment  = errors.New("logistics: nil record")
	ErrEmptyOrderID = errors.New("logistics: empty order id")
)

// NextStatus returns the leg a shipment moves to from status. Unknown
// statuses fall back to transit.
func NextStatus(status string) string {
	switch status {
	case StatusPickup:
		return StatusTransit
	case StatusTransit:
		return StatusDelivery
	case StatusCustoms:
		return StatusDelivery
	case StatusDelivery:
		return StatusCompleted
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusTransit
	}
}

// EfficiencyFor computes the actual-versus-estimate ratio as a
// one-decimal percentage. A zero estimate yields zero.
func EfficiencyFor(actualTime, estimatedTime float64) float64 {
	if estimatedTime == 0 {
		return 0
	}
	return math.Round(actualTime/estimatedTime*1000) / 10
}

// Repository persists shipments. FindLatestByOrder returns (nil, nil)
// when no row exists for the order.
type Repository interface {
	FindLatestByOrder(ctx context.Context, orderID string) (*Shipment, error)
	Insert(ctx context.Context, record *Shipment) error
	Advance(ctx context.Context, id, status string, actualTime, efficiency float64) error
}
