package collab

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"crossborder-cloud/internal/observability/metrics"
)

// OrderSampler draws random order ids for seeding the queue.
type OrderSampler interface {
	SampleIDs(ctx context.Context, limit int) ([]string, error)
}

// SettlementStage covers the financial leg of the pipeline.
type SettlementStage interface {
	Ensure(ctx context.Context, orderID string) error
	SettlePayment(ctx context.Context, orderID string) (string, error)
}

// CustomsStage covers the declaration leg of the pipeline.
type CustomsStage interface {
	Ensure(ctx context.Context, orderID string) error
	Progress(ctx context.Context, orderID string) error
}

// LogisticsStage covers the shipping leg of the pipeline.
type LogisticsStage interface {
	Ensure(ctx context.Context, orderID string) error
	Progress(ctx context.Context, orderID string) error
}

// Engine drains the collaboration queue one event per tick, fanning
// each order out across the settlement, customs and logistics stages.
type Engine struct {
	cfg        Config
	queue      *Queue
	sampler    OrderSampler
	settlement SettlementStage
	customs    CustomsStage
	logistics  LogisticsStage
	logger     *log.Logger

	mu      sync.Mutex
	running bool
}

// NewEngine constructs an Engine.
func NewEngine(cfg Config, sampler OrderSampler, settlement SettlementStage, customs CustomsStage, logistics LogisticsStage, logger *log.Logger) (*Engine, error) {
	if sampler == nil {
		return nil, errors.New("collab engine: nil sampler")
	}
	if settlement == nil {
		return nil, errors.New("collab engine: nil settlement stage")
	}
	if customs == nil {
		return nil, errors.New("collab engine: nil customs stage")
	}
	if logistics == nil {
		return nil, errors.New("collab engine: nil logistics stage")
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.SeedLimit <= 0 {
		cfg.SeedLimit = DefaultConfig().SeedLimit
	}
	if cfg.ReseedLimit <= 0 {
		cfg.ReseedLimit = DefaultConfig().ReseedLimit
	}
	return &Engine{
		cfg:        cfg,
		queue:      NewQueue(),
		sampler:    sampler,
		settlement: settlement,
		customs:    customs,
		logistics:  logistics,
		logger:     logger,
	}, nil
}

// Start seeds the queue and begins the tick loop. Calling Start on a
// running engine is a no-op. The loop stops when ctx is cancelled.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.mu.Unlock()

	if err := e.seed(ctx, e.cfg.SeedLimit); err != nil {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		return fmt.Errorf("collab engine: seed: %w", err)
	}

	go e.loop(ctx)
	return nil
}

func (e *Engine) loop(ctx context.Context) {
	timer := time.NewTimer(e.cfg.TickInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			return
		case <-timer.C:
			start := time.Now()
			if err := e.Tick(ctx); err != nil {
				metrics.ObserveTick(metrics.ResultError, time.Since(start))
				if e.logger != nil {
					e.logger.Printf("collab tick error: %v", err)
				}
			} else {
				metrics.ObserveTick(metrics.ResultSuccess, time.Since(start))
			}
			// Re-armed after the tick finishes so a slow tick never
			// overlaps the next one.
			timer.Reset(e.cfg.TickInterval)
		}
	}
}

// Tick processes a single queue event. An empty queue is first
// replenished with freshly sampled orders. A handler failure drops the
// event without enqueueing its successors.
func (e *Engine) Tick(ctx context.Context) error {
	if e.queue.Len() == 0 {
		if err := e.seed(ctx, e.cfg.ReseedLimit); err != nil {
			return fmt.Errorf("reseed: %w", err)
		}
	}

	evt, ok := e.queue.Shift()
	metrics.SetQueueDepth(e.queue.Len())
	if !ok {
		return nil
	}

	if err := e.dispatch(ctx, evt); err != nil {
		metrics.ObserveEvent(evt.Type, metrics.ResultError)
		return fmt.Errorf("event %s order %s: %w", evt.Type, evt.OrderID, err)
	}
	metrics.ObserveEvent(evt.Type, metrics.ResultSuccess)
	return nil
}

// QueueLen reports the number of pending events.
func (e *Engine) QueueLen() int {
	return e.queue.Len()
}

func (e *Engine) seed(ctx context.Context, limit int) error {
	ids, err := e.sampler.SampleIDs(ctx, limit)
	if err != nil {
		return err
	}
	events := make([]Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, Event{Type: EventOrderCreated, OrderID: id})
	}
	e.queue.Push(events...)
	metrics.AddSeeded(len(events))
	metrics.SetQueueDepth(e.queue.Len())
	return nil
}

func (e *Engine) dispatch(ctx context.Context, evt Event) error {
	switch evt.Type {
	case EventOrderCreated:
		if err := e.settlement.Ensure(ctx, evt.OrderID); err != nil {
			return err
		}
		if err := e.customs.Ensure(ctx, evt.OrderID); err != nil {
			return err
		}
		e.queue.Push(
			Event{Type: EventCustomsDeclaring, OrderID: evt.OrderID},
			Event{Type: EventPaymentSettled, OrderID: evt.OrderID},
		)
		return nil
	case EventCustomsDeclaring:
		if err := e.customs.Progress(ctx, evt.OrderID); err != nil {
			return err
		}
		if err := e.logistics.Ensure(ctx, evt.OrderID); err != nil {
			return err
		}
		e.queue.Push(Event{Type: EventLogisticsBooking, OrderID: evt.OrderID})
		return nil
	case EventLogisticsBooking:
		if err := e.logistics.Progress(ctx, evt.OrderID); err != nil {
			return err
		}
		e.queue.Push(Event{Type: EventWarehouseInbound, OrderID: evt.OrderID})
		return nil
	case EventPaymentSettled:
		method, err := e.settlement.SettlePayment(ctx, evt.OrderID)
		if err != nil {
			return err
		}
		if e.logger != nil {
			e.logger.Printf("collab payment settled: order=%s method=%s", evt.OrderID, method)
		}
		return nil
	case EventWarehouseInbound:
		return e.logistics.Progress(ctx, evt.OrderID)
	default:
		if e.logger != nil {
			e.logger.Printf("collab unknown event type: %s", evt.Type)
		}
		return nil
	}
}
