package collab

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"
)

type stubSampler struct {
	ids   []string
	err   error
	calls int
}

func (s *stubSampler) SampleIDs(ctx context.Context, limit int) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.ids) > limit {
		return s.ids[:limit], nil
	}
	return s.ids, nil
}

type callLog struct {
	entries []string
}

func (l *callLog) add(entry string) {
	l.entries = append(l.entries, entry)
}

type stubSettlement struct {
	log       *callLog
	ensureErr error
	settleErr error
}

func (s *stubSettlement) Ensure(ctx context.Context, orderID string) error {
	s.log.add("settlement.ensure:" + orderID)
	return s.ensureErr
}

func (s *stubSettlement) SettlePayment(ctx context.Context, orderID string) (string, error) {
	s.log.add("settlement.settle:" + orderID)
	return "T/T", s.settleErr
}

type stubCustoms struct {
	log         *callLog
	ensureErr   error
	progressErr error
}

func (s *stubCustoms) Ensure(ctx context.Context, orderID string) error {
	s.log.add("customs.ensure:" + orderID)
	return s.ensureErr
}

func (s *stubCustoms) Progress(ctx context.Context, orderID string) error {
	s.log.add("customs.progress:" + orderID)
	return s.progressErr
}

type stubLogistics struct {
	log         *callLog
	ensureErr   error
	progressErr error
}

func (s *stubLogistics) Ensure(ctx context.Context, orderID string) error {
	s.log.add("logistics.ensure:" + orderID)
	return s.ensureErr
}

func (s *stubLogistics) Progress(ctx context.Context, orderID string) error {
	s.log.add("logistics.progress:" + orderID)
	return s.progressErr
}

func newTestEngine(t *testing.T, sampler *stubSampler, settlement *stubSettlement, customs *stubCustoms, logistics *stubLogistics) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TickInterval = time.Hour
	engine, err := NewEngine(cfg, sampler, settlement, customs, logistics, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestTickDrivesOrderThroughPipeline(t *testing.T) {
	recorder := &callLog{}
	sampler := &stubSampler{ids: []string{"O10001"}}
	engine := newTestEngine(t,
		sampler,
		&stubSettlement{log: recorder},
		&stubCustoms{log: recorder},
		&stubLogistics{log: recorder},
	)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := engine.Tick(ctx); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	want := []string{
		"settlement.ensure:O10001",
		"customs.ensure:O10001",
		"customs.progress:O10001",
		"logistics.ensure:O10001",
		"settlement.settle:O10001",
		"logistics.progress:O10001",
		"logistics.progress:O10001",
	}
	if len(recorder.entries) != len(want) {
		t.Fatalf("expected %d stage calls, got %d: %v", len(want), len(recorder.entries), recorder.entries)
	}
	for i, expected := range want {
		if recorder.entries[i] != expected {
			t.Fatalf("call %d: got %q, want %q", i, recorder.entries[i], expected)
		}
	}
	if engine.QueueLen() != 0 {
		t.Fatalf("expected drained queue, got %d pending", engine.QueueLen())
	}
}

func TestStartSeedsOnce(t *testing.T) {
	recorder := &callLog{}
	sampler := &stubSampler{ids: []string{"O10001", "O10002", "O10003"}}
	engine := newTestEngine(t,
		sampler,
		&stubSettlement{log: recorder},
		&stubCustoms{log: recorder},
		&stubLogistics{log: recorder},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := engine.Start(ctx); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := engine.Start(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}

	if sampler.calls != 1 {
		t.Fatalf("expected one seed sample, got %d", sampler.calls)
	}
	if engine.QueueLen() != 3 {
		t.Fatalf("expected 3 seeded events, got %d", engine.QueueLen())
	}
}

func TestStartCapsSeedAtConfiguredLimit(t *testing.T) {
	recorder := &callLog{}
	ids := make([]string, 80)
	for i := range ids {
		ids[i] = "O1"
	}
	sampler := &stubSampler{ids: ids}
	engine := newTestEngine(t,
		sampler,
		&stubSettlement{log: recorder},
		&stubCustoms{log: recorder},
		&stubLogistics{log: recorder},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := engine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if engine.QueueLen() != DefaultConfig().SeedLimit {
		t.Fatalf("expected %d seeded events, got %d", DefaultConfig().SeedLimit, engine.QueueLen())
	}
}

func TestHandlerErrorDropsSuccessors(t *testing.T) {
	recorder := &callLog{}
	sampler := &stubSampler{ids: []string{"O10001"}}
	customs := &stubCustoms{log: recorder, progressErr: errors.New("inspection backlog")}
	logistics := &stubLogistics{log: recorder}
	engine := newTestEngine(t, sampler, &stubSettlement{log: recorder}, customs, logistics)
	ctx := context.Background()

	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	err := engine.Tick(ctx)
	if err == nil {
		t.Fatal("expected customs failure to surface")
	}
	if !errors.Is(err, customs.progressErr) {
		t.Fatalf("expected wrapped stage error, got %v", err)
	}

	// The failed declaring event must not enqueue the booking leg.
	if engine.QueueLen() != 1 {
		t.Fatalf("expected only the payment event pending, got %d", engine.QueueLen())
	}
	for _, entry := range recorder.entries {
		if entry == "logistics.ensure:O10001" {
			t.Fatal("logistics booked despite customs failure")
		}
	}

	if err := engine.Tick(ctx); err != nil {
		t.Fatalf("payment tick after failure: %v", err)
	}
}

func TestSamplerErrorSurfaces(t *testing.T) {
	recorder := &callLog{}
	sampler := &stubSampler{err: errors.New("orders table unavailable")}
	engine := newTestEngine(t,
		sampler,
		&stubSettlement{log: recorder},
		&stubCustoms{log: recorder},
		&stubLogistics{log: recorder},
	)
	ctx := context.Background()

	if err := engine.Start(ctx); err == nil {
		t.Fatal("expected seed failure to surface from Start")
	}
	if err := engine.Tick(ctx); err == nil {
		t.Fatal("expected reseed failure to surface from Tick")
	}
}
