package collab

import "testing"

func TestQueueShiftsInFIFOOrder(t *testing.T) {
	q := NewQueue()
	q.Push(
		Event{Type: EventOrderCreated, OrderID: "O1"},
		Event{Type: EventCustomsDeclaring, OrderID: "O2"},
	)
	q.Push(Event{Type: EventPaymentSettled, OrderID: "O3"})

	if q.Len() != 3 {
		t.Fatalf("expected 3 pending events, got %d", q.Len())
	}

	want := []Event{
		{Type: EventOrderCreated, OrderID: "O1"},
		{Type: EventCustomsDeclaring, OrderID: "O2"},
		{Type: EventPaymentSettled, OrderID: "O3"},
	}
	for i, expected := range want {
		evt, ok := q.Shift()
		if !ok {
			t.Fatalf("shift %d: queue drained early", i)
		}
		if evt != expected {
			t.Fatalf("shift %d: got %+v, want %+v", i, evt, expected)
		}
	}

	if _, ok := q.Shift(); ok {
		t.Fatal("expected empty queue after draining")
	}
	if q.Len() != 0 {
		t.Fatalf("expected zero length, got %d", q.Len())
	}
}

func TestQueuePushNothingIsNoop(t *testing.T) {
	q := NewQueue()
	q.Push()
	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}
}
