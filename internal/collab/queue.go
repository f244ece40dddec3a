package collab

import "sync"

// Event types flowing through the collaboration queue.
const (
	EventOrderCreated     = "ORDER_CREATED"
	EventCustomsDeclaring = "CUSTOMS_DECLARING"
	EventLogisticsBooking = "LOGISTICS_BOOKING"
	EventPaymentSettled   = "PAYMENT_SETTLED"
	EventWarehouseInbound = "WAREHOUSE_INBOUND"
)

// Event is a unit of pipeline work for one order.
type Event struct {
	Type    string
	OrderID string
}

// Queue is a FIFO event buffer safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue constructs an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends events in order.
func (q *Queue) Push(events ...Event) {
	if len(events) == 0 {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

// Shift removes and returns the oldest event. The second return is
// false when the queue is empty.
func (q *Queue) Shift() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return Event{}, false
	}
	evt := q.events[0]
	q.events = q.events[1:]
	return evt, true
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
