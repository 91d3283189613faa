package audit

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	ActionCarCreated              = "car_created"
	ActionBookingCreated          = "booking_created"
	ActionBookingCancelled        = "booking_cancelled"
	ActionBookingCancelledManager = "booking_cancelled_by_manager"
	ActionBookingOverlapSuspected = "booking_overlap_suspected"
	ActionUserRegistered          = "user_registered"
	ActionPasswordChanged         = "password_changed"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			log.Println("audit error:", err)
		}
		cancel()
	}
}

// Dispatch never blocks the request path: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event", ev.Action)
	}
}

// Close flushes queued events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}
