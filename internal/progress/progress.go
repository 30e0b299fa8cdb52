// Package progress delivers coarse acquisition progress events from
// worker goroutines to a single consumer. Publishing is fire-and-forget:
// a slow or backlogged consumer must never stall a fetch or unpack
// worker, so the async sink drops events once its queue is full.
package progress

import "sync"

// Phase identifies what an event reports about an artifact.
type Phase int

const (
	// PhaseStarted marks the beginning of a download.
	PhaseStarted Phase = iota
	// PhaseAdvanced reports bytes written since the previous event.
	PhaseAdvanced
	// PhaseFinished marks a verified, completed artifact.
	PhaseFinished
	// PhaseFailed marks an artifact whose acquisition failed terminally.
	PhaseFailed
	// PhaseSkipped marks a cache hit that required no network activity.
	PhaseSkipped
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseAdvanced:
		return "advanced"
	case PhaseFinished:
		return "finished"
	case PhaseFailed:
		return "failed"
	case PhaseSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Event is one progress observation for one artifact.
type Event struct {
	Artifact string // display name
	Bytes    int64  // bytes advanced (PhaseAdvanced) or total size hint
	Phase    Phase
}

// Sink receives progress events. Publish must be safe for concurrent
// callers and must not block; serialization is the sink's problem.
type Sink interface {
	Publish(Event)
}

// nopSink discards all events.
type nopSink struct{}

func (nopSink) Publish(Event) {}

// Nop returns the default do-nothing sink.
func Nop() Sink {
	return nopSink{}
}

// Async decouples publishers from a consumer through a bounded queue.
// When the queue is full events are dropped rather than blocking the
// publisher. The channel itself is never closed, so Publish stays safe
// even after Close.
type Async struct {
	ch   chan Event
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// NewAsync starts a consumer goroutine that receives queued events in
// order. buffer bounds the queue; values below 1 get a small default.
func NewAsync(consume func(Event), buffer int) *Async {
	if buffer < 1 {
		buffer = 256
	}

	a := &Async{
		ch:   make(chan Event, buffer),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(a.done)
		for {
			select {
			case e := <-a.ch:
				consume(e)
			case <-a.quit:
				// Drain whatever is already queued, then stop.
				for {
					select {
					case e := <-a.ch:
						consume(e)
					default:
						return
					}
				}
			}
		}
	}()

	return a
}

// Publish enqueues an event, dropping it when the queue is full or the
// sink is closed. Progress is advisory; workers never wait.
func (a *Async) Publish(e Event) {
	select {
	case <-a.quit:
	case a.ch <- e:
	default:
	}
}

// Close stops the consumer after draining the queued events and waits
// for it to finish. Events published concurrently with Close may be
// dropped.
func (a *Async) Close() {
	a.once.Do(func() { close(a.quit) })
	<-a.done
}
