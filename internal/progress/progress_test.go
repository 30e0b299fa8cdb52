package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAsyncDeliversInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []Event

	sink := NewAsync(func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	}, 16)

	events := []Event{
		{Artifact: "a", Phase: PhaseStarted},
		{Artifact: "a", Phase: PhaseAdvanced, Bytes: 10},
		{Artifact: "a", Phase: PhaseFinished},
	}
	for _, e := range events {
		sink.Publish(e)
	}
	sink.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != len(events) {
		t.Fatalf("delivered %d events, want %d", len(got), len(events))
	}
	for i, e := range events {
		if got[i] != e {
			t.Errorf("event %d = %+v, want %+v", i, got[i], e)
		}
	}
}

func TestAsyncNeverBlocksPublisher(t *testing.T) {
	block := make(chan struct{})
	sink := NewAsync(func(Event) { <-block }, 1)
	defer func() {
		close(block)
		sink.Close()
	}()

	done := make(chan struct{})
	go func() {
		// Far more events than the queue can hold while the consumer
		// is stuck; Publish must drop instead of blocking.
		for i := 0; i < 1000; i++ {
			sink.Publish(Event{Artifact: "x", Phase: PhaseAdvanced, Bytes: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked on a backlogged sink")
	}
}

func TestAsyncPublishAfterClose(t *testing.T) {
	sink := NewAsync(func(Event) {}, 4)
	sink.Close()

	// Must neither panic nor block.
	sink.Publish(Event{Artifact: "late", Phase: PhaseFinished})
}

func TestConsoleConcurrentPublish(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Publish(Event{Artifact: "lib.jar", Phase: PhaseStarted})
			c.Publish(Event{Artifact: "lib.jar", Phase: PhaseAdvanced, Bytes: 100})
			c.Publish(Event{Artifact: "lib.jar", Phase: PhaseFinished})
		}()
	}
	wg.Wait()

	out := buf.String()
	if !strings.Contains(out, "lib.jar") {
		t.Errorf("console output missing artifact name: %q", out)
	}
}

func TestConsoleSkipped(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Publish(Event{Artifact: "cached.jar", Phase: PhaseSkipped})

	if !strings.Contains(buf.String(), "cached") {
		t.Errorf("skipped artifact not reported: %q", buf.String())
	}
}
