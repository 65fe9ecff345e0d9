package progress

import (
	"bytes"
	"testing"
	"time"
)

func TestSinkDropsOldestWhenFull(t *testing.T) {
	s := NewSink(2)
	s.Send(Event{WorkerID: 0, Done: 1, Total: 10})
	s.Send(Event{WorkerID: 0, Done: 2, Total: 10})
	// Buffer now full at capacity 2; this third send must not block.
	done := make(chan struct{})
	go func() {
		s.Send(Event{WorkerID: 0, Done: 3, Total: 10})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Send blocked on a full sink instead of dropping the oldest event")
	}
}

func TestUpdatePeriod(t *testing.T) {
	if got := UpdatePeriod(50); got != 100 {
		t.Fatalf("UpdatePeriod(50) = %d, want 100 (floor)", got)
	}
	if got := UpdatePeriod(1_000_000); got != 1000 {
		t.Fatalf("UpdatePeriod(1_000_000) = %d, want 1000", got)
	}
}

func TestAggregatorRendersOnClose(t *testing.T) {
	var buf bytes.Buffer
	agg := NewAggregator(&buf, time.Hour) // long period: only the close-triggered render should fire
	sink := NewSink(8)

	done := make(chan struct{})
	go func() {
		agg.Run(sink)
		close(done)
	}()

	sink.Send(Event{WorkerID: 0, Done: 5, Total: 10})
	sink.Send(Event{WorkerID: 1, Done: 10, Total: 10})
	sink.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Aggregator.Run did not return after the sink closed")
	}

	if buf.Len() == 0 {
		t.Fatalf("expected a rendered summary line after close")
	}
}
