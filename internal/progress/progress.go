// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package progress implements the dispatcher's multi-producer,
// single-consumer progress sink described in spec.md sections 4.6 and
// 5: workers report (workerID, done, total) tuples, a single aggregator
// renders one summary line, and writers never block indefinitely.
// Grounded on std/snmp.go's ticker-driven periodic logger.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Event is one worker's progress update.
type Event struct {
	WorkerID int
	Done     int
	Total    int
}

// Sink is a bounded, drop-oldest-when-full channel of Events. Sends
// never block: when the buffer is full, the oldest buffered event is
// discarded to make room, since progress reporting is advisory and a
// stalled consumer must never stall a worker.
type Sink struct {
	ch chan Event
}

// NewSink returns a Sink buffered to hold capacity events.
func NewSink(capacity int) *Sink {
	if capacity < 1 {
		capacity = 1
	}
	return &Sink{ch: make(chan Event, capacity)}
}

// Send reports an event, dropping the oldest buffered event if the sink
// is full.
func (s *Sink) Send(e Event) {
	select {
	case s.ch <- e:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- e:
	default:
	}
}

// Close signals that no more events will be sent.
func (s *Sink) Close() { close(s.ch) }

// UpdatePeriod returns how often a worker should report progress: once
// per 0.1% of its chunk, or every 100 items, whichever is larger.
func UpdatePeriod(chunkSize int) int {
	period := (chunkSize + 999) / 1000 // ceil(chunkSize / 1000) ~= 0.1%
	if period < 100 {
		period = 100
	}
	return period
}

// Aggregator accumulates per-worker progress and renders one summary
// line at a fixed period.
type Aggregator struct {
	out    io.Writer
	period time.Duration

	mu     sync.Mutex
	status map[int]Event
}

// NewAggregator returns an Aggregator that renders a summary line to out
// roughly every period.
func NewAggregator(out io.Writer, period time.Duration) *Aggregator {
	if period <= 0 {
		period = 100 * time.Millisecond
	}
	return &Aggregator{out: out, period: period, status: make(map[int]Event)}
}

// Run drains sink, rendering a summary line on each tick, until sink is
// closed. Run returns once the sink is drained and closed.
func (a *Aggregator) Run(sink *Sink) {
	ticker := time.NewTicker(a.period)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-sink.ch:
			if !ok {
				a.render()
				return
			}
			a.mu.Lock()
			a.status[e.WorkerID] = e
			a.mu.Unlock()
		case <-ticker.C:
			a.render()
		}
	}
}

func (a *Aggregator) render() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.status) == 0 {
		return
	}
	var done, total int
	for _, e := range a.status {
		done += e.Done
		total += e.Total
	}
	if total == 0 {
		return
	}
	pct := float64(done) / float64(total) * 100
	line := fmt.Sprintf("completed %d of %d (%.2f%%)", done, total, pct)
	if pct >= 100 {
		fmt.Fprintln(a.out, color.GreenString(line))
	} else {
		fmt.Fprintln(a.out, line)
	}
}
