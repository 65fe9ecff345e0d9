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

// Package dispatch implements the parallel dispatcher described in
// spec.md section 4.6: partition a list of work items into chunks, run
// a task function across a worker pool, concatenate results, and report
// progress through a shared sink. The worker-join pattern is grounded
// on std/copy.go's Pipe (WaitGroup-joined goroutines, first error wins)
// and on the chunked-goroutine loop in
// vendor/github.com/klauspost/reedsolomon/reedsolomon.go's
// updateParityShardsP.
package dispatch

import (
	"io"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/mikepound/opencubes/internal/perr"
	"github.com/mikepound/opencubes/internal/progress"
)

const (
	minChunk = 32
	maxChunk = 10000
)

// TaskFunc processes one chunk of items, optionally reporting progress
// on sink (which is nil in serial mode, matching spec.md's
// "(items, null_progress_sink)" serial contract). workerID identifies
// the chunk so the caller can attribute progress.Event reports to the
// right worker; it is always 0 in serial mode.
type TaskFunc[T, R any] func(workerID int, items []T, sink *progress.Sink) ([]R, error)

// Runtime owns the worker-pool sizing and progress-rendering
// configuration shared across dispatches, per spec.md section 9's
// "Shared mutable state" redesign: an explicit value constructed once
// at program start and passed in, rather than process-wide globals.
type Runtime struct {
	workers   int
	out       io.Writer
	aggPeriod time.Duration
}

// NewRuntime returns a Runtime with workers goroutines per parallel
// dispatch (runtime.GOMAXPROCS(0) if workers <= 0, mirroring the
// teacher's own runtime.NumCPU()-sized scheduler in
// vendor/github.com/xtaci/kcp-go/v5/timedsched.go) rendering progress to
// out at most once per aggPeriod.
func NewRuntime(workers int, out io.Writer, aggPeriod time.Duration) *Runtime {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if aggPeriod <= 0 {
		aggPeriod = 200 * time.Millisecond
	}
	return &Runtime{workers: workers, out: out, aggPeriod: aggPeriod}
}

// Workers returns the configured worker count.
func (rt *Runtime) Workers() int { return rt.workers }

func chunkSize(total, workers int) int {
	if workers < 1 {
		workers = 1
	}
	perCore := int(math.Ceil(float64(total) / float64(workers)))
	if perCore < minChunk {
		perCore = minChunk
	}
	if perCore > maxChunk {
		perCore = maxChunk
	}
	return perCore
}

// Dispatch runs task over items, either once in the calling goroutine
// (parallel=false, sink=nil) or split into contiguous chunks run across
// rt.Workers() goroutines (parallel=true). Results are concatenated; the
// specification permits any deterministic order since callers treat the
// result as a set, so chunks are merged in reverse index order (the
// order the reference implementation itself produces).
//
// If any chunk's task invocation returns an error, Dispatch waits for
// the remaining chunks to finish, then returns the first error
// (by chunk index) wrapped as perr.WorkerFailure.
func Dispatch[T, R any](rt *Runtime, task TaskFunc[T, R], items []T, parallel bool) ([]R, error) {
	if !parallel {
		return task(0, items, nil)
	}

	size := chunkSize(len(items), rt.workers)
	var chunks [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	sink := progress.NewSink(4 * rt.workers)
	agg := progress.NewAggregator(rt.out, rt.aggPeriod)
	aggDone := make(chan struct{})
	go func() {
		agg.Run(sink)
		close(aggDone)
	}()

	results := make([][]R, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i, chunk := range chunks {
		go func(i int, chunk []T) {
			defer wg.Done()
			r, err := task(i, chunk, sink)
			results[i] = r
			errs[i] = err
		}(i, chunk)
	}
	wg.Wait()
	sink.Close()
	<-aggDone

	for _, err := range errs {
		if err != nil {
			return nil, perr.Wrap(perr.WorkerFailure, err)
		}
	}

	var merged []R
	for i := len(results) - 1; i >= 0; i-- {
		merged = append(merged, results[i]...)
	}
	return merged, nil
}
