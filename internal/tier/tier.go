// Package tier implements the recursive tier-by-tier generation engine
// described in spec.md section 4: S(n) is built from S(n-1) by
// expanding every polycube one cube at a time and canonicalizing each
// result, optionally split across a worker pool. Grounded on
// original_source/cubes.py's generate_polycubes, hash_cubes_task and
// unpack_hashes_task, adapted from a two-stage multiprocessing.Pool
// pipeline into two dispatch.Dispatch calls over a shared Runtime.
package tier

import (
	"github.com/mikepound/opencubes/internal/cache"
	"github.com/mikepound/opencubes/internal/canon"
	"github.com/mikepound/opencubes/internal/dispatch"
	"github.com/mikepound/opencubes/internal/expand"
	"github.com/mikepound/opencubes/internal/grid"
	"github.com/mikepound/opencubes/internal/idset"
	"github.com/mikepound/opencubes/internal/progress"
)

// Generate returns every free polycube of size n, recursing down to
// the n=1 and n=2 base cases. If useCache is true and cacheDir is
// non-empty, each tier is loaded from (and saved to) the legacy cache
// once computed, so repeated runs for the same or a larger n do not
// repeat earlier tiers' work.
func Generate(rt *dispatch.Runtime, cacheDir string, n int, useCache, parallel bool) ([]grid.Grid, error) {
	if n < 1 {
		return nil, nil
	}
	if n == 1 {
		g, err := singleCube()
		if err != nil {
			return nil, err
		}
		return []grid.Grid{g}, nil
	}
	if n == 2 {
		g, err := domino()
		if err != nil {
			return nil, err
		}
		return []grid.Grid{g}, nil
	}

	if useCache && cacheDir != "" && cache.Exists(cacheDir, n) {
		ids, ok, err := cache.Load(cacheDir, n)
		if err != nil {
			return nil, err
		}
		if ok {
			return unpackTier(rt, ids, parallel)
		}
	}

	prev, err := Generate(rt, cacheDir, n-1, useCache, parallel)
	if err != nil {
		return nil, err
	}

	found, err := hashTier(rt, prev, parallel)
	if err != nil {
		return nil, err
	}
	ids := found.Slice()

	grids, err := unpackTier(rt, ids, parallel)
	if err != nil {
		return nil, err
	}

	if useCache && cacheDir != "" {
		if err := cache.Save(cacheDir, n, ids); err != nil {
			return nil, err
		}
	}
	return grids, nil
}

func singleCube() (grid.Grid, error) {
	g, err := grid.New(1, 1, 1)
	if err != nil {
		return grid.Grid{}, err
	}
	g.Set(0, 0, 0, true)
	return g, nil
}

func domino() (grid.Grid, error) {
	g, err := grid.New(2, 1, 1)
	if err != nil {
		return grid.Grid{}, err
	}
	g.Set(0, 0, 0, true)
	g.Set(1, 0, 0, true)
	return g, nil
}

// hashTier expands every polycube in base by one cube, canonicalizes
// every result, and returns the set of distinct identifiers. Each
// dispatcher chunk accumulates its own local idset.Set (workers do not
// share mutable state); the chunk sets are unioned once all chunks
// finish.
func hashTier(rt *dispatch.Runtime, base []grid.Grid, parallel bool) (*idset.Set, error) {
	sets, err := dispatch.Dispatch[grid.Grid, *idset.Set](rt, hashChunk, base, parallel)
	if err != nil {
		return nil, err
	}
	merged := idset.New(0)
	for _, s := range sets {
		merged.Union(s)
	}
	return merged, nil
}

func hashChunk(workerID int, items []grid.Grid, sink *progress.Sink) ([]*idset.Set, error) {
	local := idset.New(len(items))
	period := progress.UpdatePeriod(len(items))

	for i, base := range items {
		for candidate := range expand.Expand(base) {
			id, err := canon.Canonical(candidate, local)
			if err != nil {
				return nil, err
			}
			local.Add(id)
		}
		if sink != nil && i%period == 0 {
			sink.Send(progress.Event{WorkerID: workerID, Done: i + 1, Total: len(items)})
		}
	}
	if sink != nil {
		sink.Send(progress.Event{WorkerID: workerID, Done: len(items), Total: len(items)})
	}
	return []*idset.Set{local}, nil
}

// unpackTier converts identifiers back into grids across the worker
// pool.
func unpackTier(rt *dispatch.Runtime, ids [][]byte, parallel bool) ([]grid.Grid, error) {
	return dispatch.Dispatch[[]byte, grid.Grid](rt, unpackChunk, ids, parallel)
}

func unpackChunk(workerID int, items [][]byte, sink *progress.Sink) ([]grid.Grid, error) {
	out := make([]grid.Grid, 0, len(items))
	period := progress.UpdatePeriod(len(items))

	for i, id := range items {
		g, err := grid.Unpack(id)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
		if sink != nil && i%period == 0 {
			sink.Send(progress.Event{WorkerID: workerID, Done: i + 1, Total: len(items)})
		}
	}
	if sink != nil {
		sink.Send(progress.Event{WorkerID: workerID, Done: len(items), Total: len(items)})
	}
	return out, nil
}
