// Package canon computes the canonical identifier of a free polycube:
// the lexicographically maximum packed identifier across all 24
// rotations, with an early-exit optimization against a known set of
// already-seen identifiers owned by a single goroutine. Grounded on
// original_source/cubes.py's get_canoincal_packing.
package canon

import (
	"bytes"

	"github.com/mikepound/opencubes/internal/grid"
	"github.com/mikepound/opencubes/internal/idset"
	"github.com/mikepound/opencubes/internal/rotate"
)

// Canonical returns the canonical identifier of p. If any rotation of p
// packs to an identifier already present in known, that identifier is
// returned immediately without examining the remaining rotations.
// Otherwise the lexicographic maximum identifier over all 24 rotations
// is returned.
//
// The early-exit result agrees with CanonicalShapeInvariant when every
// identifier in known is itself a lexicographic maximum, which holds for
// a set that starts empty and only ever receives Canonical's results.
// known is read without locking, so it must not be shared between
// goroutines; internal/tier gives every dispatcher chunk its own set, in
// serial and parallel dispatch alike.
func Canonical(p grid.Grid, known *idset.Set) ([]byte, error) {
	var max []byte
	for r := range rotate.Rotations(p) {
		id, err := grid.Pack(r)
		if err != nil {
			return nil, err
		}
		if known != nil && known.Has(id) {
			return id, nil
		}
		if max == nil || bytes.Compare(id, max) > 0 {
			max = id
		}
	}
	return max, nil
}

// CanonicalShapeInvariant returns the pure lexicographic-maximum
// identifier across all 24 rotations of p, without early-exit against
// any known set. It depends only on p's free-shape class, so it is safe
// to call independently from concurrent workers: spec.md's mandated
// resolution for parallel canonicalization.
func CanonicalShapeInvariant(p grid.Grid) ([]byte, error) {
	return Canonical(p, nil)
}
