// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagerange produces the ordered page numbers of a run.
package pagerange

import (
	"fmt"
	"iter"
	"math"
)

// Range is a closed interval of 1-based page numbers.
type Range struct {
	Start int
	End   int
}

// All yields Start, Start+1, ..., End. The sequence is lazy and may be
// ranged over any number of times. It is empty when Start > End.
func (r Range) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		if r.Start > r.End {
			return
		}
		for p := r.Start; ; p++ {
			if !yield(p) || p == r.End {
				return
			}
		}
	}
}

// Len returns the number of pages in the range, capped at math.MaxInt.
func (r Range) Len() int {
	if r.Start > r.End {
		return 0
	}
	n := uint64(r.End) - uint64(r.Start)
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return int(n) + 1
}

// Validate reports a range callers are not expected to supply. Iteration
// never depends on it.
func (r Range) Validate() error {
	if r.Start < 1 {
		return fmt.Errorf("page range start %d is below 1", r.Start)
	}
	if r.Start > r.End {
		return fmt.Errorf("page range start %d is after end %d", r.Start, r.End)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
