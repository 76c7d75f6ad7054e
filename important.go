// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rdiffcore

import (
	"iter"

	"go.rdiff.dev/core/internal/config"
)

// ImportantItem is one value yielded by [Diff.IterImportant]: either an Item describing a single
// position, or, when Skipped > 0, a marker for that many consecutive uninteresting aligned pairs
// that were elided (before, between or after the points of interest).
type ImportantItem[T any] struct {
	Skipped int
	Item    Item[T]
}

// IterImportant iterates over the positions of a [Diff] that aren't a plain, uninteresting
// match: insertions, deletions, and nested sub-diffs, each with up to Context matching pairs of
// surrounding context. Runs of matches longer than fit in the requested context are elided and
// reported as a Skipped count rather than materialized, so a caller rendering a unified diff of a
// huge, mostly-unchanged file doesn't pay for the unchanged part.
func (d Diff[T]) IterImportant(opts ...Option) iter.Seq[ImportantItem[T]] {
	cfg := config.FromOptions(opts, iterImportantFlags)
	contextSize := cfg.Context
	return func(yield func(ImportantItem[T]) bool) {
		if !d.HasDiffs {
			return
		}
		var tail []ImportantItem[T]
		counterA, counterB := 0, 0
		for i, c := range d.Diffs {
			switch c.Kind {
			case EqAligned:
				if i > 0 {
					if !yieldHead(yield, c, counterA, counterB, contextSize) {
						return
					}
				}
				headSize := 0
				if i > 0 {
					headSize = contextSize
				}
				tail = buildTail(c, counterA, counterB, contextSize, headSize)
			case EqDisaligned:
				if !flushTail(yield, tail) {
					return
				}
				tail = nil
				if !yieldDisaligned(yield, c, counterA, counterB) {
					return
				}
			case EqNested:
				if !flushTail(yield, tail) {
					return
				}
				tail = nil
				if !yieldNested(yield, c, counterA, counterB) {
					return
				}
			}
			counterA += len(c.A)
			counterB += len(c.B)
		}
		if leftover := leftoverCount(tail); leftover > 0 {
			yield(ImportantItem[T]{Skipped: leftover})
		}
	}
}

func yieldHead[T any](yield func(ImportantItem[T]) bool, c Chunk[T], counterA, counterB, contextSize int) bool {
	n := min(contextSize, len(c.A), len(c.B))
	for idx := 0; idx < n; idx++ {
		ai, bi := c.A[idx], c.B[idx]
		ixa, ixb := counterA+idx, counterB+idx
		item := ImportantItem[T]{Item: Item[T]{A: &ai, B: &bi, IxA: &ixa, IxB: &ixb}}
		if !yield(item) {
			return false
		}
	}
	return true
}

// buildTail computes the context pending after an aligned chunk: a Skipped marker for whatever
// falls between the head context already emitted and the tail context about to be kept, followed
// by up to contextSize trailing pairs. It's materialized eagerly and flushed before the next
// non-equal chunk, or reported as leftover if the diff ends on a match.
func buildTail[T any](c Chunk[T], counterA, counterB, contextSize, headSize int) []ImportantItem[T] {
	n := len(c.A)
	gap := n - contextSize - headSize
	var out []ImportantItem[T]
	if gap > 0 {
		out = append(out, ImportantItem[T]{Skipped: gap})
	} else {
		gap = 0
	}
	gap += headSize
	for idx := gap; idx < n; idx++ {
		ai, bi := c.A[idx], c.B[idx]
		ixa, ixb := counterA+idx, counterB+idx
		out = append(out, ImportantItem[T]{Item: Item[T]{A: &ai, B: &bi, IxA: &ixa, IxB: &ixb}})
	}
	return out
}

func flushTail[T any](yield func(ImportantItem[T]) bool, tail []ImportantItem[T]) bool {
	for _, e := range tail {
		if !yield(e) {
			return false
		}
	}
	return true
}

func yieldDisaligned[T any](yield func(ImportantItem[T]) bool, c Chunk[T], counterA, counterB int) bool {
	for idx := range c.A {
		ai := c.A[idx]
		ixa := counterA + idx
		if !yield(ImportantItem[T]{Item: Item[T]{A: &ai, IxA: &ixa}}) {
			return false
		}
	}
	for idx := range c.B {
		bi := c.B[idx]
		ixb := counterB + idx
		if !yield(ImportantItem[T]{Item: Item[T]{B: &bi, IxB: &ixb}}) {
			return false
		}
	}
	return true
}

func yieldNested[T any](yield func(ImportantItem[T]) bool, c Chunk[T], counterA, counterB int) bool {
	for idx := range c.A {
		ai, bi := c.A[idx], c.B[idx]
		ixa, ixb := counterA+idx, counterB+idx
		var diff *Diff[any]
		if idx < len(c.Nested) && !c.Nested[idx].Exact {
			diff = c.Nested[idx].Diff
		}
		item := ImportantItem[T]{Item: Item[T]{A: &ai, B: &bi, IxA: &ixa, IxB: &ixb, Diff: diff}}
		if !yield(item) {
			return false
		}
	}
	return true
}

func leftoverCount[T any](tail []ImportantItem[T]) int {
	n := 0
	for _, e := range tail {
		if e.Skipped > 0 {
			n += e.Skipped
		} else {
			n++
		}
	}
	return n
}
