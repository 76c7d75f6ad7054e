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

import "go.rdiff.dev/core/internal/config"

// Compress merges consecutive chunks of the same kind into one, the same way adjacent runs with
// matching eq flags fold together in a Python-style chunk stream. EqNested chunks never merge with
// a neighbor, even another EqNested chunk: each carries its own per-element sub-diffs and folding
// them would require deciding how to merge two unrelated nested structures, which has no general
// answer. Diffs without a reconstructed script are returned unchanged.
func (d Diff[T]) Compress() Diff[T] {
	if !d.HasDiffs {
		return d
	}
	return Diff[T]{Ratio: d.Ratio, Diffs: compressChunks(d.Diffs), HasDiffs: true}
}

func compressChunks[T any](chunks []Chunk[T]) []Chunk[T] {
	out := make([]Chunk[T], 0, len(chunks))
	for _, c := range chunks {
		if n := len(out); n > 0 && mergeableChunks(out[n-1], c) {
			out[n-1] = mergeChunks(out[n-1], c)
			continue
		}
		out = append(out, c)
	}
	return out
}

func mergeableChunks[T any](a, b Chunk[T]) bool {
	return a.Kind == b.Kind && a.Kind != EqNested
}

func mergeChunks[T any](a, b Chunk[T]) Chunk[T] {
	merged := Chunk[T]{Kind: a.Kind}
	merged.A = append(append(make([]T, 0, len(a.A)+len(b.A)), a.A...), b.A...)
	merged.B = append(append(make([]T, 0, len(a.B)+len(b.B)), a.B...), b.B...)
	return merged
}

// Coarse merges short EqAligned runs into their surrounding disaligned neighbors, producing a
// coarser diff that's easier to skim: a handful of scattered one-line matches inside a large
// rewritten block stop being their own chunks and become part of the surrounding change.
// CoarseMinRun is the only option this entry point honors; an EqAligned run longer than that is
// kept standalone. EqNested chunks are always kept standalone, whatever their length.
func (d Diff[T]) Coarse(opts ...Option) Diff[T] {
	cfg := config.FromOptions(opts, coarseFlags)
	if !d.HasDiffs {
		return d
	}
	return Diff[T]{Ratio: d.Ratio, Diffs: coarsenChunks(d.Diffs, cfg.CoarseMinRun), HasDiffs: true}
}

func coarsenChunks[T any](chunks []Chunk[T], minRun int) []Chunk[T] {
	compressed := compressChunks(chunks)
	var out []Chunk[T]
	var buf []Chunk[T]
	flush := func() {
		if len(buf) == 0 {
			return
		}
		out = append(out, combineBuffer(buf))
		buf = nil
	}
	for _, c := range compressed {
		// A nested chunk never folds into a buffer of plain runs, same as Compress: it carries
		// per-element sub-diffs that a flat aligned/disaligned merge can't account for. Treat it
		// as always standalone, like a long-enough equal run, regardless of minRun.
		if c.Kind == EqNested || (c.Kind == EqAligned && len(c.A) > minRun) {
			flush()
			out = append(out, c)
			continue
		}
		buf = append(buf, c)
	}
	flush()
	return out
}

// combineBuffer folds a run of short equal chunks and their disaligned neighbors into one chunk.
// The result is aligned only if every chunk in buf was; a single disaligned chunk in the mix makes
// the whole thing disaligned, mirroring how combining an equal and an unequal run can't be equal.
func combineBuffer[T any](buf []Chunk[T]) Chunk[T] {
	kind := EqAligned
	for _, c := range buf {
		if c.Kind != EqAligned {
			kind = EqDisaligned
			break
		}
	}
	merged := Chunk[T]{Kind: kind}
	for _, c := range buf {
		merged.A = append(merged.A, c.A...)
		merged.B = append(merged.B, c.B...)
	}
	return merged
}
