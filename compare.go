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
	"go.rdiff.dev/core/internal/config"
	"go.rdiff.dev/core/internal/myers"
)

// Compare computes a [Diff] between two sequences of comparable elements.
func Compare[T comparable](a, b []T, opts ...Option) Diff[T] {
	cfg := config.FromOptions(opts, compareFlags)
	return compareWith[T](a, b, myers.EqualOracle[T]{A: a, B: b}, cfg, nil)
}

// CompareFunc computes a [Diff] between two sequences using oracle(i,j) as the similarity between
// element i of a and element j of b, rather than requiring exact equality. oracle must return a
// value in [0,1].
func CompareFunc[T any](a, b []T, oracle func(i, j int) float64, opts ...Option) Diff[T] {
	cfg := config.FromOptions(opts, compareFlags)
	return compareWith[T](a, b, myers.FuncOracle(oracle), cfg, nil)
}

// compareWith is the shared L2 implementation; dig, when non-nil, is threaded through to
// codesToChunks so that L3 can attach nested diffs to aligned elements.
func compareWith[T any](a, b []T, oracle myers.Oracle, cfg config.Config, dig func(i, j int) NestedStatus) Diff[T] {
	if cfg.Accept <= 0 {
		panic("rdiffcore: Accept must be > 0")
	}

	n, m := len(a), len(b)
	total := n + m
	if total == 0 {
		return Diff[T]{Ratio: 1, Diffs: []Chunk[T]{}, HasDiffs: cfg.RtnDiff}
	}

	maxCost := cfg.EffectiveMaxCost(total)
	mopts := myers.Options{
		Accept:   cfg.Accept,
		MaxCost:  maxCost,
		MaxCalls: cfg.MaxCallsHere(),
		MaxDelta: cfg.MaxDeltaHere(),
		EqOnly:   cfg.EqOnly || !cfg.RtnDiff,
	}

	var out []byte
	if !mopts.EqOnly {
		out = make([]byte, total)
	}
	cost := myers.Search(n, m, oracle, mopts, out)

	if cost > maxCost {
		if cfg.Strict {
			if !cfg.RtnDiff {
				return Diff[T]{Ratio: 0, HasDiffs: false}
			}
			return Diff[T]{
				Ratio:    0,
				Diffs:    []Chunk[T]{{A: a, B: b, Kind: EqDisaligned}},
				HasDiffs: true,
			}
		}
		ratio := float64(total-cost) / float64(total)
		if ratio < 0 {
			ratio = 0
		}
		return Diff[T]{Ratio: ratio, HasDiffs: false}
	}

	ratio := float64(total-cost) / float64(total)
	if !cfg.RtnDiff {
		return Diff[T]{Ratio: ratio, HasDiffs: false}
	}

	myers.Canonize(out)
	chunks := codesToChunks(a, b, out, dig)
	return Diff[T]{Ratio: ratio, Diffs: chunks, HasDiffs: true}
}
