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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// rdiffcore.Option.
package config

import (
	"math"
	"reflect"
)

// MaxInt is the default, effectively unbounded budget for cost/call/delta limits.
const MaxInt = math.MaxInt

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Accept is the minimal oracle ratio accepted as a diagonal (equal) edge. Ratios below this
	// threshold are treated as a mismatch. For CompareNested, this is never set directly by the
	// caller: each recursion level derives it from the head of the MinRatio tail left after
	// popping MinRatio's own head (see PopLevel), matching spec.md §4.4.
	Accept float64

	// MinRatio is the similarity ratio below which the algorithm gives up, translated into MaxCost
	// at the L2/L3 entry points the same way rdiff.sequence.diff does. A per-level tuple: at
	// CompareNested's top level the whole tuple is live; PopLevel consumes the head at each
	// recursion step and carries the tail (see spec.md §4.4, §6.4). Always non-empty; a single
	// value is reused at every level once exhausted, following PopBudget.
	MinRatio []float64

	// MaxCost is the maximal cost of the diff: the count of dissimilar/misaligned elements
	// tolerated in both sequences. A per-level tuple, popped the same way as MinRatio.
	MaxCost []int

	// MaxDelta bounds how far an aligned pair of indices may drift from the identity diagonal. A
	// per-level tuple, popped the same way as MinRatio.
	MaxDelta []int

	// MaxCalls bounds the number of oracle evaluations (iterations) after which the algorithm
	// gives up, guarding against pathological inputs. A per-level tuple, popped the same way as
	// MinRatio.
	MaxCalls []int

	// EqOnly, if set, only determines whether an edit script within budget exists, without
	// reconstructing it. Forces RtnDiff to false.
	EqOnly bool

	// Strict, if set, collapses an over-budget result into a single degenerate, fully-disaligned
	// chunk with Ratio 0; if unset, an over-budget result carries a ratio only and no chunks.
	Strict bool

	// RtnDiff controls whether a diff reconstructs its chunk list or computes a ratio only.
	RtnDiff bool

	// MaxDepth bounds the recursion depth of the nested diff driver.
	MaxDepth int

	// Context is the number of matching pairs of context included around an important item.
	Context int

	// CoarseMinRun is the length an equal run must exceed to be exempt from coarsening into its
	// neighbors.
	CoarseMinRun int

	// IsNestedContainer reports whether a reflect.Type is recognized as a nestable container by
	// the nested diff driver. Nil means "any slice type".
	IsNestedContainer func(reflect.Type) bool
}

// DefaultIsNestedContainer recognizes any slice type as a nestable container, mirroring
// pulkin/rdiff's default of (list, tuple, numpy.ndarray).
func DefaultIsNestedContainer(t reflect.Type) bool {
	return t.Kind() == reflect.Slice
}

// Default is the default configuration.
var Default = Config{
	Accept:            0.75,
	MinRatio:          []float64{0.75},
	MaxCost:           []int{MaxInt},
	MaxDelta:          []int{MaxInt},
	MaxCalls:          []int{MaxInt},
	EqOnly:            false,
	Strict:            true,
	RtnDiff:           true,
	MaxDepth:          MaxInt,
	Context:           3,
	CoarseMinRun:      0,
	IsNestedContainer: DefaultIsNestedContainer,
}

// Flag describes a single config entry. This is used to detect configurations being set that are
// not allowed at a given call site.
type Flag int

const (
	Accept Flag = 1 << iota
	MinRatio
	MaxCost
	MaxDelta
	MaxCalls
	EqOnly
	Strict
	RtnDiff
	MaxDepth
	Context
	CoarseMinRun
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.EqOnly {
		cfg.RtnDiff = false
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Accept:
		return "rdiffcore.Accept"
	case MinRatio:
		return "rdiffcore.MinRatio"
	case MaxCost:
		return "rdiffcore.MaxCost"
	case MaxDelta:
		return "rdiffcore.MaxDelta"
	case MaxCalls:
		return "rdiffcore.MaxCalls"
	case EqOnly:
		return "rdiffcore.EqOnly"
	case Strict:
		return "rdiffcore.Strict"
	case RtnDiff:
		return "rdiffcore.RtnDiff"
	case MaxDepth:
		return "rdiffcore.MaxDepth"
	case Context:
		return "rdiffcore.Context"
	case CoarseMinRun:
		return "rdiffcore.CoarseMinRun"
	default:
		panic("never reached")
	}
}

// MinRatioHere returns the budget tuple's current-level value (its head).
func (c Config) MinRatioHere() float64 { return c.MinRatio[0] }

// MaxCostHere returns the budget tuple's current-level value (its head).
func (c Config) MaxCostHere() int { return c.MaxCost[0] }

// MaxDeltaHere returns the budget tuple's current-level value (its head).
func (c Config) MaxDeltaHere() int { return c.MaxDelta[0] }

// MaxCallsHere returns the budget tuple's current-level value (its head).
func (c Config) MaxCallsHere() int { return c.MaxCalls[0] }

// EffectiveMaxCost translates MinRatio into a cost budget for a combined sequence length of
// total, the way rdiff.sequence.diff does, and returns whichever of MaxCost/MinRatio is tighter.
func (c Config) EffectiveMaxCost(total int) int {
	byRatio := total - int(float64(total)*c.MinRatioHere())
	if byRatio < c.MaxCostHere() {
		return byRatio
	}
	return c.MaxCostHere()
}

// PopBudget splits a per-level budget tuple into the head used at the current recursion level and
// the tail carried into deeper recursion. Once tail is exhausted its last element is reused
// indefinitely, mirroring rdiff.sequence._pop_optional.
func PopBudget[T any](tuple []T) (head T, tail []T) {
	head = tuple[0]
	if len(tuple) > 1 {
		return head, tuple[1:]
	}
	return head, tuple
}

// PopLevel splits the per-level tuple budgets (MinRatio, MaxCost, MaxDelta, MaxCalls) into a
// scalar Config usable for the comparison at the current nesting level and a Config carrying the
// popped tails into the next recursion. The current level's Accept is derived from the head of
// the MinRatio tail left after popping MinRatio's own head, mirroring diff_nested's
// `accept, _ = _pop_optional(min_ratio_pass)` (spec.md §4.4).
func (c Config) PopLevel() (here, tail Config) {
	minRatioHere, minRatioPass := PopBudget(c.MinRatio)
	maxCostHere, maxCostPass := PopBudget(c.MaxCost)
	maxDeltaHere, maxDeltaPass := PopBudget(c.MaxDelta)
	maxCallsHere, maxCallsPass := PopBudget(c.MaxCalls)
	accept, _ := PopBudget(minRatioPass)

	here = c
	here.MinRatio = []float64{minRatioHere}
	here.MaxCost = []int{maxCostHere}
	here.MaxDelta = []int{maxDeltaHere}
	here.MaxCalls = []int{maxCallsHere}
	here.Accept = accept

	tail = c
	tail.MinRatio = minRatioPass
	tail.MaxCost = maxCostPass
	tail.MaxDelta = maxDeltaPass
	tail.MaxCalls = maxCallsPass
	return here, tail
}
