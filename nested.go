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
	"reflect"

	"go.rdiff.dev/core/internal/config"
	"go.rdiff.dev/core/internal/myers"
)

// CompareNested recurses into a and b to arbitrary depth, comparing elements of matching
// container types pairwise and falling back to plain equality at the leaves or on type mismatch.
// It never returns a bare boolean: type-mismatched or non-container inputs produce a degenerate
// Diff with Ratio in {0,1} and HasDiffs false.
//
// It returns ErrRecursiveInput if the same container is reachable from itself on either side of
// the comparison.
func CompareNested(a, b any, opts ...Option) (Diff[any], error) {
	cfg := config.FromOptions(opts, compareNestedFlags)
	return compareNested(a, b, cfg, cfg.MaxDepth, nil, nil)
}

// compareNested implements one level of diff_nested's recursion. cfg still carries whatever
// tuple-valued budgets remain for this level and below; PopLevel splits it into here (the scalar
// config for the comparison performed at this level, with Accept derived from the MinRatio tail
// per spec.md §4.4) and tail (forwarded, one level shallower, into the recursive calls below).
func compareNested(a, b any, cfg config.Config, depth int, visitedA, visitedB map[uintptr]struct{}) (Diff[any], error) {
	here, tail := cfg.PopLevel()

	if depth <= 1 {
		return compareLeaf(a, b, here), nil
	}

	va, aIsSeq := asSlice(a)
	vb, bIsSeq := asSlice(b)

	if !aIsSeq || !bIsSeq || va.Type() != vb.Type() {
		return degenerateDiff(reflect.DeepEqual(a, b)), nil
	}

	nestPred := here.IsNestedContainer
	if nestPred == nil {
		nestPred = config.DefaultIsNestedContainer
	}

	if !nestPred(va.Type()) {
		// Recognized sequence type, but outside the nestable set: compare element-wise as a
		// flat, exact-equality sequence.
		na, nb := sliceToAny(va), sliceToAny(vb)
		flatCfg := here
		flatCfg.Accept = 1
		diff := compareWith[any](na, nb, equalAnyOracle(na, nb), flatCfg, nil)
		return collapseTrivial(diff), nil
	}

	pa, oka := identity(va)
	pb, okb := identity(vb)
	if oka {
		if _, seen := visitedA[pa]; seen {
			return Diff[any]{}, ErrRecursiveInput
		}
	}
	if okb {
		if _, seen := visitedB[pb]; seen {
			return Diff[any]{}, ErrRecursiveInput
		}
	}
	nextA := extend(visitedA, pa, oka)
	nextB := extend(visitedB, pb, okb)

	var recErr error
	eqOracle := myers.FuncOracle(func(i, j int) float64 {
		if recErr != nil {
			return 0
		}
		d, err := compareNested(va.Index(i).Interface(), vb.Index(j).Interface(), tail, depth-1, nextA, nextB)
		if err != nil {
			recErr = err
			return 0
		}
		return d.Ratio
	})
	digOracle := func(i, j int) NestedStatus {
		d, err := compareNested(va.Index(i).Interface(), vb.Index(j).Interface(), tail, depth-1, nextA, nextB)
		if err != nil {
			recErr = err
			return NestedStatus{Exact: false}
		}
		if d.Ratio >= 1 && !d.HasDiffs {
			return NestedStatus{Exact: true}
		}
		dd := d
		return NestedStatus{Exact: false, Diff: &dd}
	}

	na, nb := sliceToAny(va), sliceToAny(vb)
	diff := compareWith[any](na, nb, eqOracle, here, digOracle)
	if recErr != nil {
		return Diff[any]{}, recErr
	}
	return collapseTrivial(diff), nil
}

// compareLeaf implements "fall through to L2 directly" for max_depth <= 1: it still compares
// element-wise if both values are slices of the same type, just without recursing further.
func compareLeaf(a, b any, cfg config.Config) Diff[any] {
	va, aok := asSlice(a)
	vb, bok := asSlice(b)
	if !aok || !bok || va.Type() != vb.Type() {
		return degenerateDiff(reflect.DeepEqual(a, b))
	}
	na, nb := sliceToAny(va), sliceToAny(vb)
	return collapseTrivial(compareWith[any](na, nb, equalAnyOracle(na, nb), cfg, nil))
}

func equalAnyOracle(a, b []any) myers.Oracle {
	return myers.FuncOracle(func(i, j int) float64 {
		if reflect.DeepEqual(a[i], b[j]) {
			return 1
		}
		return 0
	})
}

func degenerateDiff(eq bool) Diff[any] {
	if eq {
		return Diff[any]{Ratio: 1, HasDiffs: false}
	}
	return Diff[any]{Ratio: 0, HasDiffs: false}
}

// collapseTrivial collapses a reconstructed diff with no chunks, or a single plain aligned chunk,
// to the trivial ratio-only equal diff.
func collapseTrivial(d Diff[any]) Diff[any] {
	if !d.HasDiffs {
		return d
	}
	if len(d.Diffs) == 0 {
		return Diff[any]{Ratio: d.Ratio, HasDiffs: false}
	}
	if len(d.Diffs) == 1 && d.Diffs[0].Kind == EqAligned {
		return Diff[any]{Ratio: d.Ratio, HasDiffs: false}
	}
	return d
}

func asSlice(x any) (reflect.Value, bool) {
	if x == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Slice {
		return reflect.Value{}, false
	}
	return v, true
}

func sliceToAny(v reflect.Value) []any {
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out
}

// identity returns a stable, cheap-to-compare identity for a slice's backing array, used for
// cycle detection. A nil slice has no identity.
func identity(v reflect.Value) (uintptr, bool) {
	if v.IsNil() {
		return 0, false
	}
	return v.Pointer(), true
}

// extend clones parent and adds p, bounding cycle-detection cost to O(depth) per recursion step
// instead of sharing (and therefore corrupting on backtrack) a single mutable set.
func extend(parent map[uintptr]struct{}, p uintptr, ok bool) map[uintptr]struct{} {
	next := make(map[uintptr]struct{}, len(parent)+1)
	for k := range parent {
		next[k] = struct{}{}
	}
	if ok {
		next[p] = struct{}{}
	}
	return next
}
