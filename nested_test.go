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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareNestedAlignedWithMismatches(t *testing.T) {
	// Mirrors diff_nested(["alice1","bob1","xxx"], ["alice2","bob2"]): byte slices so the
	// recursive driver actually has something to recurse into; a bare Go string isn't a
	// reflect.Slice and would fall straight to DeepEqual.
	a := [][]byte{[]byte("alice1"), []byte("bob1"), []byte("xxx")}
	b := [][]byte{[]byte("alice2"), []byte("bob2")}

	// MinRatio(0, 0.75): a per-level tuple whose head (0) is this level's own give-up threshold
	// (kept at 0 so the overall low ratio across all three rows never triggers the strict
	// collapse), whose tail (0.75) becomes the accept threshold per spec.md §4.4 — matching the
	// package default so per-row alignment behaves the same as in the other scenarios here.
	d, err := CompareNested(a, b, MinRatio(0, 0.75))
	require.NoError(t, err)
	require.InDelta(t, 0.8, d.Ratio, 1e-9)
	require.True(t, d.HasDiffs)
	require.Len(t, d.Diffs, 2)

	aligned := d.Diffs[0]
	require.Equal(t, EqNested, aligned.Kind)
	require.Len(t, aligned.Nested, 2)
	require.False(t, aligned.Nested[0].Exact)
	require.InDelta(t, 5.0/6.0, aligned.Nested[0].Diff.Ratio, 1e-9)
	require.False(t, aligned.Nested[1].Exact)
	require.InDelta(t, 3.0/4.0, aligned.Nested[1].Diff.Ratio, 1e-9)

	tail := d.Diffs[1]
	require.Equal(t, EqDisaligned, tail.Kind)
	require.Equal(t, [][]byte{[]byte("xxx")}, tail.A)
	require.Empty(t, tail.B)
}

func TestCompareNestedIdenticalCollapses(t *testing.T) {
	a := [][]byte{[]byte("same")}
	d, err := CompareNested(a, a)
	require.NoError(t, err)
	require.Equal(t, 1.0, d.Ratio)
	require.False(t, d.HasDiffs)
}

func TestCompareNestedTypeMismatchDegenerates(t *testing.T) {
	d, err := CompareNested("a string", 42)
	require.NoError(t, err)
	require.False(t, d.HasDiffs)
	require.Equal(t, 0.0, d.Ratio)
}

func TestCompareNestedRecursiveInput(t *testing.T) {
	recSlice := make([]any, 1)
	recSlice[0] = recSlice

	_, err := CompareNested(recSlice, recSlice)
	require.ErrorIs(t, err, ErrRecursiveInput)
}

func TestCompareNestedMinRatioTupleDerivesPerLevelAccept(t *testing.T) {
	// A single byte differs inside an otherwise-identical row: child ratio is 5/6 ≈ 0.833.
	a := [][]byte{[]byte("alice1")}
	b := [][]byte{[]byte("alice2")}

	// Default accept (0.75) is below the child ratio: the row aligns, nested.
	baseline, err := CompareNested(a, b)
	require.NoError(t, err)
	require.True(t, baseline.HasDiffs)
	require.Equal(t, EqNested, baseline.Diffs[0].Kind)

	// MinRatio(0, 0.9): top-level MinRatio is 0 (never give up on cost), but per spec.md §4.4 the
	// top-level accept threshold is derived from the head of the tail left after popping that 0,
	// i.e. 0.9. The child ratio (≈0.833) falls below it, so the row can no longer align.
	tightened, err := CompareNested(a, b, MinRatio(0, 0.9))
	require.NoError(t, err)
	require.True(t, tightened.HasDiffs)
	require.Equal(t, EqDisaligned, tightened.Diffs[0].Kind)
}

func TestCompareNestedMaxDepthFallsBackToLeaf(t *testing.T) {
	a := [][]byte{[]byte("alice1"), []byte("bob1")}
	b := [][]byte{[]byte("alice2"), []byte("bob1")}

	// Depth 1 forces compareLeaf: elements compare by exact equality, not nested ratio. The
	// resulting ratio (0.5) is below the default MinRatio, so the head is lowered to 0 to keep the
	// script from collapsing strictly; the tail keeps accept at 0.75.
	d, err := CompareNested(a, b, MaxDepth(1), MinRatio(0, 0.75))
	require.NoError(t, err)
	require.True(t, d.HasDiffs)
	require.Len(t, d.Diffs, 2)
	require.Equal(t, EqDisaligned, d.Diffs[0].Kind)
	require.Equal(t, EqAligned, d.Diffs[1].Kind)
}
