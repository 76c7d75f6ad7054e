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

func TestCompareEmpty(t *testing.T) {
	d := Compare[string](nil, nil)
	require.Equal(t, 1.0, d.Ratio)
	require.True(t, d.HasDiffs)
	require.Empty(t, d.Diffs)
}

func TestCompareIdentical(t *testing.T) {
	x := []string{"a", "b", "c"}
	d := Compare(x, x)
	require.Equal(t, 1.0, d.Ratio)
	require.False(t, d.HasChanges())
	require.Equal(t, x, d.GetA())
	require.Equal(t, x, d.GetB())
}

func TestComparePartialNoMinRatio(t *testing.T) {
	// alice/bob match exactly, "xxx" has nothing to align to: one aligned chunk of 2, one
	// disaligned chunk consuming only a's leftover.
	a := []string{"alice", "bob", "xxx"}
	b := []string{"alice", "bob"}
	d := Compare(a, b, MinRatio(0))
	require.True(t, d.HasDiffs)
	require.Len(t, d.Diffs, 2)
	require.Equal(t, EqAligned, d.Diffs[0].Kind)
	require.Equal(t, []string{"alice", "bob"}, d.Diffs[0].A)
	require.Equal(t, EqDisaligned, d.Diffs[1].Kind)
	require.Equal(t, []string{"xxx"}, d.Diffs[1].A)
	require.Empty(t, d.Diffs[1].B)
	require.InDelta(t, 4.0/5.0, d.Ratio, 1e-9)
}

func TestCompareBudgetExhaustedStrict(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"v", "w", "x", "y", "z"}
	d := Compare(a, b, MaxCost(1))
	require.True(t, d.HasDiffs)
	require.Len(t, d.Diffs, 1)
	require.Equal(t, EqDisaligned, d.Diffs[0].Kind)
	require.Equal(t, 0.0, d.Ratio)
}

func TestCompareBudgetExhaustedNonStrict(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"v", "w", "x", "y", "z"}
	d := Compare(a, b, MaxCost(1), Strict(false))
	require.False(t, d.HasDiffs)
	require.Equal(t, 0.0, d.Ratio)
}

func TestCompareEqOnly(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}
	d := Compare(a, b, EqOnly())
	require.False(t, d.HasDiffs)
	require.InDelta(t, 2.0/3.0, d.Ratio, 1e-9)
}

func TestCompareFuncOracle(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{2, 4, 6}
	oracle := func(i, j int) float64 {
		if a[i]*2 == b[j] {
			return 1
		}
		return 0
	}
	d := CompareFunc(a, b, oracle, Accept(1))
	require.Equal(t, 1.0, d.Ratio)
	require.False(t, d.HasChanges())
}

func TestCompareFuncOracleRejectsNonPositiveAccept(t *testing.T) {
	require.Panics(t, func() {
		CompareFunc([]int{1}, []int{1}, func(i, j int) float64 { return 1 }, Accept(0))
	})
}

func TestCompareDisallowedOptionPanics(t *testing.T) {
	require.Panics(t, func() {
		Compare([]int{1}, []int{2}, MaxDepth(3))
	})
}
