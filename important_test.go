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

func collectImportant[T any](d Diff[T], opts ...Option) []ImportantItem[T] {
	var out []ImportantItem[T]
	for item := range d.IterImportant(opts...) {
		out = append(out, item)
	}
	return out
}

func TestIterImportantNoContextSkipsLongMatch(t *testing.T) {
	a := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	b := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "x"}
	d := Compare(a, b, MinRatio(0))
	items := collectImportant(d, Context(0))
	require.NotEmpty(t, items)
	last := items[len(items)-1]
	// The only interesting position is the final substitution; no context means the 9 leading
	// matches are reported as a single skip, not materialized one by one.
	var skipCount, itemCount int
	for _, it := range items {
		if it.Skipped > 0 {
			skipCount++
			require.Equal(t, 9, it.Skipped)
		} else {
			itemCount++
		}
	}
	require.Equal(t, 1, skipCount)
	require.Equal(t, 2, itemCount) // deletion of "10" + insertion of "x"
	require.True(t, (last.Item.A == nil) != (last.Item.B == nil), "last important item is a pure insertion or deletion")
}

func TestIterImportantWithContext(t *testing.T) {
	// a/e sit two matches away from the single change at index 2 and fall outside a context of
	// 1, so they're reported as skip markers; b/d are the adjacent context and are materialized.
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"a", "b", "x", "d", "e"}
	d := Compare(a, b, MinRatio(0))
	items := collectImportant(d, Context(1))

	var skips, interesting int
	for _, it := range items {
		if it.Skipped > 0 {
			skips++
			require.Equal(t, 1, it.Skipped)
		} else {
			interesting++
		}
	}
	require.Equal(t, 2, skips)
	require.Equal(t, 4, interesting) // b, c, x, d
}

func TestIterImportantEmptyDiffYieldsNothing(t *testing.T) {
	d := Diff[string]{Ratio: 1, HasDiffs: false}
	items := collectImportant(d)
	require.Empty(t, items)
}

func TestIterImportantStopsEarly(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	b := []string{"a", "x", "c", "d", "e", "f", "g", "y"}
	d := Compare(a, b, MinRatio(0))

	count := 0
	for range d.IterImportant(Context(0)) {
		count++
		if count == 1 {
			break
		}
	}
	require.Equal(t, 1, count)
}
