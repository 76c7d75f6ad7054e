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

package myers

// Oracle supplies a similarity ratio for a pair of positions (i, j) in the edit grid, i indexing
// into the first sequence and j into the second. Ratio must be in [0, 1]; values outside that
// range are a programmer error the engine does not detect (see DegenerateRatio in the design
// docs).
type Oracle interface {
	Ratio(i, j int) float64
}

// FuncOracle adapts a plain callback to the Oracle interface.
type FuncOracle func(i, j int) float64

func (f FuncOracle) Ratio(i, j int) float64 { return f(i, j) }

// EqualOracle is the fast path for a pair of sequences of comparable elements: ratio is 1 when
// a[i] == b[j] and 0 otherwise.
type EqualOracle[T comparable] struct {
	A, B []T
}

func (o EqualOracle[T]) Ratio(i, j int) float64 {
	if o.A[i] == o.B[j] {
		return 1
	}
	return 0
}

// Weighted2DOracle is the fast path for a pair of matrices sharing their trailing dimension:
// ratio(i,j) is the weighted fraction of columns where row i of A equals row j of B. A nil weight
// slice means uniform weights.
type Weighted2DOracle[T comparable] struct {
	A, B [][]T
	W    []float64
}

// NewWeighted2DOracle validates that a and b share a trailing dimension before constructing the
// oracle; mismatched trailing dimensions are a programmer error (UnsupportedOracle).
func NewWeighted2DOracle[T comparable](a, b [][]T, w []float64) Weighted2DOracle[T] {
	if len(a) > 0 && len(b) > 0 && len(a[0]) != len(b[0]) {
		panic("myers: weighted 2D oracle requires a and b to share a trailing dimension")
	}
	return Weighted2DOracle[T]{A: a, B: b, W: w}
}

func (o Weighted2DOracle[T]) Ratio(i, j int) float64 {
	row, col := o.A[i], o.B[j]
	if len(row) != len(col) {
		panic("myers: unsupported oracle: trailing dimension mismatch")
	}
	if len(row) == 0 {
		return 1
	}
	var total, match float64
	for k := range row {
		w := 1.0
		if o.W != nil {
			w = o.W[k]
		}
		total += w
		if row[k] == col[k] {
			match += w
		}
	}
	if total == 0 {
		return 1
	}
	return match / total
}
