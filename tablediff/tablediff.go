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

// Package tablediff aligns two matrices row-by-row and column-by-column, the 2D counterpart to
// the sequence diff in the parent package. It either derives both alignment axes from scratch, or
// reuses a column alignment supplied by the caller (e.g. a schema shared across many row
// comparisons) to cut straight to a weighted row alignment.
package tablediff

import (
	rdiffcore "go.rdiff.dev/core"
	"go.rdiff.dev/core/internal/myers"
)

// RowColDiff holds the row and column alignment signatures of two matrices, without the
// inflated, side-by-side matrices themselves.
type RowColDiff struct {
	RowSig, ColSig rdiffcore.Signature
}

// NumpyDiff is the result of aligning two matrices to a common shape (R, C): A and B share that
// shape, Eq reports element-wise equality, and Eq is forced to false across every row or column
// that falls in a disaligned signature part, regardless of the values placed there.
type NumpyDiff[T any] struct {
	A, B           [][]T
	Eq             [][]bool
	RowSig, ColSig rdiffcore.Signature
}

// GetRowColDiff aligns rows and columns of a and b from scratch: it diffs the matrices as nested
// sequences (rows, then cells) to get the row signature directly, then derives the column
// signature from the "common" alignment implied by every row pair's inner diff.
func GetRowColDiff[T any](a, b [][]T, opts ...rdiffcore.Option) (RowColDiff, error) {
	base, err := rdiffcore.CompareNested(toAnyMatrix(a), toAnyMatrix(b), append(opts, rdiffcore.MaxDepth(2))...)
	if err != nil {
		return RowColDiff{}, err
	}

	rowSig := derivedRowSignature(base, len(a), len(b))

	var childSigs []rdiffcore.Signature
	if base.HasDiffs {
		for _, c := range base.Diffs {
			if c.Kind == rdiffcore.EqDisaligned {
				continue
			}
			for i := range c.A {
				rowLen := len(c.A[i].([]any))
				if c.Kind == rdiffcore.EqAligned || c.Nested[i].Exact {
					childSigs = append(childSigs, rdiffcore.Signature{rdiffcore.Aligned(rowLen)})
				} else {
					childSigs = append(childSigs, c.Nested[i].Diff.Signature())
				}
			}
		}
	} else if base.Ratio >= 1 && len(a) > 0 {
		for _, row := range a {
			childSigs = append(childSigs, rdiffcore.Signature{rdiffcore.Aligned(len(row))})
		}
	}

	colSig := CommonDiffSig(numCols(a), numCols(b), childSigs)
	return RowColDiff{RowSig: rowSig, ColSig: colSig}, nil
}

func derivedRowSignature(d rdiffcore.Diff[any], na, nb int) rdiffcore.Signature {
	if d.HasDiffs {
		return d.Signature()
	}
	if d.Ratio >= 1 {
		return rdiffcore.Signature{rdiffcore.Aligned(na)}
	}
	return rdiffcore.Signature{rdiffcore.Delta(na, nb)}
}

// CommonDiffSig computes a run-length-encoded alignment of two column axes of size n and m from a
// set of per-row-pair diffs: it scores every (column_a, column_b) position by how often an aligned
// chunk in some row's diff covers it, fills the score grid with the standard LCS recurrence, and
// traces back the optimal alignment.
func CommonDiffSig(n, m int, diffs []rdiffcore.Signature) rdiffcore.Signature {
	if n == 0 || m == 0 {
		return rdiffcore.Signature{rdiffcore.Delta(n, m)}
	}

	score := make([][]int, n)
	for i := range score {
		score[i] = make([]int, m)
	}
	for _, sig := range diffs {
		x, y := 0, 0
		for _, part := range sig {
			if part.Eq {
				for k := 0; k < part.SizeA; k++ {
					if x+k < n && y+k < m {
						score[x+k][y+k]++
					}
				}
			}
			x += part.SizeA
			y += part.SizeB
		}
	}

	for y := 0; y < m; y++ {
		if y == 0 {
			for x := 1; x < n; x++ {
				score[x][0] = max(score[x][0], score[x-1][0])
			}
		} else {
			score[0][y] = max(score[0][y], score[0][y-1])
			for x := 1; x < n; x++ {
				score[x][y] = max(score[x-1][y], score[x][y-1], score[x-1][y-1]+score[x][y])
			}
		}
	}

	x, y := n-1, m-1
	isB := make([]bool, n+m)
	isEq := make([]bool, n+m+2)
	pos := n + m
	for x >= 0 && y >= 0 {
		switch {
		case x > 0 && score[x][y] == score[x-1][y]:
			x--
			pos--
		case y > 0 && score[x][y] == score[x][y-1]:
			y--
			pos--
			isB[pos] = true
		default:
			isEq[pos] = true
			isEq[pos-1] = true
			x--
			y--
			pos -= 2
			isB[pos+1] = true
		}
	}
	x++
	y++
	for k := x; k < x+y; k++ {
		isB[k] = true
	}
	isEq[0] = !isEq[1]
	isEq[len(isEq)-1] = !isEq[len(isEq)-2]

	var bounds []int
	for i := 0; i < len(isEq)-1; i++ {
		if isEq[i] != isEq[i+1] {
			bounds = append(bounds, i)
		}
	}

	parts := make(rdiffcore.Signature, 0, len(bounds))
	for i := 0; i+1 < len(bounds); i++ {
		fr, to := bounds[i], bounds[i+1]
		var sizeA, sizeB int
		for k := fr; k < to; k++ {
			if isB[k] {
				sizeB++
			} else {
				sizeA++
			}
		}
		parts = append(parts, rdiffcore.ChunkSignature{SizeA: sizeA, SizeB: sizeB, Eq: isEq[fr+1]})
	}
	return parts
}

func numCols[T any](m [][]T) int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func toAnyMatrix[T any](m [][]T) [][]any {
	out := make([][]any, len(m))
	for i, row := range m {
		out[i] = make([]any, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}

// AlignInflate inflates a and b along dim (0 for rows, 1 for columns) to match sig: aligned parts
// place a's slice and b's slice at the same position, disaligned parts reserve a's slice first and
// b's right after, padding every position neither side occupies with fill.
func AlignInflate[T any](a, b [][]T, fill T, sig rdiffcore.Signature, dim int) (ia, ib [][]T) {
	if dim == 0 {
		return inflateRows(a, b, fill, sig)
	}
	return inflateCols(a, b, fill, sig)
}

func inflateRows[T any](a, b [][]T, fill T, sig rdiffcore.Signature) (ia, ib [][]T) {
	s := sig.Len()
	wa, wb := numCols(a), numCols(b)
	ia = make([][]T, s)
	ib = make([][]T, s)
	for i := range ia {
		ia[i] = filledRow(fill, wa)
	}
	for i := range ib {
		ib[i] = filledRow(fill, wb)
	}
	offsetA, offsetB, offset := 0, 0, 0
	for _, part := range sig {
		copy(ia[offset:offset+part.SizeA], a[offsetA:offsetA+part.SizeA])
		offsetA += part.SizeA
		if !part.Eq {
			offset += part.SizeA
		}
		copy(ib[offset:offset+part.SizeB], b[offsetB:offsetB+part.SizeB])
		offsetB += part.SizeB
		offset += part.SizeB
	}
	return ia, ib
}

func inflateCols[T any](a, b [][]T, fill T, sig rdiffcore.Signature) (ia, ib [][]T) {
	n := len(a)
	t := sig.Len()
	ia = make([][]T, n)
	ib = make([][]T, n)
	for i := 0; i < n; i++ {
		ia[i], ib[i] = inflateRow1D(a[i], b[i], fill, sig, t)
	}
	return ia, ib
}

func inflateRow1D[T any](ra, rb []T, fill T, sig rdiffcore.Signature, t int) ([]T, []T) {
	ia := filledRow(fill, t)
	ib := filledRow(fill, t)
	offsetA, offsetB, offset := 0, 0, 0
	for _, part := range sig {
		copy(ia[offset:offset+part.SizeA], ra[offsetA:offsetA+part.SizeA])
		offsetA += part.SizeA
		if !part.Eq {
			offset += part.SizeA
		}
		copy(ib[offset:offset+part.SizeB], rb[offsetB:offsetB+part.SizeB])
		offsetB += part.SizeB
		offset += part.SizeB
	}
	return ia, ib
}

func filledRow[T any](fill T, width int) []T {
	row := make([]T, width)
	for i := range row {
		row[i] = fill
	}
	return row
}

// Compare2D aligns a and b from scratch (deriving both axes via [GetRowColDiff]) and returns the
// inflated, side-by-side [NumpyDiff].
func Compare2D[T comparable](a, b [][]T, fill T, opts ...rdiffcore.Option) (NumpyDiff[T], error) {
	rc, err := GetRowColDiff(a, b, opts...)
	if err != nil {
		return NumpyDiff[T]{}, err
	}
	return assemble(a, b, fill, rc.RowSig, rc.ColSig), nil
}

// Compare2DWithColSig aligns a and b given a precomputed column alignment: it inflates both
// matrices along columns first, builds a per-column weight mask from colSig (disaligned columns
// get weight 0, aligned columns weight 1), and runs a single weighted row comparison to derive the
// row signature directly, skipping the nested nxm sub-diff that [GetRowColDiff] would otherwise
// compute per row pair.
func Compare2DWithColSig[T comparable](a, b [][]T, fill T, colSig rdiffcore.Signature, opts ...rdiffcore.Option) (NumpyDiff[T], error) {
	// The row counts of a and b may differ, so each matrix is inflated on its own.
	var zero T
	t := colSig.Len()
	ra := make([][]T, len(a))
	for i := range a {
		ra[i], _ = inflateRow1D(a[i], make([]T, colSig.SizeB()), zero, colSig, t)
	}
	rb := make([][]T, len(b))
	for i := range b {
		_, rb[i] = inflateRow1D(make([]T, colSig.SizeA()), b[i], zero, colSig, t)
	}

	weights := make([]float64, colSig.Len())
	offset := 0
	for _, part := range colSig {
		w := 0.0
		if part.Eq {
			w = 1
		}
		for k := 0; k < part.Len(); k++ {
			weights[offset+k] = w
		}
		offset += part.Len()
	}

	oracle := myers.NewWeighted2DOracle(ra, rb, weights)
	rowDiff := rdiffcore.CompareFunc(ra, rb, oracle.Ratio, opts...)
	return assemble(a, b, fill, rowDiff.Signature(), colSig), nil
}

func assemble[T comparable](a, b [][]T, fill T, rowSig, colSig rdiffcore.Signature) NumpyDiff[T] {
	ia, ib := inflateRows(a, b, fill, rowSig)
	ia, ib = inflateCols(ia, ib, fill, colSig)

	eq := make([][]bool, len(ia))
	for i := range ia {
		eq[i] = make([]bool, len(ia[i]))
		for j := range ia[i] {
			eq[i][j] = ia[i][j] == ib[i][j]
		}
	}

	zeroDisalignedRows(eq, rowSig)
	zeroDisalignedCols(eq, colSig)

	return NumpyDiff[T]{A: ia, B: ib, Eq: eq, RowSig: rowSig, ColSig: colSig}
}

func zeroDisalignedRows(eq [][]bool, rowSig rdiffcore.Signature) {
	offset := 0
	for _, part := range rowSig {
		n := part.Len()
		if !part.Eq {
			for i := offset; i < offset+n; i++ {
				for j := range eq[i] {
					eq[i][j] = false
				}
			}
		}
		offset += n
	}
}

func zeroDisalignedCols(eq [][]bool, colSig rdiffcore.Signature) {
	offset := 0
	for _, part := range colSig {
		n := part.Len()
		if !part.Eq {
			for _, row := range eq {
				for j := offset; j < offset+n && j < len(row); j++ {
					row[j] = false
				}
			}
		}
		offset += n
	}
}

// ToPlain reduces a NumpyDiff back to a 1D diff over rows: a fully aligned-and-equal row becomes
// part of an EqAligned chunk, a disaligned row becomes part of an EqDisaligned chunk, and an
// aligned-but-partially-different row becomes part of an EqNested chunk whose NestedStatus only
// reports whether that row was fully equal (no deeper per-cell diff is reconstructed here).
func ToPlain[T any](d NumpyDiff[T]) rdiffcore.Diff[[]T] {
	var chunks []rdiffcore.Chunk[[]T]
	offset := 0
	for _, part := range d.RowSig {
		if !part.Eq {
			aRows := d.A[offset : offset+part.SizeA]
			offset += part.SizeA
			bRows := d.B[offset : offset+part.SizeB]
			offset += part.SizeB
			chunks = append(chunks, rdiffcore.Chunk[[]T]{A: aRows, B: bRows, Kind: rdiffcore.EqDisaligned})
			continue
		}

		aRows := d.A[offset : offset+part.SizeA]
		bRows := d.B[offset : offset+part.SizeA]
		eqRows := d.Eq[offset : offset+part.SizeA]
		offset += part.SizeA

		allExact := true
		nested := make([]rdiffcore.NestedStatus, len(aRows))
		for i, rowEq := range eqRows {
			full := allTrue(rowEq)
			nested[i] = rdiffcore.NestedStatus{Exact: full}
			if !full {
				allExact = false
			}
		}
		kind := rdiffcore.EqAligned
		if !allExact {
			kind = rdiffcore.EqNested
		}
		chunk := rdiffcore.Chunk[[]T]{A: aRows, B: bRows, Kind: kind}
		if kind == rdiffcore.EqNested {
			chunk.Nested = nested
		}
		chunks = append(chunks, chunk)
	}
	return rdiffcore.Diff[[]T]{Ratio: signatureRatio(d.RowSig), Diffs: chunks, HasDiffs: true}
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

func signatureRatio(sig rdiffcore.Signature) float64 {
	total := sig.SizeA() + sig.SizeB()
	if total == 0 {
		return 1
	}
	cost := 0
	for _, p := range sig {
		if !p.Eq {
			cost += p.SizeA + p.SizeB
		}
	}
	ratio := float64(total-cost) / float64(total)
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}
