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

// Package myers implements a linear-space variant of Myers' O(ND) shortest-edit-script
// algorithm, generalized from boolean equality to a [0,1]-valued similarity [Oracle] and bounded
// by explicit cost, call, and delta budgets instead of a fixed too-expensive heuristic.
//
// The algorithm is the standard dual-front diagonal search described in Myers' paper (An O(ND)
// difference algorithm and its variations, Algorithmica 1, 251-266, 1986): a forward front grows
// from (0,0) and a reverse front grows from (n,m) in lock-step; the first diagonal on which the
// two fronts overlap is the "middle snake" of an optimal path, which splits the problem into two
// independent, strictly smaller subproblems recursed into directly.
//
// Search allocates O(n+m) working memory (the two diagonal arrays), never O(n*m), at the cost of
// revisiting the same diagonal ranges once per recursive split.
package myers

import "math"

// Options configures a single Search call.
type Options struct {
	// Accept is the minimal oracle ratio treated as a diagonal (matching) edge.
	Accept float64

	// MaxCost bounds the edit script cost the search is willing to accept.
	MaxCost int

	// MaxCalls bounds the number of oracle evaluations/loop iterations, guarding against
	// pathological or non-monotone oracles.
	MaxCalls int

	// MaxDelta bounds how far an aligned pair of indices may drift from the identity diagonal.
	MaxDelta int

	// EqOnly, if set, skips script reconstruction: out is ignored entirely and Search only
	// determines the cost.
	EqOnly bool
}

// Search finds a minimal-cost edit script transforming a sequence of length n into a sequence of
// length m, guided by oracle. It returns the cost of the best script found, which is <=
// min(opts.MaxCost, n+m); if no script within budget exists, it returns n+m, which is then >
// opts.MaxCost. When the call budget runs out it also returns n+m, whatever opts.MaxCost is.
//
// When opts.EqOnly is false, the edit-code stream (1 = horizontal step, 2 = vertical step, 3 =
// diagonal step always followed by a 0 pad) is written into out. If out is nil, a fresh buffer of length n+m is allocated;
// if non-nil its length must be exactly n+m. When opts.EqOnly is true, out is never read or
// written, even if non-nil.
func Search(n, m int, oracle Oracle, opts Options, out []byte) int {
	if n < 0 || m < 0 {
		panic("myers: negative dimension")
	}
	if oracle == nil {
		panic("myers: nil oracle")
	}

	s := &searcher{
		oracle:   oracle,
		accept:   opts.Accept,
		maxCost:  opts.MaxCost,
		maxCalls: opts.MaxCalls,
		maxDelta: opts.MaxDelta,
		eqOnly:   opts.EqOnly,
	}

	i0, j0, i1, j1 := s.stripEnds(n, m)
	if s.exhausted {
		return s.giveUp(n, m, out)
	}

	s.alloc(i1-i0, j1-j0)

	var cost int
	switch {
	case i0 == i1:
		cost = j1 - j0
	case j0 == j1:
		cost = i1 - i0
	default:
		_, _, _, _, d, ok := s.split(i0, i1, j0, j1)
		if !ok {
			return s.giveUp(n, m, out)
		}
		cost = d
	}
	if cost > opts.MaxCost {
		return s.giveUp(n, m, out)
	}
	if opts.EqOnly {
		return cost
	}

	out = s.prepareOut(out, n, m)
	s.pos = 0
	s.writeDiagRun(i0)
	if !s.walk(i0, i1, j0, j1) {
		return s.giveUp(n, m, out)
	}
	s.writeDiagRun(n - i1)
	return cost
}

// searcher holds the working state of a single Search call.
type searcher struct {
	oracle   Oracle
	accept   float64
	maxCost  int
	maxCalls int
	maxDelta int
	eqOnly   bool

	calls     int
	exhausted bool

	// v-arrays for forwards and backwards iteration respectively. A v-array stores the furthest
	// reaching endpoint of a d-path in diagonal k in v[v0+k] where v0 translates k in [-d,d] to
	// an index in [0, 2*d].
	vf, vb []int
	v0     int

	out []byte
	pos int
}

// tick counts one oracle evaluation or loop step against the call budget.
func (s *searcher) tick() bool {
	s.calls++
	return s.calls <= s.maxCalls
}

// stripEnds advances the common diagonal prefix and suffix of the (n,m) problem without writing
// anything, so that no partial output is ever observable if the search later gives up.
func (s *searcher) stripEnds(n, m int) (i0, j0, i1, j1 int) {
	i0, j0 = 0, 0
	i1, j1 = n, m
	for i0 < i1 && j0 < j1 {
		if !s.tick() {
			s.exhausted = true
			return
		}
		if s.oracle.Ratio(i0, j0) < s.accept {
			break
		}
		i0++
		j0++
	}
	for i1 > i0 && j1 > j0 {
		if !s.tick() {
			s.exhausted = true
			return
		}
		if s.oracle.Ratio(i1-1, j1-1) < s.accept {
			break
		}
		i1--
		j1--
	}
	return
}

// alloc sizes the v-arrays for a reduced problem of dimensions n x m.
func (s *searcher) alloc(n, m int) {
	diagonals := n + m
	vlen := 2*diagonals + 3 // +1 for the middle point, +2 for the borders
	buf := make([]int, 2*vlen)
	s.vf = buf[:vlen]
	s.vb = buf[vlen:]
	s.v0 = diagonals + 1
}

// split finds the endpoints of the (possibly empty) middle snake of an optimal path from
// (smin,tmin) to (smax,tmax), along with the cost d of that path.
//
// x[smin:smax] and y[tmin:tmax] must not share a common prefix or suffix and must not both be
// empty. ok is false when the call budget was exhausted before a middle snake was found.
func (s *searcher) split(smin, smax, tmin, tmax int) (s0, s1, t0, t1, d int, ok bool) {
	N, M := smax-smin, tmax-tmin
	vf, vb := s.vf, s.vb
	v0 := s.v0

	kmin, kmax := smin-tmax, smax-tmin
	if lo := -s.maxDelta; kmin < lo {
		kmin = lo
	}
	if hi := s.maxDelta; kmax > hi {
		kmax = hi
	}

	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid
	odd := (N-M)%2 != 0

	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	for d := 1; ; d++ {
		// A snake found from here on costs at least 2d-1.
		if 2*d-1 > s.maxCost {
			return 0, 0, 0, 0, 0, false
		}

		// Forwards iteration.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0
			var si int
			if vf[k0-1] < vf[k0+1] {
				si = vf[k0+1]
			} else {
				si = vf[k0-1] + 1
			}
			ti := si - k

			si0, ti0 := si, ti
			for si < smax && ti < tmax {
				if !s.tick() {
					return 0, 0, 0, 0, 0, false
				}
				if s.oracle.Ratio(si, ti) < s.accept {
					break
				}
				si++
				ti++
			}
			vf[k0] = si

			if odd && bmin <= k && k <= bmax && si >= vb[k0] {
				return si0, si, ti0, ti, 2*d - 1, true
			}
		}

		// Backwards iteration.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var si int
			if vb[k0-1] < vb[k0+1] {
				si = vb[k0-1]
			} else {
				si = vb[k0+1] - 1
			}
			ti := si - k

			si0, ti0 := si, ti
			for si > smin && ti > tmin {
				if !s.tick() {
					return 0, 0, 0, 0, 0, false
				}
				if s.oracle.Ratio(si-1, ti-1) < s.accept {
					break
				}
				si--
				ti--
			}
			vb[k0] = si

			if !odd && fmin <= k && k <= fmax && si <= vf[v0+k] {
				return si, si0, ti, ti0, 2 * d, true
			}
		}

		if !s.tick() {
			return 0, 0, 0, 0, 0, false
		}
	}
}

// walk reconstructs the edit-code stream for the range (smin,smax)x(tmin,tmax) by recursively
// splitting at middle snakes and writing the resulting horizontal/vertical/diagonal codes into
// s.out in left-to-right order.
func (s *searcher) walk(smin, smax, tmin, tmax int) bool {
	// split needs a range without a common prefix or suffix: strip both and emit them as diagonals.
	pre, suf := 0, 0
	for smin+pre < smax && tmin+pre < tmax && s.oracle.Ratio(smin+pre, tmin+pre) >= s.accept {
		pre++
	}
	for smin+pre < smax-suf && tmin+pre < tmax-suf && s.oracle.Ratio(smax-suf-1, tmax-suf-1) >= s.accept {
		suf++
	}
	s.writeDiagRun(pre)
	smin, smax, tmin, tmax = smin+pre, smax-suf, tmin+pre, tmax-suf

	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			s.out[s.pos] = 2
			s.pos++
		}
	case tmin == tmax:
		for i := smin; i < smax; i++ {
			s.out[s.pos] = 1
			s.pos++
		}
	default:
		s0, s1, t0, t1, _, ok := s.split(smin, smax, tmin, tmax)
		if !ok || !s.walk(smin, s0, tmin, t0) {
			return false
		}
		s.writeDiagRun(s1 - s0)
		if !s.walk(s1, smax, t1, tmax) {
			return false
		}
	}
	s.writeDiagRun(suf)
	return true
}

func (s *searcher) writeDiagRun(n int) {
	for i := 0; i < n; i++ {
		s.out[s.pos] = 3
		s.pos++
		s.out[s.pos] = 0
		s.pos++
	}
}

func (s *searcher) prepareOut(out []byte, n, m int) []byte {
	if out == nil {
		out = make([]byte, n+m)
	} else if len(out) != n+m {
		panic("myers: output buffer length != n+m")
	}
	s.out = out
	return out
}

// giveUp abandons the search and, unless eqOnly is set, overwrites out with a trivial
// all-deletions-then-all-insertions script, returning n+m, the cost of that script. This exceeds
// MaxCost when the cost budget caused the give-up; after the call budget runs out it need not.
func (s *searcher) giveUp(n, m int, out []byte) int {
	if !s.eqOnly {
		if out == nil {
			out = make([]byte, n+m)
		} else if len(out) != n+m {
			panic("myers: output buffer length != n+m")
		}
		for i := 0; i < n; i++ {
			out[i] = 1
		}
		for j := 0; j < m; j++ {
			out[n+j] = 2
		}
	}
	return n + m
}
