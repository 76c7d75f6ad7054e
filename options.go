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

// Option configures a comparison entry point. Not every option applies to every entry point; an
// option outside what an entry point allows causes that call to panic, the same way an unknown
// flag would.
type Option = config.Option

// MinRatio sets the similarity ratio below which a comparison gives up. Values closer to 1 make
// the search faster but more eager to give up; 0 forces the engine to search even through
// completely dissimilar inputs. Translated into an effective MaxCost at the entry point.
//
// For [CompareNested], ratios may be given as a per-level tuple: the first value applies at the
// top level, the second to its children, and so on; the last value given is reused at every
// deeper level once the tuple is exhausted (spec.md §4.4, §6.4). A single value applies at every
// level, as if repeated indefinitely.
func MinRatio(ratios ...float64) Option {
	if len(ratios) == 0 {
		panic("rdiffcore: MinRatio requires at least one value")
	}
	return func(c *config.Config) config.Flag {
		c.MinRatio = append([]float64(nil), ratios...)
		return config.MinRatio
	}
}

// MaxCost bounds the edit script cost a comparison is willing to accept. For [CompareNested],
// this may be a per-level tuple; see [MinRatio].
func MaxCost(costs ...int) Option {
	if len(costs) == 0 {
		panic("rdiffcore: MaxCost requires at least one value")
	}
	return func(c *config.Config) config.Flag {
		c.MaxCost = append([]int(nil), costs...)
		return config.MaxCost
	}
}

// MaxCalls bounds the number of oracle evaluations/loop iterations a comparison performs before
// giving up, guarding against pathological or non-monotone similarity functions. For
// [CompareNested], this may be a per-level tuple; see [MinRatio].
func MaxCalls(calls ...int) Option {
	if len(calls) == 0 {
		panic("rdiffcore: MaxCalls requires at least one value")
	}
	return func(c *config.Config) config.Flag {
		c.MaxCalls = append([]int(nil), calls...)
		return config.MaxCalls
	}
}

// MaxDelta bounds how far an aligned pair of indices may drift from the identity diagonal. For
// [CompareNested], this may be a per-level tuple; see [MinRatio].
func MaxDelta(deltas ...int) Option {
	if len(deltas) == 0 {
		panic("rdiffcore: MaxDelta requires at least one value")
	}
	return func(c *config.Config) config.Flag {
		c.MaxDelta = append([]int(nil), deltas...)
		return config.MaxDelta
	}
}

// Accept sets the minimal similarity ratio treated as a diagonal (matching) edge. Must be
// strictly positive; a comparison panics otherwise.
func Accept(ratio float64) Option {
	return func(c *config.Config) config.Flag {
		c.Accept = ratio
		return config.Accept
	}
}

// EqOnly, if set, makes a comparison determine only whether a script within budget exists,
// skipping reconstruction. Implies RtnDiff(false).
func EqOnly() Option {
	return func(c *config.Config) config.Flag {
		c.EqOnly = true
		return config.EqOnly
	}
}

// Strict, if set (the default), collapses an over-budget comparison into a single disaligned
// chunk with Ratio 0; if unset, an over-budget comparison returns a ratio only, with no chunks.
func Strict(strict bool) Option {
	return func(c *config.Config) config.Flag {
		c.Strict = strict
		return config.Strict
	}
}

// RtnDiff controls whether a comparison reconstructs its chunk list (the default) or computes a
// ratio only.
func RtnDiff(rtn bool) Option {
	return func(c *config.Config) config.Flag {
		c.RtnDiff = rtn
		return config.RtnDiff
	}
}

// MaxDepth bounds the recursion depth of [CompareNested].
func MaxDepth(depth int) Option {
	return func(c *config.Config) config.Flag {
		c.MaxDepth = depth
		return config.MaxDepth
	}
}

// Context sets the number of matching pairs of context [Diff.IterImportant] materializes around
// each interesting region.
func Context(n int) Option {
	return func(c *config.Config) config.Flag {
		c.Context = n
		return config.Context
	}
}

// CoarseMinRun sets the length an equal run must exceed to be exempt from coarsening into its
// neighbors in [Diff.Coarse].
func CoarseMinRun(n int) Option {
	return func(c *config.Config) config.Flag {
		c.CoarseMinRun = n
		return config.CoarseMinRun
	}
}

// entry-point allow-lists.
const (
	compareFlags = config.Accept | config.MinRatio | config.MaxCost | config.MaxDelta |
		config.MaxCalls | config.EqOnly | config.Strict | config.RtnDiff

	// CompareNested derives Accept itself at each recursion level (see [MinRatio]); diff_nested
	// has no accept parameter of its own (spec.md §4.4), so it is excluded here.
	compareNestedFlags = (compareFlags &^ config.Accept) | config.MaxDepth

	coarseFlags = config.CoarseMinRun

	iterImportantFlags = config.Context
)
