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

// Package rdiffcore implements a structural diff core: a linear-space Myers shortest-edit-script
// engine generalized to fractional element similarity, layered into sequence comparison, a
// recursive nested-container driver, and chunk-sequence algebra (coarsening and "important item"
// iteration).
//
// # Layers
//
// [Compare] and [CompareFunc] implement sequence diffing (L2) on top of the internal Myers engine
// (L0) and edit-script codec (L1). [CompareNested] (L3) recurses into arbitrary nested slices,
// feeding each level's equality back into L2. Table alignment (L4) lives in the sibling tablediff
// package. [Diff.Coarse], [Diff.Compress], and [Diff.IterImportant] implement the chunk algebra
// (L5); [Signature], [Aligned], and [Delta] implement the shape-only signature algebra (L6).
//
// # Result shape
//
// A [Diff] is a similarity ratio plus, optionally, the sequence of [Chunk] values that explain it.
// Each chunk is either an aligned equal run, a disaligned (deletion+insertion) run, or an aligned
// run whose elements differ structurally, each explained by its own nested [Diff].
package rdiffcore
