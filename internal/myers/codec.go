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

// Canonize rewrites codes in place so that within every run bounded by diagonal matches (or the
// stream's ends), every horizontal code (1) precedes every vertical code (2). Diagonal codes (3)
// and their padding (0) double as run boundaries and are left untouched.
//
// After canonization, the stream is uniquely determined by the sequence of (horizontal-count,
// vertical-count, diagonal-length) triples, one per run.
func Canonize(codes []byte) {
	start := 0
	i := 0
	for i < len(codes) {
		if codes[i] == 3 {
			canonizeRun(codes[start:i])
			i += 2 // skip the 3,0 pair
			start = i
			continue
		}
		i++
	}
	canonizeRun(codes[start:])
}

func canonizeRun(run []byte) {
	ones := 0
	for _, c := range run {
		if c == 1 {
			ones++
		}
	}
	for i := range run {
		if i < ones {
			run[i] = 1
		} else {
			run[i] = 2
		}
	}
}
