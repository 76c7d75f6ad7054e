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

package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPopBudgetReusesLastElement(t *testing.T) {
	head, tail := PopBudget([]int{1, 2, 3})
	if head != 1 {
		t.Errorf("head = %d, want 1", head)
	}
	if diff := cmp.Diff([]int{2, 3}, tail); diff != "" {
		t.Errorf("tail mismatch [-want,+got]:\n%s", diff)
	}

	head, tail = PopBudget([]int{5})
	if head != 5 {
		t.Errorf("head = %d, want 5", head)
	}
	if diff := cmp.Diff([]int{5}, tail); diff != "" {
		t.Errorf("exhausted tail should reuse its last element [-want,+got]:\n%s", diff)
	}
}

func TestPopLevelDerivesAcceptFromMinRatioTail(t *testing.T) {
	cfg := Default
	cfg.MinRatio = []float64{0, 0.9}

	here, tail := cfg.PopLevel()
	if here.MinRatio[0] != 0 {
		t.Errorf("here.MinRatio = %v, want [0]", here.MinRatio)
	}
	if here.Accept != 0.9 {
		t.Errorf("here.Accept = %v, want 0.9 (head of the tail left after popping MinRatio's own head)", here.Accept)
	}
	if diff := cmp.Diff([]float64{0.9}, tail.MinRatio); diff != "" {
		t.Errorf("tail.MinRatio mismatch [-want,+got]:\n%s", diff)
	}

	// Once exhausted, the last element is carried forever: a second pop sees the same tuple.
	here2, tail2 := tail.PopLevel()
	if here2.MinRatio[0] != 0.9 || here2.Accept != 0.9 {
		t.Errorf("here2 = %+v, want MinRatio [0.9] and Accept 0.9", here2)
	}
	if diff := cmp.Diff([]float64{0.9}, tail2.MinRatio); diff != "" {
		t.Errorf("tail2.MinRatio mismatch [-want,+got]:\n%s", diff)
	}
}

func TestPopLevelPopsAllBudgetTuplesIndependently(t *testing.T) {
	cfg := Default
	cfg.MaxCost = []int{10, 20}
	cfg.MaxDelta = []int{1, 2, 3}
	cfg.MaxCalls = []int{100}

	here, tail := cfg.PopLevel()
	if here.MaxCostHere() != 10 || here.MaxDeltaHere() != 1 || here.MaxCallsHere() != 100 {
		t.Errorf("here = %+v, want heads 10/1/100", here)
	}
	if diff := cmp.Diff([]int{20}, tail.MaxCost); diff != "" {
		t.Errorf("tail.MaxCost mismatch [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, tail.MaxDelta); diff != "" {
		t.Errorf("tail.MaxDelta mismatch [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]int{100}, tail.MaxCalls); diff != "" {
		t.Errorf("tail.MaxCalls mismatch (single-valued tuple reused) [-want,+got]:\n%s", diff)
	}
}
