// Package skiplist
//
// (C) Copyright Alex Gaetano Padula
//
// Licensed under the Mozilla Public License, v. 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package skiplist

import "testing"

func TestDrawHeightBounds(t *testing.T) {
	for i := 0; i < 10000; i++ {
		h := drawHeight(8)
		if h < 1 || h > 8 {
			t.Fatalf("drawHeight(8) = %d, want [1, 8]", h)
		}
	}
}

func TestDrawHeightDistributionSkewsLow(t *testing.T) {
	// maxLevel is kept well above the range checked below so the final
	// bucket's tail-probability absorption (every draw that keeps winning
	// coin flips all the way to the cap lands in one bucket) doesn't touch
	// the comparisons.
	const maxLevel = 24
	const checkUpTo = 10
	const trials = 20000

	counts := make([]int, maxLevel+1)
	for i := 0; i < trials; i++ {
		h := drawHeight(maxLevel)
		counts[h]++
	}

	if counts[1] < trials/4 {
		t.Errorf("expected roughly half of draws to stop at height 1, got %d/%d", counts[1], trials)
	}
	for h := 2; h <= checkUpTo; h++ {
		if counts[h] > counts[h-1] {
			t.Errorf("height %d occurred more often than height %d (%d > %d)", h, h-1, counts[h], counts[h-1])
		}
	}
}

func TestDrawHeightSingleLevel(t *testing.T) {
	if h := drawHeight(1); h != 1 {
		t.Errorf("drawHeight(1) = %d, want 1", h)
	}
}
