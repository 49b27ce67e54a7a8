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

import "math/rand/v2"

// heightProbability is the per-level continuation probability p=1/2 used
// to draw a tower's height geometrically: height 1 is certain, each level
// above it halves in likelihood.
const heightProbability = 0.5

// drawHeight returns a tower height in [1, maxLevel] using rand/v2's
// lock-free global source rather than the legacy math/rand, which serializes
// every draw behind a single mutex-guarded source - exactly the kind of
// hidden contention a lock-free index can't afford on its insert path.
func drawHeight(maxLevel int) int {
	height := 1
	for height < maxLevel && float64(rand.Int64()&0xFFFF) < heightProbability*0xFFFF {
		height++
	}
	return height
}
