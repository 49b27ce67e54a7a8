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

// Search returns the value stored under key, if present.
func (idx *Index[K, V]) Search(key K) (V, bool, error) {
	var zero V
	if idx.closed.Load() {
		return zero, false, ErrIndexClosed
	}
	e := idx.reclaim.enter()
	defer idx.reclaim.leave(e)

	pred, _ := idx.searchToLevel(key, 1, true)
	if pred.isHead() || !idx.keyEq(pred.key, key) {
		return zero, false, nil
	}
	return pred.value, true, nil
}

// ContainsKey reports whether key is present in the index.
func (idx *Index[K, V]) ContainsKey(key K) (bool, error) {
	_, ok, err := idx.Search(key)
	return ok, err
}

// ScanAllKeys returns the values of every live entry, in ascending key
// order. It is intended for debugging and small indexes; large indexes
// should prefer ScanRange.
func (idx *Index[K, V]) ScanAllKeys() ([]V, error) {
	if idx.closed.Load() {
		return nil, ErrIndexClosed
	}
	e := idx.reclaim.enter()
	defer idx.reclaim.leave(e)

	var out []V
	curr := idx.base
	next := curr.right()
	for next != nil {
		for next != nil && next.towerRoot.loadEdge().mark {
			_, status, _ := idx.tryFlagNode(curr, next)
			if status == statusFlagged {
				idx.helpFlagged(curr, next)
			}
			next = curr.right()
		}
		if next != nil {
			out = append(out, next.value)
			curr = next
			next = curr.right()
		}
	}
	return out, nil
}

// ScanRange returns the values of every live entry with key in [lo, hi],
// in ascending key order.
func (idx *Index[K, V]) ScanRange(lo, hi K) ([]V, error) {
	if idx.closed.Load() {
		return nil, ErrIndexClosed
	}
	if idx.keyCmp(lo, hi) > 0 {
		return nil, ErrInvalidRange
	}
	e := idx.reclaim.enter()
	defer idx.reclaim.leave(e)

	curr, next := idx.searchToLevel(lo, 1, false)
	var out []V
	for next != nil {
		for next != nil && next.towerRoot.loadEdge().mark {
			_, status, _ := idx.tryFlagNode(curr, next)
			if status == statusFlagged {
				idx.helpFlagged(curr, next)
			}
			next = curr.right()
		}
		if next == nil || idx.keyCmp(next.key, hi) > 0 {
			break
		}
		out = append(out, next.value)
		curr = next
		next = curr.right()
	}
	return out, nil
}
