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

// insertNode splices newNode in between pred and next, retrying against
// whatever pred and next turn out to be if the splice races with a
// concurrent flag, mark, or insert. It returns the predecessor finally
// used and the inserted node, or (pred, nil) if, in a unique index, a node
// with the same key showed up mid-retry and the insert must be abandoned.
func (idx *Index[K, V]) insertNode(newNode, pred, next *node[K, V]) (*node[K, V], *node[K, V]) {
	if !pred.isHead() && idx.keyEq(pred.key, newNode.key) {
		return pred, nil
	}
	nonce := idx.keyNonce(newNode.key)

	for {
		e := pred.loadEdge()
		if e.flag {
			idx.helpFlagged(pred, e.next)
		} else if e.mark {
			for pred.loadEdge().mark {
				pred = pred.backLink.Load()
			}
		} else {
			newNode.succ.Store(&edge[K, V]{next: next})
			newEdge := &edge[K, V]{next: newNode, flag: false, mark: e.mark}
			if pred.succ.CompareAndSwap(e, newEdge) {
				return pred, newNode
			}
			idx.stats.inc(statCASRetries, nonce)
			e2 := pred.loadEdge()
			if e2.flag {
				idx.helpFlagged(pred, e2.next)
			}
			for pred.loadEdge().mark {
				pred = pred.backLink.Load()
			}
		}

		pred, next = idx.searchRightLEQ(pred, newNode.key)
		if idx.unique && !pred.isHead() && idx.keyEq(pred.key, newNode.key) {
			return pred, nil
		}
	}
}

// duplicateKeyValue reports whether (key, value) is already present among
// the run of nodes sharing key, starting the search from (pred, next).
func (idx *Index[K, V]) duplicateKeyValue(pred, next *node[K, V], key K, value V) bool {
	_, _, found := idx.findKeyValue(pred, next, key, value)
	return found
}

// Insert adds (key, value) to the index. Unique indexes reject a second
// insert under a key already present; non-unique indexes reject only an
// exact (key, value) pair already present. Either way, Insert reports
// whether a new entry was actually added.
func (idx *Index[K, V]) Insert(key K, value V) (bool, error) {
	if idx.closed.Load() {
		return false, ErrIndexClosed
	}
	e := idx.reclaim.enter()
	defer idx.reclaim.leave(e)

	nonce := idx.keyNonce(key)
	leq := idx.unique
	pred, next := idx.searchToLevel(key, 1, leq)

	if idx.unique {
		if !pred.isHead() && idx.keyEq(pred.key, key) {
			idx.stats.inc(statDuplicatesRejected, nonce)
			return false, nil
		}
	} else if idx.duplicateKeyValue(pred, next, key, value) {
		idx.stats.inc(statDuplicatesRejected, nonce)
		return false, nil
	}

	height := drawHeight(idx.maxLevel)
	idx.growRootTo(height, nonce)

	leaf := idx.acquireLeaf(key, value)
	_, inserted := idx.insertNode(leaf, pred, next)
	if inserted == nil {
		idx.reclaim.recycle(leaf)
		idx.stats.inc(statDuplicatesRejected, nonce)
		return false, nil
	}

	below := leaf
	for level := 2; level <= height; level++ {
		if leaf.loadEdge().mark {
			break
		}
		mid := idx.acquireMiddle(key, below, leaf)
		mp, mn := idx.searchToLevel(key, level, idx.unique)
		_, placed := idx.insertNode(mid, mp, mn)
		if placed == nil {
			idx.reclaim.recycle(mid)
			break
		}
		below = mid
	}

	idx.stats.inc(statInserts, nonce)
	idx.log("skiplist %s: inserted key at height %d", idx.ID(), height)
	return true, nil
}

func (idx *Index[K, V]) acquireLeaf(key K, value V) *node[K, V] {
	n := idx.reclaim.acquire()
	n.key = key
	n.kind = middleTower
	n.value = value
	n.down = nil
	n.towerRoot = n
	n.succ.Store(&edge[K, V]{})
	return n
}

func (idx *Index[K, V]) acquireMiddle(key K, down, towerRoot *node[K, V]) *node[K, V] {
	n := idx.reclaim.acquire()
	n.key = key
	n.kind = middleTower
	n.down = down
	n.towerRoot = towerRoot
	n.succ.Store(&edge[K, V]{})
	return n
}

// growRootTo CASes in new head nodes above the current root until the
// tower reaches height, so a tall tower has somewhere to be linked into
// before insertNode is called at each of its levels. nonce is the inserting
// key's shard nonce (root growth isn't tied to any one key, but reusing the
// triggering Insert's nonce keeps its stats traffic on the same shard it is
// already touching instead of introducing a second hashing scheme).
func (idx *Index[K, V]) growRootTo(height int, nonce uint64) {
	root := idx.root.Load()
	for height > root.level {
		newHead := &node[K, V]{kind: headTower, level: root.level + 1, down: root}
		newHead.succ.Store(&edge[K, V]{})
		if idx.root.CompareAndSwap(root, newHead) {
			idx.stats.inc(statRootGrowths, nonce)
			root = newHead
		} else {
			root = idx.root.Load()
		}
	}
}
