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

// flagStatus reports the outcome of a flagging attempt: statusFlagged means
// pred's edge to target is now flagged (by this call or a concurrent one);
// statusRelocated means target was no longer pred's immediate successor by
// the time the search caught up, so the caller must re-derive its position.
type flagStatus int

const (
	statusFlagged flagStatus = iota
	statusRelocated
)

// tryFlagNode attempts to claim the right to unlink target from pred by
// CASing pred's edge from a plain pointer at target to a flagged one. A
// flagged edge tells every other thread "target is being deleted, help
// finish it before using this edge for anything else."
//
// It returns the predecessor actually used (which may have moved if pred
// turned out to be marked or to no longer point at target), the resulting
// status, and whether this call was the one that won the flag.
func (idx *Index[K, V]) tryFlagNode(pred, target *node[K, V]) (*node[K, V], flagStatus, bool) {
	nonce := idx.keyNonce(target.key)
	for {
		e := pred.loadEdge()
		if e.flag {
			if e.next == target {
				return pred, statusFlagged, false
			}
		} else if !e.mark && e.next == target {
			newEdge := &edge[K, V]{next: target, flag: true, mark: e.mark}
			if pred.succ.CompareAndSwap(e, newEdge) {
				return pred, statusFlagged, true
			}
			idx.stats.inc(statCASRetries, nonce)
			e2 := pred.loadEdge()
			if e2.flag && e2.next == target {
				return pred, statusFlagged, false
			}
		}

		for pred.loadEdge().mark {
			pred = pred.backLink.Load()
		}
		var next *node[K, V]
		pred, next = idx.searchRightLT(pred, target.key)
		if next != target {
			return pred, statusRelocated, false
		}
	}
}

// tryMark sets target's own mark bit, which forbids any future insertion
// or deletion from using target as a predecessor. If target's edge is
// already flagged - meaning target is itself acting as a predecessor for a
// different, already in-flight deletion - that deletion is helped to
// completion first, since the mark CAS can't win against a flag it doesn't
// expect.
func (idx *Index[K, V]) tryMark(target *node[K, V]) {
	nonce := idx.keyNonce(target.key)
	for {
		e := target.loadEdge()
		if e.mark {
			return
		}
		if e.flag {
			idx.helpFlagged(target, e.next)
			continue
		}
		newEdge := &edge[K, V]{next: e.next, flag: false, mark: true}
		if target.succ.CompareAndSwap(e, newEdge) {
			return
		}
		idx.stats.inc(statCASRetries, nonce)
		e2 := target.loadEdge()
		if e2.flag {
			idx.helpFlagged(target, e2.next)
		}
	}
}

// helpFlagged finishes a deletion that another thread (or this one) has
// already flagged: it records pred as target's back-link hint, marks
// target, and then physically unlinks it from pred.
func (idx *Index[K, V]) helpFlagged(pred, target *node[K, V]) {
	target.backLink.Store(pred)
	if !target.loadEdge().mark {
		idx.tryMark(target)
	}
	idx.helpMarked(pred, target)
	idx.stats.inc(statHelpedFlags, idx.keyNonce(target.key))
}

// helpMarked performs the single physical unlink: swinging pred's edge
// from "flagged, pointing at target" to "plain, pointing at whatever
// target pointed at". It is fine if the CAS loses the race - that only
// means some other helper already did it.
func (idx *Index[K, V]) helpMarked(pred, target *node[K, V]) {
	e := pred.loadEdge()
	if !(e.flag && e.next == target) {
		return
	}
	newEdge := &edge[K, V]{next: target.right(), flag: false, mark: e.mark}
	if pred.succ.CompareAndSwap(e, newEdge) {
		idx.stats.inc(statHelpedMarks, idx.keyNonce(target.key))
		idx.reclaim.retireNode(target)
	}
}

// deleteNode flags and helps-complete the removal of target from pred's
// edge, returning target on success or nil if some other thread already
// claimed the flag or target had already moved on.
func (idx *Index[K, V]) deleteNode(pred, target *node[K, V]) *node[K, V] {
	_, status, claimed := idx.tryFlagNode(pred, target)
	if status == statusFlagged {
		idx.helpFlagged(pred, target)
	}
	if !claimed {
		return nil
	}
	return target
}

// findKeyValue walks the contiguous run of nodes whose key equals key,
// starting from (pred, next), and returns the immediate predecessor and
// the node of the first one whose value also equals value. It underlies
// both duplicate detection on Insert and the leftmost-match deletion rule
// for non-unique indexes.
func (idx *Index[K, V]) findKeyValue(pred, next *node[K, V], key K, value V) (*node[K, V], *node[K, V], bool) {
	curr, nxt := pred, next
	for nxt != nil && idx.keyCmp(nxt.key, key) <= 0 {
		for nxt != nil && nxt.towerRoot.loadEdge().mark {
			_, status, _ := idx.tryFlagNode(curr, nxt)
			if status == statusFlagged {
				idx.helpFlagged(curr, nxt)
			}
			nxt = curr.right()
		}
		if nxt != nil && idx.keyEq(nxt.key, key) && idx.valueEq(nxt.value, value) {
			return curr, nxt, true
		}
		if nxt != nil && idx.keyCmp(nxt.key, key) <= 0 {
			curr = nxt
			nxt = curr.right()
		}
	}
	return curr, nil, false
}

// Delete removes one entry matching key (and, for non-unique indexes,
// value) from the index. For non-unique indexes it removes the first
// (leftmost) match in ascending order; callers needing to remove every
// duplicate should loop until Delete returns false.
func (idx *Index[K, V]) Delete(key K, value V) (bool, error) {
	if idx.closed.Load() {
		return false, ErrIndexClosed
	}
	e := idx.reclaim.enter()
	defer idx.reclaim.leave(e)

	nonce := idx.keyNonce(key)
	pred, next := idx.searchToLevel(key, 1, false)
	if next == nil || !idx.keyEq(next.key, key) {
		idx.stats.inc(statNotFound, nonce)
		return false, nil
	}

	delPred, target := pred, next
	if !idx.unique {
		mp, mn, found := idx.findKeyValue(pred, next, key, value)
		if !found {
			idx.stats.inc(statNotFound, nonce)
			return false, nil
		}
		delPred, target = mp, mn
	}

	if idx.deleteNode(delPred, target) == nil {
		idx.stats.inc(statNotFound, nonce)
		return false, nil
	}

	// Upper levels are never unlinked eagerly; a dummy LEQ search at
	// level 2 lazily helps finish off any tower nodes above the base that
	// a concurrent reader happens to walk past.
	idx.searchToLevel(key, 2, true)

	idx.stats.inc(statDeletes, nonce)
	idx.log("skiplist %s: deleted key", idx.ID())
	return true, nil
}
