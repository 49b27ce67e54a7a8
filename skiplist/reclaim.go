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

import (
	"sync/atomic"

	"github.com/latelatif/peloton/queue"
	"github.com/latelatif/peloton/stack"
)

// epochBuckets is the number of generations tracked at once. Three is the
// minimum that lets a bucket be safely drained while the other two absorb
// readers that started before and after the last epoch advance.
const epochBuckets = 3

// reclaimer implements quiescent-state (epoch-based) reclamation for nodes
// unlinked from the skip list. A thread traversing the structure brackets
// its work with enter/leave; a node removed by HelpMarked is handed to
// retireNode instead of being freed immediately, since some other thread
// may still be mid-traversal holding a reference to it. Once every thread
// active when the node was retired has left (the epoch has advanced past
// it twice over), the node is safe to recycle. The retire queues are built
// on the module's own lock-free queue, and reclaimed nodes are handed back
// out through the module's own lock-free stack, so the index's memory
// management reuses the same primitives it uses for everything else rather
// than reaching for a third scheme.
type reclaimer[K any, V any] struct {
	epoch  atomic.Uint64
	active [epochBuckets]atomic.Int64
	retire [epochBuckets]*queue.RetireQueue[*node[K, V]]
	free   *stack.Freelist[*node[K, V]]

	ops      atomic.Uint64
	interval uint64
}

func newReclaimer[K any, V any](interval uint64) *reclaimer[K, V] {
	if interval == 0 {
		interval = 1
	}
	r := &reclaimer[K, V]{free: stack.New[*node[K, V]](), interval: interval}
	for i := range r.retire {
		r.retire[i] = queue.New[*node[K, V]]()
	}
	return r
}

// enter marks the calling goroutine as active in the current epoch and
// returns it so the matching leave call knows which bucket to release.
func (r *reclaimer[K, V]) enter() uint64 {
	e := r.epoch.Load()
	r.active[e%epochBuckets].Add(1)
	return e
}

func (r *reclaimer[K, V]) leave(e uint64) {
	r.active[e%epochBuckets].Add(-1)
	if r.ops.Add(1)%r.interval == 0 {
		r.tryAdvance()
	}
}

// retireNode queues a physically unlinked node for reclamation once it is
// no longer possible for any active traversal to be holding a reference to
// it.
func (r *reclaimer[K, V]) retireNode(n *node[K, V]) {
	r.retire[r.epoch.Load()%epochBuckets].Enqueue(n)
}

// tryAdvance moves the global epoch forward by one once every reader that
// entered under the current epoch has left, then drains and recycles the
// bucket that is now two generations stale - which, by the same check
// having passed the last time the epoch advanced, has stayed empty ever
// since. It is best-effort: if it can't advance this call, a later
// enter/leave pair will try again.
func (r *reclaimer[K, V]) tryAdvance() {
	cur := r.epoch.Load()
	if r.active[cur%epochBuckets].Load() != 0 {
		return
	}
	next := cur + 1
	if !r.epoch.CompareAndSwap(cur, next) {
		return
	}
	stale := (next + 1) % epochBuckets
	for {
		n, ok := r.retire[stale].Dequeue()
		if !ok {
			break
		}
		n.reset()
		r.free.Push(n)
	}
}

// acquire hands out a recycled node if the freelist has one, avoiding an
// allocation on the hot insert path, or allocates fresh otherwise.
func (r *reclaimer[K, V]) acquire() *node[K, V] {
	if n, ok := r.free.Pop(); ok {
		return n
	}
	return &node[K, V]{}
}

// recycle returns a node that was allocated but never linked into the
// index (an insert lost a duplicate race) directly to the freelist. No
// epoch delay is needed since the node was never visible to any other
// goroutine.
func (r *reclaimer[K, V]) recycle(n *node[K, V]) {
	n.reset()
	r.free.Push(n)
}
