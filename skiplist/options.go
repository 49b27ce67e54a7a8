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
	"bytes"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	// DefaultMaxLevel bounds tower height. With p=1/2 a level-32 tower is
	// only expected past roughly two billion entries, so this comfortably
	// covers any in-memory index.
	DefaultMaxLevel = 32

	// DefaultStatShards is the number of cache lines the statistics
	// counters are spread across.
	DefaultStatShards = 16

	// DefaultReclaimInterval is how many enter/leave pairs, counted across
	// all goroutines, complete between attempts to advance the reclamation
	// epoch.
	DefaultReclaimInterval = 256
)

// Options configures a new Index. KeyCompare and KeyEqual are required;
// ValueEqual is required unless Unique is true, since a non-unique index
// needs it to tell two entries sharing a key apart when deleting one of
// them.
type Options[K any, V any] struct {
	KeyCompare KeyComparator[K]
	KeyEqual   KeyEqualityChecker[K]
	ValueEqual ValueEqualityChecker[V]

	// Unique rejects a second Insert under a key already present. When
	// false, the index accepts multiple (key, value) pairs per key and
	// Delete removes the first (key, value) match encountered in
	// ascending order.
	Unique bool

	// MaxLevel bounds tower height. Zero selects DefaultMaxLevel.
	MaxLevel int

	// LogChannel, if non-nil, receives diagnostic messages. Sends never
	// block; a full channel simply drops the message.
	LogChannel chan string

	// StatShards is the number of shards backing the statistics counters.
	// Zero selects DefaultStatShards.
	StatShards int

	// ReclaimInterval is how many operations, counted across all
	// goroutines, complete between attempts to advance the memory
	// reclamation epoch. Zero selects
	// DefaultReclaimInterval.
	ReclaimInterval uint64
}

// Index is a concurrent, lock-free ordered map from K to V backed by a
// skip list. All exported methods are safe for concurrent use by multiple
// goroutines without external locking.
type Index[K any, V any] struct {
	root atomic.Pointer[node[K, V]]
	base *node[K, V]

	keyCmp  KeyComparator[K]
	keyEq   KeyEqualityChecker[K]
	valueEq ValueEqualityChecker[V]
	unique  bool

	maxLevel int
	logCh    chan string
	stats    *shardedStats
	reclaim  *reclaimer[K, V]

	id     uuid.UUID
	closed atomic.Bool
}

// New builds an Index from Options, rejecting configurations that would
// leave it unable to compare or identify keys/values.
func New[K any, V any](opts Options[K, V]) (*Index[K, V], error) {
	if opts.KeyCompare == nil || opts.KeyEqual == nil {
		return nil, ErrNilComparator
	}
	if !opts.Unique && opts.ValueEqual == nil {
		return nil, ErrNilValueEquality
	}

	maxLevel := opts.MaxLevel
	if maxLevel <= 0 {
		maxLevel = DefaultMaxLevel
	}
	statShards := opts.StatShards
	if statShards <= 0 {
		statShards = DefaultStatShards
	}
	reclaimInterval := opts.ReclaimInterval
	if reclaimInterval == 0 {
		reclaimInterval = DefaultReclaimInterval
	}

	base := &node[K, V]{kind: headTower, level: 1}
	base.succ.Store(&edge[K, V]{})

	idx := &Index[K, V]{
		base:     base,
		keyCmp:   opts.KeyCompare,
		keyEq:    opts.KeyEqual,
		valueEq:  opts.ValueEqual,
		unique:   opts.Unique,
		maxLevel: maxLevel,
		logCh:    opts.LogChannel,
		stats:    newShardedStats(statShards),
		reclaim:  newReclaimer[K, V](reclaimInterval),
		id:       newInstanceID(),
	}
	idx.root.Store(base)
	idx.log("skiplist %s: opened, unique=%v maxLevel=%d", idx.ID(), opts.Unique, maxLevel)
	return idx, nil
}

// NewDefault builds an Index keyed on []byte using lexicographic ordering,
// the common case for an in-memory secondary index over encoded keys.
func NewDefault[V any](unique bool, valueEqual ValueEqualityChecker[V]) (*Index[[]byte, V], error) {
	return New[[]byte, V](Options[[]byte, V]{
		KeyCompare: bytes.Compare,
		KeyEqual:   bytes.Equal,
		ValueEqual: valueEqual,
		Unique:     unique,
	})
}

// Close marks the index closed. Operations already in flight complete
// normally; operations started afterward return ErrIndexClosed.
func (idx *Index[K, V]) Close() error {
	idx.closed.Store(true)
	idx.log("skiplist %s: closed", idx.ID())
	return nil
}
