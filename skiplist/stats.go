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
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// statKind indexes one counter within a shard.
type statKind int

const (
	statInserts statKind = iota
	statDeletes
	statDuplicatesRejected
	statNotFound
	statHelpedFlags
	statHelpedMarks
	statCASRetries
	statRootGrowths
	statKindCount
)

// Stats is a point-in-time snapshot of an index's operation counters.
type Stats struct {
	Inserts            uint64
	Deletes            uint64
	DuplicatesRejected uint64
	NotFound           uint64
	HelpedFlags        uint64
	HelpedMarks        uint64
	CASRetries         uint64
	RootGrowths        uint64
}

// shardedStats spreads each counter across several independent cache lines
// so that concurrent inserters and deleters on different parts of the index
// don't all fight over a single atomic word. A shard is picked by hashing
// the operation's own key (see keyNonce), not a shared counter, so two
// goroutines touching unrelated keys only collide on a shard by chance of
// the hash rather than by definition.
type shardedStats struct {
	counters []statShard
}

type statShard struct {
	n [statKindCount]atomic.Uint64
}

func newShardedStats(shards int) *shardedStats {
	if shards < 1 {
		shards = 1
	}
	return &shardedStats{counters: make([]statShard, shards)}
}

func (s *shardedStats) pick(nonce uint64) *statShard {
	return &s.counters[nonce%uint64(len(s.counters))]
}

func (s *shardedStats) inc(kind statKind, nonce uint64) {
	s.pick(nonce).n[kind].Add(1)
}

// keyNonce derives a shard nonce from the key an operation is acting on, so
// concurrent operations on different keys spread across shards instead of
// all hashing the same shared value.
func (idx *Index[K, V]) keyNonce(key K) uint64 {
	return xxhash.Sum64String(fmt.Sprint(key))
}

func (s *shardedStats) snapshot() Stats {
	var out Stats
	for i := range s.counters {
		out.Inserts += s.counters[i].n[statInserts].Load()
		out.Deletes += s.counters[i].n[statDeletes].Load()
		out.DuplicatesRejected += s.counters[i].n[statDuplicatesRejected].Load()
		out.NotFound += s.counters[i].n[statNotFound].Load()
		out.HelpedFlags += s.counters[i].n[statHelpedFlags].Load()
		out.HelpedMarks += s.counters[i].n[statHelpedMarks].Load()
		out.CASRetries += s.counters[i].n[statCASRetries].Load()
		out.RootGrowths += s.counters[i].n[statRootGrowths].Load()
	}
	return out
}

// Stats returns a snapshot of the index's operation counters.
func (idx *Index[K, V]) Stats() Stats {
	return idx.stats.snapshot()
}
