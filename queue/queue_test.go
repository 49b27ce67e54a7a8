// Package queue
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
package queue

import (
	"sync"
	"testing"
)

func TestRetireQueueFIFOOrder(t *testing.T) {
	q := New[int]()

	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue on an empty bucket should report ok=false")
	}

	const n = 1000
	for i := 0; i < n; i++ {
		q.Enqueue(i)
	}
	for i := 0; i < n; i++ {
		val, ok := q.Dequeue()
		if !ok || val != i {
			t.Fatalf("retired item %d: got %v (ok=%v)", i, val, ok)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Error("bucket should be drained after dequeueing every retired item")
	}
}

// TestRetireQueueConcurrentRetireAndDrain mirrors how reclaimer uses a
// bucket: many goroutines retire unlinked nodes concurrently, then the
// bucket is drained, with no loss or duplication either way.
func TestRetireQueueConcurrentRetireAndDrain(t *testing.T) {
	q := New[int]()
	const count = 10000

	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(val int) {
			defer wg.Done()
			q.Enqueue(val)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < count; i++ {
		val, ok := q.Dequeue()
		if !ok {
			t.Fatalf("expected %d retired items, drain stopped early at %d", count, i)
		}
		if seen[val] {
			t.Errorf("item %d drained twice", val)
		}
		seen[val] = true
	}
	if _, ok := q.Dequeue(); ok {
		t.Error("bucket should be empty once every retired item is drained")
	}
}
