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

func intCompare(a, b int) int { return a - b }
func intEqual(a, b int) bool  { return a == b }

func newUniqueIntIndex(t *testing.T) *Index[int, int] {
	t.Helper()
	idx, err := New[int, int](Options[int, int]{
		KeyCompare: intCompare,
		KeyEqual:   intEqual,
		Unique:     true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return idx
}

func newMultiIntIndex(t *testing.T) *Index[int, int] {
	t.Helper()
	idx, err := New[int, int](Options[int, int]{
		KeyCompare: intCompare,
		KeyEqual:   intEqual,
		ValueEqual: intEqual,
		Unique:     false,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return idx
}

func TestInsertAndSearch(t *testing.T) {
	idx := newUniqueIntIndex(t)

	keys := []int{5, 3, 8, 1, 9, 2, 7, 4, 6}
	for _, k := range keys {
		ok, err := idx.Insert(k, k*10)
		if err != nil || !ok {
			t.Fatalf("Insert(%d) = %v, %v", k, ok, err)
		}
	}

	for _, k := range keys {
		v, found, err := idx.Search(k)
		if err != nil || !found {
			t.Fatalf("Search(%d) = %v, %v, %v", k, v, found, err)
		}
		if v != k*10 {
			t.Errorf("Search(%d) = %d, want %d", k, v, k*10)
		}
	}

	if _, found, _ := idx.Search(100); found {
		t.Error("Search(100) should not be found")
	}
}

func TestInsertRejectsDuplicateUnique(t *testing.T) {
	idx := newUniqueIntIndex(t)

	ok, err := idx.Insert(1, 100)
	if err != nil || !ok {
		t.Fatalf("first insert failed: %v, %v", ok, err)
	}

	ok, err = idx.Insert(1, 200)
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if ok {
		t.Error("duplicate insert under a unique index should be rejected")
	}

	v, found, _ := idx.Search(1)
	if !found || v != 100 {
		t.Errorf("expected original value 100 to survive, got %d, found=%v", v, found)
	}
}

func TestInsertAllowsDuplicateKeyNonUnique(t *testing.T) {
	idx := newMultiIntIndex(t)

	if ok, err := idx.Insert(1, 100); err != nil || !ok {
		t.Fatalf("Insert(1, 100): %v, %v", ok, err)
	}
	if ok, err := idx.Insert(1, 200); err != nil || !ok {
		t.Fatalf("Insert(1, 200): %v, %v", ok, err)
	}

	ok, err := idx.Insert(1, 100)
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if ok {
		t.Error("exact (key, value) duplicate should be rejected even for non-unique indexes")
	}

	values, err := idx.ScanRange(1, 1)
	if err != nil {
		t.Fatalf("ScanRange: %v", err)
	}
	if len(values) != 2 {
		t.Errorf("expected 2 entries under key 1, got %d (%v)", len(values), values)
	}
}

func TestDeleteLeftmostMatchNonUnique(t *testing.T) {
	idx := newMultiIntIndex(t)

	if ok, _ := idx.Insert(1, 100); !ok {
		t.Fatal("insert failed")
	}
	if ok, _ := idx.Insert(1, 200); !ok {
		t.Fatal("insert failed")
	}

	ok, err := idx.Delete(1, 100)
	if err != nil || !ok {
		t.Fatalf("Delete(1, 100) = %v, %v", ok, err)
	}

	values, _ := idx.ScanRange(1, 1)
	if len(values) != 1 || values[0] != 200 {
		t.Errorf("expected only value 200 to remain, got %v", values)
	}

	ok, err = idx.Delete(1, 100)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if ok {
		t.Error("deleting an already-removed (key, value) pair should report false")
	}
}

func TestDeleteUnique(t *testing.T) {
	idx := newUniqueIntIndex(t)

	for i := 0; i < 20; i++ {
		if ok, _ := idx.Insert(i, i); !ok {
			t.Fatalf("insert %d failed", i)
		}
	}

	for i := 0; i < 20; i += 2 {
		ok, err := idx.Delete(i, 0)
		if err != nil || !ok {
			t.Fatalf("Delete(%d) = %v, %v", i, ok, err)
		}
	}

	for i := 0; i < 20; i++ {
		_, found, _ := idx.Search(i)
		if i%2 == 0 && found {
			t.Errorf("key %d should have been deleted", i)
		}
		if i%2 == 1 && !found {
			t.Errorf("key %d should still be present", i)
		}
	}
}

func TestDeleteNotFound(t *testing.T) {
	idx := newUniqueIntIndex(t)
	ok, err := idx.Delete(42, 0)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if ok {
		t.Error("deleting a missing key should report false")
	}
}

func TestScanAllKeysOrder(t *testing.T) {
	idx := newUniqueIntIndex(t)
	keys := []int{5, 3, 8, 1, 9, 2, 7, 4, 6}
	for _, k := range keys {
		idx.Insert(k, k)
	}

	values, err := idx.ScanAllKeys()
	if err != nil {
		t.Fatalf("ScanAllKeys: %v", err)
	}
	if len(values) != len(keys) {
		t.Fatalf("expected %d values, got %d", len(keys), len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1] >= values[i] {
			t.Errorf("values not strictly ascending at index %d: %v", i, values)
		}
	}
}

func TestScanRangeBounds(t *testing.T) {
	idx := newUniqueIntIndex(t)
	for i := 0; i < 10; i++ {
		idx.Insert(i, i)
	}

	values, err := idx.ScanRange(3, 6)
	if err != nil {
		t.Fatalf("ScanRange: %v", err)
	}
	want := []int{3, 4, 5, 6}
	if len(values) != len(want) {
		t.Fatalf("got %v, want %v", values, want)
	}
	for i, v := range want {
		if values[i] != v {
			t.Errorf("index %d: got %d, want %d", i, values[i], v)
		}
	}

	if _, err := idx.ScanRange(6, 3); err != ErrInvalidRange {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestContainsKey(t *testing.T) {
	idx := newUniqueIntIndex(t)
	idx.Insert(1, 1)

	if ok, _ := idx.ContainsKey(1); !ok {
		t.Error("expected key 1 to be present")
	}
	if ok, _ := idx.ContainsKey(2); ok {
		t.Error("expected key 2 to be absent")
	}
}

func TestRootGrowsWithHeight(t *testing.T) {
	idx := newUniqueIntIndex(t)
	for i := 0; i < 500; i++ {
		idx.Insert(i, i)
	}

	stats := idx.Stats()
	if stats.Inserts != 500 {
		t.Errorf("expected 500 inserts, got %d", stats.Inserts)
	}
	if idx.root.Load().level < 2 {
		t.Errorf("root should have grown above level 1 after 500 inserts, got level %d", idx.root.Load().level)
	}
}

func TestOperationsAfterClose(t *testing.T) {
	idx := newUniqueIntIndex(t)
	idx.Insert(1, 1)
	idx.Close()

	if _, err := idx.Insert(2, 2); err != ErrIndexClosed {
		t.Errorf("expected ErrIndexClosed, got %v", err)
	}
	if _, _, err := idx.Search(1); err != ErrIndexClosed {
		t.Errorf("expected ErrIndexClosed, got %v", err)
	}
	if _, err := idx.Delete(1, 0); err != ErrIndexClosed {
		t.Errorf("expected ErrIndexClosed, got %v", err)
	}
}
