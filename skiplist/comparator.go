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

// KeyComparator orders two keys, returning a negative number if a precedes
// b, zero if they are equal, and a positive number if a follows b.
type KeyComparator[K any] func(a, b K) int

// KeyEqualityChecker reports whether two keys are the same key.
type KeyEqualityChecker[K any] func(a, b K) bool

// ValueEqualityChecker reports whether two values are the same value. It is
// only consulted for non-unique indexes, to find an exact (key, value) pair
// among several entries sharing a key: when Insert rejects a duplicate pair
// and when Delete picks the entry to remove.
type ValueEqualityChecker[V any] func(a, b V) bool
