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

// Package skiplist implements a concurrent, lock-free ordered index built as
// a skip list: a tower-of-towers where the base level holds every live key in
// sorted order and each level above skips over entries below it.
//
// Insertion and deletion are non-blocking. Deletion proceeds in two
// CAS-guarded steps - flag the predecessor's edge, then mark the target node
// itself - so that any thread that encounters a half-deleted node helps
// finish the deletion before continuing its own work, rather than blocking or
// retrying indefinitely. This is what makes the structure lock-free rather
// than merely obstruction-free.
package skiplist
