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

import "github.com/google/uuid"

// ID returns the index's instance identifier, minted once at construction.
// It tags log lines so a process juggling several indexes can tell which
// one a given message came from. Export output does not include it.
func (idx *Index[K, V]) ID() string {
	return idx.id.String()
}

func newInstanceID() uuid.UUID {
	return uuid.New()
}
