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
	"encoding/binary"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

type exportEntry[K any, V any] struct {
	Key   K `bson:"key"`
	Value V `bson:"value"`
}

// Export writes every live (key, value) pair to w as a stream of
// length-prefixed BSON documents, in ascending key order. It is a
// debugging convenience for inspecting index contents with any BSON
// tooling - not a durability mechanism; the index itself is purely
// in-memory.
func (idx *Index[K, V]) Export(w io.Writer) error {
	if idx.closed.Load() {
		return ErrIndexClosed
	}
	e := idx.reclaim.enter()
	defer idx.reclaim.leave(e)

	curr := idx.base
	next := curr.right()
	for next != nil {
		for next != nil && next.towerRoot.loadEdge().mark {
			_, status, _ := idx.tryFlagNode(curr, next)
			if status == statusFlagged {
				idx.helpFlagged(curr, next)
			}
			next = curr.right()
		}
		if next == nil {
			break
		}

		doc, err := bson.Marshal(exportEntry[K, V]{Key: next.key, Value: next.value})
		if err != nil {
			return err
		}
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(doc)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := w.Write(doc); err != nil {
			return err
		}

		curr = next
		next = curr.right()
	}
	return nil
}
