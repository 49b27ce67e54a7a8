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

import "fmt"

// log delivers a message to Options.LogChannel without ever blocking a
// CAS-retry loop on a slow or absent consumer. A full or nil channel just
// drops the line.
func (idx *Index[K, V]) log(format string, args ...any) {
	if idx.logCh == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	select {
	case idx.logCh <- msg:
	default:
	}
}
