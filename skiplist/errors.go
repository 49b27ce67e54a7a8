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

import "errors"

var (
	// ErrNilComparator is returned by New when Options.KeyCompare or
	// Options.KeyEqual is nil.
	ErrNilComparator = errors.New("skiplist: key comparator and equality checker are required")

	// ErrNilValueEquality is returned by New when Options.Unique is false
	// and Options.ValueEqual is nil, since non-unique indexes need it to
	// locate a specific (key, value) pair among duplicates.
	ErrNilValueEquality = errors.New("skiplist: value equality checker is required for non-unique indexes")

	// ErrInvalidRange is returned by ScanRange when lo sorts after hi.
	ErrInvalidRange = errors.New("skiplist: range lower bound sorts after upper bound")

	// ErrIndexClosed is returned by any operation attempted after Close.
	ErrIndexClosed = errors.New("skiplist: index is closed")
)
