// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"

	"github.com/staranto/snapdiff/internal/differ"
)

// sortChanges returns a copy of changes stably sorted by composite key. Records
// sharing a key keep the order the matcher produced them in.
func sortChanges(changes []differ.Change) []differ.Change {
	sorted := make([]differ.Change, len(changes))
	copy(sorted, changes)

	sort.SliceStable(sorted, func(one, two int) bool {
		return sorted[one].Row.Key() < sorted[two].Row.Key()
	})

	return sorted
}
