// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/staranto/snapdiff/internal/row"
)

// SetDifference returns the rows of new that are not in old (added) and the
// rows of old that are not in new (removed), compared by full value equality.
// Both inputs are treated as sets and must not contain exact duplicates.
// Results keep input order.
func SetDifference(old, new []row.Row) (added, removed []row.Row) {
	inOld := index(old)
	inNew := index(new)

	for _, r := range new {
		if _, ok := inOld[r.Canonical()]; !ok {
			added = append(added, r)
		}
	}
	for _, r := range old {
		if _, ok := inNew[r.Canonical()]; !ok {
			removed = append(removed, r)
		}
	}
	return
}

func index(rows []row.Row) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		set[r.Canonical()] = struct{}{}
	}
	return set
}
