// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/snapdiff/internal/row"
)

// ErrHeaderMismatch is returned when the two snapshots do not share a column
// layout.
var ErrHeaderMismatch = errors.New("header mismatch")

// Snapshot is one parsed dataset.
type Snapshot struct {
	Header []string
	Rows   []row.Row
}

// Compare returns the changeset that turns old into new. Both snapshots must
// have the same header; otherwise nothing is compared and ErrHeaderMismatch is
// returned.
func Compare(old, new Snapshot) ([]Change, error) {
	log.Debugf(">> Compare()")

	if err := CheckHeaders(old.Header, new.Header); err != nil {
		return nil, err
	}

	added, removed := SetDifference(old.Rows, new.Rows)
	log.Debugf("rows: old=%d new=%d added=%d removed=%d",
		len(old.Rows), len(new.Rows), len(added), len(removed))

	changes, err := Match(removed, added)
	if err != nil {
		return nil, err
	}

	log.Debugf("changes: %d", len(changes))
	return changes, nil
}

// CheckHeaders returns ErrHeaderMismatch unless old and new name the same
// columns in the same order.
func CheckHeaders(old, new []string) error {
	if len(old) != len(new) {
		return fmt.Errorf("%w: old has %d columns, new has %d", ErrHeaderMismatch, len(old), len(new))
	}
	for i := range old {
		if old[i] != new[i] {
			return fmt.Errorf("%w: column %d is %q in old, %q in new", ErrHeaderMismatch, i, old[i], new[i])
		}
	}
	return nil
}
