// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"sort"

	"github.com/apex/log"

	"github.com/staranto/snapdiff/internal/row"
)

// ErrUnresolvable is returned when a group still has mismatched counts below
// the last grouping level.
var ErrUnresolvable = errors.New("no resolution found")

// level is the grouping depth a bucket is being resolved at.
type level int

const (
	primary level = iota
	secondary
)

func (l level) String() string {
	switch l {
	case primary:
		return "primary"
	case secondary:
		return "secondary"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// bucket holds the old and new rows sharing a key at one level.
type bucket struct {
	key string
	old []row.Row
	new []row.Row
}

// groupBy buckets removed rows into old and added rows into new under keyOf,
// and returns the buckets in ascending key order.
func groupBy(removed, added []row.Row, keyOf func(row.Row) string) []*bucket {
	grouped := make(map[string]*bucket)
	get := func(k string) *bucket {
		b, ok := grouped[k]
		if !ok {
			b = &bucket{key: k}
			grouped[k] = b
		}
		return b
	}

	for _, r := range removed {
		b := get(keyOf(r))
		b.old = append(b.old, r)
	}
	for _, r := range added {
		b := get(keyOf(r))
		b.new = append(b.new, r)
	}

	buckets := make([]*bucket, 0, len(grouped))
	for _, b := range grouped {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].key < buckets[j].key
	})
	return buckets
}

// Match groups removed and added rows by composite key and resolves every group
// into change records, in ascending key order.
func Match(removed, added []row.Row) ([]Change, error) {
	var changes []Change
	for _, b := range groupBy(removed, added, row.Row.Key) {
		c, err := b.resolve(primary)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c...)
	}
	return changes, nil
}

// resolve turns a bucket into change records. Equal counts pair positionally
// after sorting by order key. Unequal counts are split by order key once, then
// paired as far as possible with the excess reported as added or removed.
func (b *bucket) resolve(lvl level) ([]Change, error) {
	switch {
	case len(b.old) == 0:
		changes := make([]Change, 0, len(b.new))
		for _, r := range b.new {
			changes = append(changes, added(r))
		}
		return changes, nil
	case len(b.new) == 0:
		changes := make([]Change, 0, len(b.old))
		for _, r := range b.old {
			changes = append(changes, removed(r))
		}
		return changes, nil
	}

	sortByOrder(b.old)
	sortByOrder(b.new)

	if len(b.old) == len(b.new) {
		return pair(b.old, b.new), nil
	}

	log.Debugf("bucket %q at %s level: %d old, %d new", b.key, lvl, len(b.old), len(b.new))

	switch lvl {
	case primary:
		var changes []Change
		for _, sub := range groupBy(b.old, b.new, row.Row.Order) {
			c, err := sub.resolve(secondary)
			if err != nil {
				return nil, err
			}
			changes = append(changes, c...)
		}
		return changes, nil
	case secondary:
		both := min(len(b.old), len(b.new))
		changes := pair(b.old[:both], b.new[:both])
		for _, r := range b.old[both:] {
			changes = append(changes, removed(r))
		}
		for _, r := range b.new[both:] {
			changes = append(changes, added(r))
		}
		return changes, nil
	}

	return nil, fmt.Errorf("%w: bucket %q at %s", ErrUnresolvable, b.key, lvl)
}

// pair matches old[i] with new[i]. The slices must have equal length.
func pair(old, new []row.Row) []Change {
	changes := make([]Change, 0, len(new))
	for i := range new {
		changes = append(changes, changed(old[i], new[i]))
	}
	return changes
}

func sortByOrder(rows []row.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Order() < rows[j].Order()
	})
}
