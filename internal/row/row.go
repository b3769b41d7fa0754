// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package row

import (
	"fmt"
	"strings"
)

// Sep joins the two components of a composite key and the values of a canonical
// row. Snapshot parsing rejects fields that contain it.
const Sep = "\x00"

// Keys identifies the columns used to derive the composite grouping key
// (Primary + Secondary) and the ordering key (Order) of every row. It is
// resolved once per comparison and copied into each Row built from it.
type Keys struct {
	Primary   int `yaml:"primary" json:"primary"`
	Secondary int `yaml:"secondary" json:"secondary"`
	Order     int `yaml:"order" json:"order"`
}

// Validate checks that every key column exists in a row of width columns.
func (k Keys) Validate(width int) error {
	for _, c := range []struct {
		name string
		idx  int
	}{
		{"primary", k.Primary},
		{"secondary", k.Secondary},
		{"order", k.Order},
	} {
		if c.idx < 0 || c.idx >= width {
			return fmt.Errorf("%s key column %d out of range [0,%d)", c.name, c.idx, width)
		}
	}
	return nil
}

// NewRow builds a Row from values. The slice is copied.
func (k Keys) NewRow(values []string) Row {
	v := make([]string, len(values))
	copy(v, values)
	return Row{values: v, keys: k}
}

// Row is one record of a snapshot.
type Row struct {
	values []string
	keys   Keys
}

// Value returns the value of column i.
func (r Row) Value(i int) string {
	return r.values[i]
}

// Len returns the number of columns.
func (r Row) Len() int {
	return len(r.values)
}

// Values returns a copy of the column values.
func (r Row) Values() []string {
	v := make([]string, len(r.values))
	copy(v, r.values)
	return v
}

// Key returns the composite grouping key.
func (r Row) Key() string {
	return r.values[r.keys.Primary] + Sep + r.values[r.keys.Secondary]
}

// PrimaryValue returns the value of the primary key column alone.
func (r Row) PrimaryValue() string {
	return r.values[r.keys.Primary]
}

// Order returns the secondary key used to sort and subdivide a group.
func (r Row) Order() string {
	return r.values[r.keys.Order]
}

// Canonical returns the serialization used to hash a row for set membership.
func (r Row) Canonical() string {
	return strings.Join(r.values, Sep)
}

// Equal reports full positional value equality.
func (r Row) Equal(other Row) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for i := range r.values {
		if r.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// Diff returns, in ascending order, the indices of the columns whose value in r
// differs from old. Both rows must have the same width. The result is nil when
// the rows are identical.
func (r Row) Diff(old Row) []int {
	var cols []int
	for i, v := range r.values {
		if v != old.values[i] {
			cols = append(cols, i)
		}
	}
	return cols
}

// String renders the row for debug logs.
func (r Row) String() string {
	return strings.Join(r.values, ";")
}
