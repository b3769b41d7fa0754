// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/staranto/snapdiff/internal/row"
)

// Kind tags a Change.
type Kind int

const (
	Added Kind = iota
	Removed
	Changed
)

var kindNames = [...]string{"added", "removed", "changed"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// Change is one entry of a changeset.
type Change struct {
	Kind Kind
	// Row is the new row for Added and Changed, the old row for Removed.
	Row row.Row
	// Columns lists, ascending, the indices that differ from Previous. Only
	// set for Changed.
	Columns []int
	// Previous is the old row paired with Row. Only set for Changed.
	Previous row.Row
}

func added(r row.Row) Change {
	return Change{Kind: Added, Row: r}
}

func removed(r row.Row) Change {
	return Change{Kind: Removed, Row: r}
}

func changed(old, new row.Row) Change {
	return Change{Kind: Changed, Row: new, Columns: new.Diff(old), Previous: old}
}

// Summary counts the records of each kind in a changeset.
type Summary struct {
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
	Changed int `json:"changed" yaml:"changed"`
}

// Total returns the number of records counted.
func (s Summary) Total() int {
	return s.Added + s.Removed + s.Changed
}

// Summarize counts changes by kind.
func Summarize(changes []Change) (s Summary) {
	for _, c := range changes {
		switch c.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Changed:
			s.Changed++
		}
	}
	return
}
