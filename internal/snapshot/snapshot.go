// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/staranto/snapdiff/internal/differ"
	"github.com/staranto/snapdiff/internal/log"
	"github.com/staranto/snapdiff/internal/row"
)

// DefaultDelimiter separates fields unless overridden.
const DefaultDelimiter = ';'

var (
	// ErrEmpty is returned for an input without a header record.
	ErrEmpty = errors.New("snapshot is empty")
	// ErrMalformed is returned for a record that cannot be used as a row.
	ErrMalformed = errors.New("malformed record")
)

type options struct {
	delimiter rune
	name      string
}

// Option customizes Read.
type Option func(*options)

// WithDelimiter sets the field delimiter. Defaults to ';'.
func WithDelimiter(d rune) Option {
	return func(o *options) { o.delimiter = d }
}

// WithName sets the name used in error messages, usually the source path.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Stats describes what Read and Snapshot dropped or kept.
type Stats struct {
	Records    int
	Blank      int
	Duplicates int
}

// Table is a snapshot read from disk whose key columns are not resolved yet.
type Table struct {
	Name    string
	Header  []string
	Records [][]string
	Stats   Stats
}

// Read parses r. The first record is the header. Blank lines are skipped and
// every other record must have as many fields as the header and must not
// contain NUL bytes.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	o := options{delimiter: DefaultDelimiter, name: "snapshot"}
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", o.name, ErrEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", o.name, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	t := &Table{Name: o.name, Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.name, err)
		}

		line, _ := cr.FieldPos(0)
		if isBlank(rec) && len(header) > 1 {
			t.Stats.Blank++
			continue
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s:%d: %w: %d fields, header has %d",
				o.name, line, ErrMalformed, len(rec), len(header))
		}
		for i, v := range rec {
			if strings.Contains(v, row.Sep) {
				return nil, fmt.Errorf("%s:%d: %w: NUL byte in column %q",
					o.name, line, ErrMalformed, header[i])
			}
		}
		t.Records = append(t.Records, rec)
	}

	t.Stats.Records = len(t.Records)
	log.Debugf("read %s: columns=%d records=%d blank=%d", o.name, len(header), t.Stats.Records, t.Stats.Blank)
	return t, nil
}

// Snapshot builds the rows of t using keys. Exact duplicate records are
// dropped, keeping the first occurrence, since the differ treats rows as a
// set.
func (t *Table) Snapshot(keys row.Keys) (differ.Snapshot, error) {
	if err := keys.Validate(len(t.Header)); err != nil {
		return differ.Snapshot{}, fmt.Errorf("%s: %w", t.Name, err)
	}

	seen := make(map[string]struct{}, len(t.Records))
	rows := make([]row.Row, 0, len(t.Records))
	for _, rec := range t.Records {
		r := keys.NewRow(rec)
		if _, dup := seen[r.Canonical()]; dup {
			t.Stats.Duplicates++
			log.Tracef("duplicate row in %s: %s", t.Name, r)
			continue
		}
		seen[r.Canonical()] = struct{}{}
		rows = append(rows, r)
	}

	if t.Stats.Duplicates > 0 {
		log.Warnf("%s: dropped %d duplicate rows", t.Name, t.Stats.Duplicates)
	}

	header := make([]string, len(t.Header))
	copy(header, t.Header)
	return differ.Snapshot{Header: header, Rows: rows}, nil
}

func isBlank(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
