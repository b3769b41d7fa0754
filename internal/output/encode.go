// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/staranto/snapdiff/internal/differ"
	"github.com/staranto/snapdiff/internal/row"
)

// Record is the structured form of a change used by json and yaml output.
type Record struct {
	Kind differ.Kind `json:"kind" yaml:"kind"`
	// Key holds the primary and secondary key values.
	Key      []string          `json:"key" yaml:"key"`
	Changed  []string          `json:"changed,omitempty" yaml:"changed,omitempty"`
	Row      map[string]string `json:"row" yaml:"row"`
	Previous map[string]string `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// NewRecord converts c to a Record using header for column names.
func NewRecord(header []string, c differ.Change) Record {
	rec := Record{
		Kind: c.Kind,
		Key:  strings.SplitN(c.Row.Key(), row.Sep, 2),
		Row:  columnMap(header, c.Row),
	}

	for _, i := range c.Columns {
		rec.Changed = append(rec.Changed, header[i])
	}
	if c.Kind == differ.Changed {
		rec.Previous = columnMap(header, c.Previous)
	}

	return rec
}

func columnMap(header []string, r row.Row) map[string]string {
	m := make(map[string]string, len(header))
	for i, name := range header {
		m[name] = r.Value(i)
	}
	return m
}

func records(header []string, changes []differ.Change) []Record {
	recs := make([]Record, 0, len(changes))
	for _, c := range changes {
		recs = append(recs, NewRecord(header, c))
	}
	return recs
}

func renderJSON(w io.Writer, header []string, changes []differ.Change) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records(header, changes)); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, header []string, changes []differ.Change) error {
	b, err := yaml.Marshal(records(header, changes))
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// renderCSV writes kind, changed column names and the row values. Old rows
// requested with Previous are labelled "-".
func renderCSV(w io.Writer, header []string, changes []differ.Change, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter
	if cw.Comma == 0 {
		cw.Comma = ';'
	}

	if err := cw.Write(append([]string{"kind", "changed"}, header...)); err != nil {
		return err
	}

	for _, l := range layout(header, changes, opts.Previous, false) {
		names := make([]string, 0, len(l.columns))
		for _, i := range l.columns {
			names = append(names, header[i])
		}
		if err := cw.Write(append([]string{l.label, strings.Join(names, ",")}, l.cells...)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
