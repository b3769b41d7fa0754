// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/staranto/snapdiff/internal/differ"
)

// Output formats.
const (
	Text = "text"
	HTML = "html"
	JSON = "json"
	YAML = "yaml"
	CSV  = "csv"
)

// Formats lists the accepted --output values.
var Formats = []string{Text, HTML, JSON, YAML, CSV}

// ErrFormat is returned for an unsupported output format.
var ErrFormat = errors.New("unsupported output format")

// Options control rendering.
type Options struct {
	Format string
	// Color enables colored text output.
	Color bool
	// Previous emits the old row ahead of each changed row.
	Previous bool
	// Titles emits column titles in text output.
	Titles bool
	// Padding is the left padding of every text column but the first.
	Padding int
	// Delimiter separates csv fields. Zero means ';'.
	Delimiter rune
}

// Render writes changes to w in the format named by opts. Records are emitted
// in composite key order; changes itself is left untouched.
func Render(w io.Writer, header []string, changes []differ.Change, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	sorted := sortChanges(changes)

	switch opts.Format {
	case Text, "":
		return renderText(w, header, sorted, opts)
	case HTML:
		return renderHTML(w, header, sorted, opts)
	case JSON:
		return renderJSON(w, header, sorted)
	case YAML:
		return renderYAML(w, header, sorted)
	case CSV:
		return renderCSV(w, header, sorted, opts)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, opts.Format)
	}
}

// IsTerminal reports whether f is attached to a terminal. It is the default
// for --color.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// line is one rendered table row.
type line struct {
	kind      differ.Kind
	label     string
	columns   []int
	cells     []string
	hilite    []bool
	separator bool
}

// layout flattens sorted changes into table lines. With separate, a separator
// line is placed between records of different primary key values. With
// previous, each changed record is preceded by its old row labelled "-".
func layout(header []string, changes []differ.Change, previous, separate bool) []line {
	lines := make([]line, 0, len(changes))

	first := true
	var last string
	for _, c := range changes {
		pv := c.Row.PrimaryValue()
		if separate && !first && pv != last {
			lines = append(lines, line{separator: true, cells: make([]string, len(header))})
		}
		first = false
		last = pv

		hilite := make([]bool, len(header))
		for _, i := range c.Columns {
			hilite[i] = true
		}

		if previous && c.Kind == differ.Changed {
			lines = append(lines, line{
				kind:   c.Kind,
				label:  "-",
				cells:  c.Previous.Values(),
				hilite: hilite,
			})
		}

		lines = append(lines, line{
			kind:    c.Kind,
			label:   c.Kind.String(),
			columns: c.Columns,
			cells:   c.Row.Values(),
			hilite:  hilite,
		})
	}

	return lines
}

func joinInts(ints []int, sep string) string {
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
