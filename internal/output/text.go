// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/staranto/snapdiff/internal/config"
	"github.com/staranto/snapdiff/internal/differ"
)

// palette holds the text colors, one per record kind plus the title.
type palette struct {
	title   color.Color
	added   color.Color
	removed color.Color
	changed color.Color
}

func (p palette) forKind(k differ.Kind) color.Color {
	switch k {
	case differ.Added:
		return p.added
	case differ.Removed:
		return p.removed
	default:
		return p.changed
	}
}

func renderText(w io.Writer, header []string, changes []differ.Change, opts Options) error {
	lines := layout(header, changes, opts.Previous, true)

	var (
		headerStyle = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle   = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		colors      palette
	)
	if opts.Color {
		colors = getColors("colors")
		headerStyle = headerStyle.Foreground(colors.title)
	}

	if len(lines) > 0 {
		rows := make([][]string, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, append([]string{l.label, joinInts(l.columns, ",")}, l.cells...))
		}

		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return padLeft(headerStyle, col, opts.Padding)
				}

				style := cellStyle
				l := lines[row]
				if opts.Color && !l.separator {
					style = style.Foreground(colors.forKind(l.kind))
					// The first two columns are kind and changed.
					if col > 1 && l.hilite[col-2] {
						style = style.Bold(true).Underline(true)
					}
				}
				return padLeft(style, col, opts.Padding)
			}).
			Rows(rows...)

		if opts.Titles {
			titles := append([]string{"kind", "changed"}, header...)
			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(titles...).BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	fmt.Fprintln(w, headerStyle.Render(footer(differ.Summarize(changes))))
	return nil
}

func padLeft(style lipgloss.Style, col, pad int) lipgloss.Style {
	if col > 0 {
		return style.PaddingLeft(pad)
	}
	return style
}

// footer renders a summary such as "3 added, 1 removed, 2 changed".
func footer(s differ.Summary) string {
	if s.Total() == 0 {
		return "no differences"
	}
	return fmt.Sprintf("%s added, %s removed, %s changed",
		humanize.Comma(int64(s.Added)),
		humanize.Comma(int64(s.Removed)),
		humanize.Comma(int64(s.Changed)))
}

// getColors returns configured color values for text rendering. Explicit
// colors from config win. Otherwise a default is picked for the terminal
// background so output stays readable on light and dark themes.
func getColors(key string) palette {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	return palette{
		title:   resolveColor(key+".title", "#b08800", "#f6be00"),
		added:   resolveColor(key+".added", "#1a7f37", "#3fb950"),
		removed: resolveColor(key+".removed", "#cf222e", "#f85149"),
		changed: resolveColor(key+".changed", "#0088a0", "#00c8f0"),
	}
}
