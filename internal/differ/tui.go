// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// SnapshotFile is a candidate snapshot offered by SelectSnapshots.
type SnapshotFile struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Go     key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("SPACE", "toggle")),
	Go:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("ENTER", "go")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("Q/ESCAPE", "quit")),
}

var (
	cursorStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// SelectSnapshots lets the user pick two of files. It returns nil if the user
// quits, otherwise the two files ordered oldest first.
func SelectSnapshots(files []SnapshotFile) []SnapshotFile {
	p := tea.NewProgram(model{items: files})
	m, err := p.Run()
	if err != nil {
		return nil
	}
	return orderByAge(m.(model).selected)
}

func orderByAge(selected []SnapshotFile) []SnapshotFile {
	if len(selected) != 2 {
		return nil
	}
	out := append([]SnapshotFile(nil), selected...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].Name < out[j].Name
		}
		return out[i].ModTime.Before(out[j].ModTime)
	})
	return out
}

type model struct {
	items    []SnapshotFile
	cursor   int
	selected []SnapshotFile
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, keys.Quit):
		m.selected = nil
		return m, tea.Quit
	case key.Matches(msgKey, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msgKey, keys.Toggle):
		if len(m.items) == 0 {
			break
		}
		m.selected = toggle(m.selected, m.items[m.cursor])
	case key.Matches(msgKey, keys.Go):
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("Select two snapshots:\n\n")
	for i, f := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if contains(m.selected, f) {
			mark = "x"
		}

		line := fmt.Sprintf("%s [%s] %-32s %8s %s", cursor, mark, f.Name,
			humanize.Bytes(uint64(f.Size)), f.ModTime.Format("2006-01-02T15:04:05"))
		if m.cursor == i {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	help := []string{}
	for _, k := range []key.Binding{keys.Toggle, keys.Go, keys.Quit} {
		help = append(help, k.Help().Key+": "+k.Help().Desc)
	}
	b.WriteString("\n" + helpStyle.Render(strings.Join(help, ", ")) + "\n")
	return b.String()
}

// toggle adds f to selected, or removes it if present. At most two files can be
// selected.
func toggle(selected []SnapshotFile, f SnapshotFile) []SnapshotFile {
	for i, v := range selected {
		if v.Path == f.Path {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	if len(selected) < 2 {
		return append(selected, f)
	}
	return selected
}

func contains(files []SnapshotFile, f SnapshotFile) bool {
	for _, v := range files {
		if v.Path == f.Path {
			return true
		}
	}
	return false
}
