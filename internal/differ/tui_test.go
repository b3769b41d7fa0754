// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFiles() []SnapshotFile {
	base := time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)
	return []SnapshotFile{
		{Path: "/d/11-07.csv", Name: "11-07.csv", Size: 2048, ModTime: base.Add(5 * 24 * time.Hour)},
		{Path: "/d/11-02.csv", Name: "11-02.csv", Size: 1024, ModTime: base},
		{Path: "/d/11-09.csv", Name: "11-09.csv", Size: 4096, ModTime: base.Add(7 * 24 * time.Hour)},
	}
}

func send(m tea.Model, msgs ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	quit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestModelSelectTwo(t *testing.T) {
	m, cmd := send(model{items: testFiles()}, space, down, space, enter)
	require.NotNil(t, cmd)

	got := m.(model).selected
	require.Len(t, got, 2)
	assert.Equal(t, "11-07.csv", got[0].Name)
	assert.Equal(t, "11-02.csv", got[1].Name)

	ordered := orderByAge(got)
	assert.Equal(t, "11-02.csv", ordered[0].Name)
	assert.Equal(t, "11-07.csv", ordered[1].Name)
}

func TestOrderByAgeSameModTime(t *testing.T) {
	mtime := time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC)
	b := SnapshotFile{Name: "b.csv", ModTime: mtime}
	a := SnapshotFile{Name: "a.csv", ModTime: mtime}

	for _, selected := range [][]SnapshotFile{{a, b}, {b, a}} {
		ordered := orderByAge(selected)
		require.Len(t, ordered, 2)
		assert.Equal(t, "a.csv", ordered[0].Name)
		assert.Equal(t, "b.csv", ordered[1].Name)
	}
}

func TestModelEnterNeedsTwo(t *testing.T) {
	_, cmd := send(model{items: testFiles()}, space, enter)
	assert.Nil(t, cmd)
}

func TestModelToggleAndLimit(t *testing.T) {
	m, _ := send(model{items: testFiles()}, space, space)
	assert.Empty(t, m.(model).selected)

	m, _ = send(model{items: testFiles()}, space, down, space, down, space)
	assert.Len(t, m.(model).selected, 2)
	assert.False(t, contains(m.(model).selected, testFiles()[2]))
}

func TestModelCursorBounds(t *testing.T) {
	m, _ := send(model{items: testFiles()}, up, up)
	assert.Equal(t, 0, m.(model).cursor)

	m, _ = send(model{items: testFiles()}, down, down, down, down)
	assert.Equal(t, 2, m.(model).cursor)
}

func TestModelQuitClearsSelection(t *testing.T) {
	m, cmd := send(model{items: testFiles()}, space, down, space, quit)
	require.NotNil(t, cmd)
	assert.Nil(t, m.(model).selected)
	assert.Nil(t, orderByAge(m.(model).selected))
}

func TestModelView(t *testing.T) {
	m, _ := send(model{items: testFiles()}, space)
	view := m.View()

	assert.Contains(t, view, "Select two snapshots")
	assert.Contains(t, view, "[x] 11-07.csv")
	assert.Contains(t, view, "2.0 kB")
	assert.Contains(t, view, "ENTER: go")
}

func TestModelEmpty(t *testing.T) {
	m, cmd := send(model{}, space, down, enter)
	assert.Nil(t, cmd)
	assert.Empty(t, m.(model).selected)
}
