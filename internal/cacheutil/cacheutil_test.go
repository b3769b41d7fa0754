// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv(EnvDir, custom)

	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, custom, got)

	t.Setenv(EnvDir, "")
	if got, ok := Dir(); ok {
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "snapdiff", filepath.Base(got))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(EnvEnabled, tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())
	t.Setenv(EnvEnabled, "")

	sub := []string{"s3", "bucket", "plans/11-02.csv"}
	_, ok := Read(sub, "v1")
	assert.False(t, ok)

	data := []byte("id;name\n1;Alice\n")
	require.NoError(t, Write(sub, "v1", data))

	entry, ok := Read(sub, "v1")
	require.True(t, ok)
	assert.Equal(t, data, entry.Data)
	assert.Equal(t, "v1", entry.Key)
	assert.Equal(t, encodeKey("v1"), entry.EncodedKey)

	p, exists := EntryPath(sub, "v1")
	assert.True(t, exists)
	assert.Equal(t, entry.Path, p)
}

func TestWriteDisabled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)
	t.Setenv(EnvEnabled, "false")

	require.NoError(t, Write([]string{"x"}, "k", []byte("data")))
	_, err := os.Stat(filepath.Join(dir, "x"))
	assert.True(t, os.IsNotExist(err))

	_, ok := Read([]string{"x"}, "k")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())
	t.Setenv(EnvEnabled, "")

	require.NoError(t, Write([]string{"old"}, "k", []byte("stale")))
	require.NoError(t, Write([]string{"new"}, "k", []byte("fresh")))

	oldPath, _ := EntryPath([]string{"old"}, "k")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(0))
	_, ok := Read([]string{"old"}, "k")
	assert.True(t, ok, "hours <= 0 is a no-op")

	require.NoError(t, Purge(24))
	_, ok = Read([]string{"old"}, "k")
	assert.False(t, ok)
	_, ok = Read([]string{"new"}, "k")
	assert.True(t, ok)
}

func TestEncodeKey(t *testing.T) {
	assert.Len(t, encodeKey("anything"), 64)
	assert.Equal(t, encodeKey("a"), encodeKey("a"))
	assert.NotEqual(t, encodeKey("a"), encodeKey("b"))
}
