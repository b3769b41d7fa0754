// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/snapdiff/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"snapdiff", "diff"},
			expected: []string{"snapdiff", "diff"},
		},
		{
			name:     "no duplicates",
			args:     []string{"snapdiff", "diff", "--output", "text", "--titles"},
			expected: []string{"snapdiff", "diff", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"snapdiff", "diff", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"snapdiff", "diff", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"snapdiff", "diff", "--titles", "--color", "--titles"},
			expected: []string{"snapdiff", "diff", "--color", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"snapdiff", "diff", "--output=json", "--titles", "--output=text"},
			expected: []string{"snapdiff", "diff", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"snapdiff", "diff", "--output=json", "--output", "text"},
			expected: []string{"snapdiff", "diff", "--output", "text"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"snapdiff", "diff", "old.csv", "new.csv", "--output", "json", "--output", "text"},
			expected: []string{"snapdiff", "diff", "old.csv", "new.csv", "--output", "text"},
		},
		{
			name:     "boolean flag does not swallow positional",
			args:     []string{"snapdiff", "diff", "--color", "old.csv", "--color", "new.csv"},
			expected: []string{"snapdiff", "diff", "old.csv", "--color", "new.csv"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"snapdiff", "diff", "-o", "json", "-o", "text"},
			expected: []string{"snapdiff", "diff", "-o", "text"},
		},
		{
			name:     "stdin positional kept",
			args:     []string{"snapdiff", "diff", "--titles", "old.csv", "-"},
			expected: []string{"snapdiff", "diff", "--titles", "old.csv", "-"},
		},
		{
			name:     "everything after -- untouched",
			args:     []string{"snapdiff", "diff", "-k", "a", "--", "-k", "-k"},
			expected: []string{"snapdiff", "diff", "-k", "a", "--", "-k", "-k"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"snapdiff", "diff", "--key", "a", "--key", "b", "--key", "c"},
			expected: []string{"snapdiff", "diff", "--key", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args))
		})
	}
}

func withConfig(t *testing.T, file string) {
	t.Helper()
	t.Setenv(config.EnvFile, filepath.Join("testdata", file))
	config.Config = config.Type{}
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestInjectConfigSet(t *testing.T) {
	withConfig(t, "sets.yaml")

	tests := []struct {
		name      string
		args      []string
		key       string
		insertIdx int
		expected  []string
	}{
		{
			name:      "missing key returns args unchanged",
			args:      []string{"snapdiff", "diff", "--titles"},
			key:       "diff.nope",
			insertIdx: 2,
			expected:  []string{"snapdiff", "diff", "--titles"},
		},
		{
			name:      "multi-word entries split",
			args:      []string{"snapdiff", "diff", "old.csv"},
			key:       "diff.nightly",
			insertIdx: 2,
			expected:  []string{"snapdiff", "diff", "--output", "html", "--previous", "old.csv"},
		},
		{
			name:      "insert at end",
			args:      []string{"snapdiff", "diff", "old.csv"},
			key:       "diff.defaults",
			insertIdx: 3,
			expected:  []string{"snapdiff", "diff", "old.csv", "--titles", "--output", "text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injectConfigSet(tt.args, tt.key, tt.insertIdx))
		})
	}
}

func TestProcessCommandArgs(t *testing.T) {
	withConfig(t, "sets.yaml")

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "defaults injected and overridden",
			args:     []string{"snapdiff", "diff", "-o", "json", "old.csv", "new.csv"},
			expected: []string{"snapdiff", "diff", "--titles", "--output", "text", "-o", "json", "old.csv", "new.csv"},
		},
		{
			name:     "named set replaces defaults",
			args:     []string{"snapdiff", "diff", "@nightly", "old.csv", "--output", "json", "new.csv"},
			expected: []string{"snapdiff", "diff", "--previous", "old.csv", "--output", "json", "new.csv"},
		},
		{
			name:     "completion untouched",
			args:     []string{"snapdiff", "completion", "bash"},
			expected: []string{"snapdiff", "completion", "bash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processCommandArgs(tt.args))
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"snapdiff", "--help"}, handleNakedCommand([]string{"snapdiff"}))
	assert.Equal(t, []string{"snapdiff", "diff"}, handleNakedCommand([]string{"snapdiff", "diff"}))
}

func TestHandleVersion(t *testing.T) {
	assert.False(t, handleVersion([]string{"snapdiff", "diff"}))
}
