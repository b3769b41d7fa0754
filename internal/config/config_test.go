// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points SNAPDIFF_CFG_FILE at a testdata file, resets the global
// Config and runs fn.
func withConfig(t *testing.T, testFile string, namespace string, fn func(t *testing.T)) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testFile))
	require.NoError(t, err)
	t.Setenv(EnvFile, absPath)

	Config = Type{Namespace: namespace}
	t.Cleanup(func() { Config = Type{} })

	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, ";", cfg.Data["delimiter"])
				assert.Equal(t, 2, cfg.Data["padding"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				diff, ok := cfg.Data["diff"].(map[string]interface{})
				require.True(t, ok, "diff should be a map")
				assert.Equal(t, "bsn", diff["key"])
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, tt.testFile, "", func(t *testing.T) {
				cfg, err := Load()
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				tt.checkFunc(t, cfg)
			})
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Setenv(EnvFile, "")
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load(filepath.Join("testdata", "simple.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Data["output"])
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(EnvFile, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoad_EnvIsDirectory(t *testing.T) {
	t.Setenv(EnvFile, t.TempDir())

	_, err := Load()
	assert.ErrorContains(t, err, "points to a directory")
}

func TestFile_UserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvFile, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	userDir, err := os.UserConfigDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(userDir, 0o755))

	_, err = File()
	assert.Error(t, err)

	want := filepath.Join(userDir, FileName)
	require.NoError(t, os.WriteFile(want, []byte("output: json\n"), 0o600))

	got, err := File()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetString(t *testing.T) {
	withConfig(t, "nested.yaml", "diff", func(t *testing.T) {
		v, err := GetString("key")
		require.NoError(t, err)
		assert.Equal(t, "bsn", v, "namespaced key wins")

		v, err = GetString("colors.added")
		require.NoError(t, err)
		assert.Equal(t, "#00a000", v)

		v, err = GetString("colors.removed", "#ff0000")
		require.NoError(t, err)
		assert.Equal(t, "#ff0000", v)

		_, err = GetString("colors.removed")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = GetString("padding")
		assert.ErrorContains(t, err, "not a string")
	})
}

func TestGetString_NoNamespace(t *testing.T) {
	withConfig(t, "nested.yaml", "", func(t *testing.T) {
		v, err := GetString("key")
		require.NoError(t, err)
		assert.Equal(t, "0", v)
	})
}

func TestGetInt(t *testing.T) {
	withConfig(t, "mixed-types.yaml", "", func(t *testing.T) {
		tests := []struct {
			key     string
			def     []int
			want    int
			wantErr bool
		}{
			{key: "count", want: 7},
			{key: "padding", want: 2},
			{key: "missing", def: []int{5}, want: 5},
			{key: "missing", wantErr: true},
			{key: "name", wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.key, func(t *testing.T) {
				got, err := GetInt(tt.key, tt.def...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})
}

func TestGetInt_Namespaced(t *testing.T) {
	withConfig(t, "nested.yaml", "diff", func(t *testing.T) {
		v, err := GetInt("padding")
		require.NoError(t, err)
		assert.Equal(t, 3, v)

		v, err = GetInt("cache.clean")
		require.NoError(t, err)
		assert.Equal(t, 24, v)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "nested.yaml", "", func(t *testing.T) {
		v, err := GetStringSlice("diff.nightly")
		require.NoError(t, err)
		assert.Equal(t, []string{"--output html", "--previous"}, v)

		v, err = GetStringSlice("diff.weekly", []string{"--color"})
		require.NoError(t, err)
		assert.Equal(t, []string{"--color"}, v)

		_, err = GetStringSlice("diff.key")
		assert.ErrorContains(t, err, "not a slice")
	})

	withConfig(t, "mixed-types.yaml", "nested", func(t *testing.T) {
		v, err := GetStringSlice("list")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v, "namespace wins")

		Config.Namespace = ""
		_, err = GetStringSlice("list")
		assert.ErrorContains(t, err, "not a string")
	})
}
