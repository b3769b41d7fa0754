// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: ";", want: ';'},
		{in: ",", want: ','},
		{in: "|", want: '|'},
		{in: "tab", want: '\t'},
		{in: `\t`, want: '\t'},
		{in: "§", want: '§'},
		{in: "", wantErr: true},
		{in: ";;", wantErr: true},
		{in: `"`, wantErr: true},
		{in: "\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := delimiterRune(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "html", "json", "yaml", "csv"} {
		assert.NoError(t, OutputValidator(v), v)
	}
	assert.Error(t, OutputValidator("raw"))
	assert.Error(t, OutputValidator(42))
}

func TestFlagValidators(t *testing.T) {
	assert.NoError(t, FlagValidators(";", DelimiterValidator))
	assert.Error(t, FlagValidators("json", OutputValidator, DelimiterValidator))
}
