// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name string
		want log.Level
	}{
		{"trace", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.ErrorLevel},
		{"bogus", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFor(tt.name))
		})
	}
}

func TestHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(EnvLevel, "trace")
	InitLoggerTo(&buf)
	t.Cleanup(func() { InitLoggerTo(&bytes.Buffer{}) })

	Debugf("rows=%d", 3)
	Tracef("deep %s", "dive")
	Warnf("careful")
	WithError(errors.New("boom")).Error("failed")

	out := buf.String()
	assert.Contains(t, out, " D rows=3\n")
	assert.Contains(t, out, " T deep dive\n")
	assert.Contains(t, out, " W careful\n")
	assert.Contains(t, out, " E failed error=boom\n")
}

func TestHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(EnvLevel, "")
	InitLoggerTo(&buf)
	t.Cleanup(func() { InitLoggerTo(&bytes.Buffer{}) })

	Debugf("hidden")
	Infof("hidden too")
	Tracef("hidden as well")
	Errorf("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), " E shown\n")
}
