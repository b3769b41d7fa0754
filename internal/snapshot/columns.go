// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/staranto/snapdiff/internal/row"
)

// ErrUnknownColumn is returned when a column spec matches no header column.
var ErrUnknownColumn = errors.New("unknown column")

// ResolveColumn maps spec to a column index of header. spec is either a 0-based
// index or a column name, matched exactly first and then case-insensitively.
func ResolveColumn(header []string, spec string) (int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("%w: empty column spec", ErrUnknownColumn)
	}

	if i, err := strconv.Atoi(spec); err == nil {
		if i < 0 || i >= len(header) {
			return 0, fmt.Errorf("%w: index %d out of range [0,%d)", ErrUnknownColumn, i, len(header))
		}
		return i, nil
	}

	for i, h := range header {
		if h == spec {
			return i, nil
		}
	}
	for i, h := range header {
		if strings.EqualFold(h, spec) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, spec)
}

// ResolveKeys resolves the three key column specs against header.
func ResolveKeys(header []string, primary, secondary, order string) (row.Keys, error) {
	var k row.Keys
	for _, c := range []struct {
		name string
		spec string
		dst  *int
	}{
		{"key", primary, &k.Primary},
		{"subkey", secondary, &k.Secondary},
		{"order", order, &k.Order},
	} {
		i, err := ResolveColumn(header, c.spec)
		if err != nil {
			return row.Keys{}, fmt.Errorf("--%s: %w", c.name, err)
		}
		*c.dst = i
	}
	return k, nil
}
