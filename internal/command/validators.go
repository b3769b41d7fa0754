// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/staranto/snapdiff/internal/output"
)

// FlagValidatorType checks a single flag value.
type FlagValidatorType func(any) error

// FlagValidators runs validators against value and returns the first error.
func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// CompareFlagsValidator checks flag combinations that no single flag
// validator can see.
func CompareFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Int("padding") < 0 {
		return fmt.Errorf("--padding must not be negative")
	}
	for _, name := range []string{"key", "subkey", "order"} {
		if c.String(name) == "" {
			return fmt.Errorf("--%s is required", name)
		}
	}
	return nil
}

// OutputValidator accepts the names in output.Formats.
func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// DelimiterValidator accepts any value delimiterRune can convert.
func DelimiterValidator(value any) error {
	s, _ := value.(string)
	if _, err := delimiterRune(s); err != nil {
		return err
	}
	return nil
}

// delimiterRune converts a --delimiter value to a rune. "tab" and `\t` are
// accepted for a tab.
func delimiterRune(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}

	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	switch r[0] {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("delimiter %q is not allowed", s)
	}
	return r[0], nil
}
