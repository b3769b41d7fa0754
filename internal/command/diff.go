// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/snapdiff/internal/log"
	"github.com/staranto/snapdiff/internal/meta"
	"github.com/staranto/snapdiff/internal/source"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// compares the OLD and NEW snapshots named on the command line.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("diff needs exactly two snapshots, got %d", len(args))
	}
	if args[0] == source.Stdin && args[1] == source.Stdin {
		return fmt.Errorf("only one snapshot may be read from stdin")
	}

	opts := sourceOptions(cmd)
	oldSrc, err := source.New(args[0], opts...)
	if err != nil {
		return err
	}
	newSrc, err := source.New(args[1], opts...)
	if err != nil {
		return err
	}

	return runCompare(ctx, cmd, oldSrc, newSrc)
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and action/validator handlers.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two snapshots",
		UsageText: "snapdiff diff OLD NEW [options]\n\nOLD and NEW are files, s3://bucket/key[?versionId=ID] or - for stdin.",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewCompareFlags("diff", meta.Config.Source),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, CompareFlagsValidator(ctx, cmd)
		},
		Action: diffCommandAction,
	}
}
