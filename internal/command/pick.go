// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/snapdiff/internal/differ"
	"github.com/staranto/snapdiff/internal/log"
	"github.com/staranto/snapdiff/internal/meta"
	"github.com/staranto/snapdiff/internal/source"
)

// selectSnapshots is swapped out by tests; the real picker needs a terminal.
var selectSnapshots = differ.SelectSnapshots

// pickCommandAction is the action handler for the "pick" subcommand. It lists
// the snapshot files in DIR, lets the user choose two and compares them, the
// older file being OLD.
func pickCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	dir := m.StartingDir
	if cmd.Args().Len() > 0 {
		dir = cmd.Args().First()
	}

	files, err := source.List(dir, cmd.String("pattern"))
	if err != nil {
		return err
	}
	if len(files) < 2 {
		return fmt.Errorf("need at least two snapshots in %s, found %d", dir, len(files))
	}

	picked := selectSnapshots(files)
	if len(picked) != 2 {
		log.Debug("selection aborted")
		return nil
	}
	log.Debugf("picked %s and %s", picked[0].Name, picked[1].Name)

	oldSrc, err := source.New(picked[0].Path)
	if err != nil {
		return err
	}
	newSrc, err := source.New(picked[1].Path)
	if err != nil {
		return err
	}

	return runCompare(ctx, cmd, oldSrc, newSrc)
}

// pickCommandBuilder constructs the cli.Command for "pick".
func pickCommandBuilder(meta meta.Meta) *cli.Command {
	pattern := &cli.StringFlag{
		Name:  "pattern",
		Usage: "glob selecting the snapshot files in DIR",
		Value: "*.csv",
	}
	if meta.Config.Source != "" {
		pattern = NameSpacedValueChainFlagFromConfigFile("pick", meta.Config.Source, pattern)
	}

	return &cli.Command{
		Name:      "pick",
		Usage:     "choose two snapshots from a directory and compare them",
		UsageText: "snapdiff pick [DIR] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{pattern}, NewCompareFlags("pick", meta.Config.Source)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, CompareFlagsValidator(ctx, cmd)
		},
		Action: pickCommandAction,
	}
}
