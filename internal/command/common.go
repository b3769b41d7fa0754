// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/urfave/cli/v3"

	"github.com/staranto/snapdiff/internal/aws"
	"github.com/staranto/snapdiff/internal/differ"
	"github.com/staranto/snapdiff/internal/log"
	"github.com/staranto/snapdiff/internal/meta"
	"github.com/staranto/snapdiff/internal/output"
	"github.com/staranto/snapdiff/internal/snapshot"
	"github.com/staranto/snapdiff/internal/source"
	"github.com/staranto/snapdiff/internal/where"
)

// ErrDifferences is returned by compare actions run with --exit-code when the
// changeset is not empty.
var ErrDifferences = errors.New("snapshots differ")

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// stdout returns the root command's writer, os.Stdout if unset.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// stdin returns the root command's reader, os.Stdin if unset.
func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// s3MaxAttempts bounds the SDK's standard retryer for snapshot fetches.
const s3MaxAttempts = 5

// awsOptions builds the S3 client options for the given overrides.
func awsOptions(profile, region string) []aws.Option {
	opts := []aws.Option{
		aws.WithRetryer(func() awsv2.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), s3MaxAttempts)
		}),
	}
	if profile != "" {
		opts = append(opts, aws.WithProfile(profile))
	}
	if region != "" {
		opts = append(opts, aws.WithRegion(region))
	}
	return opts
}

// sourceOptions builds the source options implied by the command's flags.
func sourceOptions(cmd *cli.Command) []source.Option {
	return []source.Option{
		source.WithStdin(stdin(cmd)),
		source.WithAWSOptions(awsOptions(cmd.String("profile"), cmd.String("region"))...),
	}
}

// renderOptions builds output.Options from the command's flags.
func renderOptions(cmd *cli.Command) (output.Options, error) {
	delim, err := delimiterRune(cmd.String("delimiter"))
	if err != nil {
		return output.Options{}, err
	}

	return output.Options{
		Format:    cmd.String("output"),
		Color:     cmd.Bool("color"),
		Previous:  cmd.Bool("previous"),
		Titles:    cmd.Bool("titles"),
		Padding:   cmd.Int("padding"),
		Delimiter: delim,
	}, nil
}

// loadTable reads one snapshot from src.
func loadTable(ctx context.Context, src source.Source, delim rune) (*snapshot.Table, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck

	t, err := snapshot.Read(rc, snapshot.WithDelimiter(delim), snapshot.WithName(src.String()))
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s: records=%d blank=%d", src, t.Stats.Records, t.Stats.Blank)
	return t, nil
}

// runCompare loads both snapshots, diffs them and renders the changeset. Key
// columns are resolved against the old snapshot's header.
func runCompare(ctx context.Context, cmd *cli.Command, oldSrc, newSrc source.Source) error {
	opts, err := renderOptions(cmd)
	if err != nil {
		return err
	}

	oldTable, err := loadTable(ctx, oldSrc, opts.Delimiter)
	if err != nil {
		return err
	}
	newTable, err := loadTable(ctx, newSrc, opts.Delimiter)
	if err != nil {
		return err
	}
	if err := differ.CheckHeaders(oldTable.Header, newTable.Header); err != nil {
		return fmt.Errorf("comparing %s with %s: %w", oldSrc, newSrc, err)
	}

	keys, err := snapshot.ResolveKeys(oldTable.Header, cmd.String("key"), cmd.String("subkey"), cmd.String("order"))
	if err != nil {
		return err
	}
	log.Debugf("keys: %+v", keys)

	oldSnap, err := oldTable.Snapshot(keys)
	if err != nil {
		return err
	}
	newSnap, err := newTable.Snapshot(keys)
	if err != nil {
		return err
	}

	changes, err := differ.Compare(oldSnap, newSnap)
	if err != nil {
		return fmt.Errorf("comparing %s with %s: %w", oldSrc, newSrc, err)
	}

	filter, err := where.Compile(cmd.String("where"), oldSnap.Header)
	if err != nil {
		return err
	}
	if changes, err = filter.Apply(changes); err != nil {
		return err
	}

	if err := output.Render(stdout(cmd), oldSnap.Header, changes, opts); err != nil {
		return err
	}

	if cmd.Bool("exit-code") && len(changes) > 0 {
		return ErrDifferences
	}
	return nil
}
