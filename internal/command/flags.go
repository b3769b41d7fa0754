// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/snapdiff/internal/output"
)

// NewKeyFlags constructs the three key column flags. Each accepts a 0-based
// index or a header column name and falls back to SNAPDIFF_* and then to the
// config file at cfgPath, namespaced by ns.
func NewKeyFlags(ns string, cfgPath string) []cli.Flag {
	key := &cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "primary half of the composite grouping key (index or column name)",
		Sources: cli.NewValueSourceChain(cli.EnvVar("SNAPDIFF_KEY")),
	}
	subkey := &cli.StringFlag{
		Name:    "subkey",
		Aliases: []string{"s"},
		Usage:   "secondary half of the composite grouping key (index or column name)",
		Sources: cli.NewValueSourceChain(cli.EnvVar("SNAPDIFF_SUBKEY")),
	}
	order := &cli.StringFlag{
		Name:    "order",
		Aliases: []string{"d"},
		Usage:   "column that orders and subdivides a group (index or column name)",
		Sources: cli.NewValueSourceChain(cli.EnvVar("SNAPDIFF_ORDER")),
	}

	flags := []cli.Flag{}
	for _, f := range []*cli.StringFlag{key, subkey, order} {
		if cfgPath != "" {
			f = NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, f)
		}
		flags = append(flags, f)
	}
	return flags
}

// NewCompareFlags constructs the flags shared by every command that compares
// two snapshots.
func NewCompareFlags(ns string, cfgPath string) []cli.Flag {
	delimiter := &cli.StringFlag{
		Name:    "delimiter",
		Usage:   "field delimiter of the snapshots and of csv output",
		Value:   ";",
		Sources: cli.NewValueSourceChain(cli.EnvVar("SNAPDIFF_DELIMITER")),
		Validator: func(value string) error {
			return FlagValidators(value, DelimiterValidator)
		},
	}
	out := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   output.Text,
		Sources: cli.NewValueSourceChain(cli.EnvVar("SNAPDIFF_OUTPUT")),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	where := &cli.StringFlag{
		Name:    "where",
		Aliases: []string{"w"},
		Usage:   `HCL expression selecting records, e.g. 'kind == "changed"'`,
	}
	padding := &cli.IntFlag{
		Name:  "padding",
		Usage: "left padding of text output columns",
		Value: 2,
	}
	if cfgPath != "" {
		delimiter = NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, delimiter)
		out = NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, out)
		configSources(ns, cfgPath, padding.Name, &padding.Sources)
	}

	flags := append(NewKeyFlags(ns, cfgPath),
		delimiter,
		out,
		where,
		padding,
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   output.IsTerminal(os.Stdout),
		},
		&cli.BoolFlag{
			Name:    "previous",
			Aliases: []string{"p"},
			Usage:   "show the old row ahead of each changed row",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:  "exit-code",
			Usage: "exit with status 1 when differences are found",
			Value: false,
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS profile for s3:// snapshots",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SNAPDIFF_PROFILE")),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// snapshots",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SNAPDIFF_REGION")),
		},
	)

	return flags
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	configSources(ns, path, flag.Name, &flag.Sources)
	return flag
}

// configSources appends <ns>.<name> and then <name> from the YAML file at path.
func configSources(ns string, path string, name string, chain *cli.ValueSourceChain) {
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
}
