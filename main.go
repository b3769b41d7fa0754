// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/snapdiff/internal/command"
	"github.com/staranto/snapdiff/internal/config"
	"github.com/staranto/snapdiff/internal/log"
	"github.com/staranto/snapdiff/internal/version"
)

var ctx = context.Background()

// boolFlags never consume the following argument as their value.
var boolFlags = map[string]bool{
	"--color": true, "-c": true,
	"--previous": true, "-p": true,
	"--titles": true, "-t": true,
	"--exit-code": true,
	"--help": true, "-h": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands config flag sets and drops repeated flags so the
// last occurrence wins.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// processSetOnly expands an @name argument into the string list at
// <command>.<name> in config. Without one, <command>.defaults is injected right
// after the command so that explicit flags override it.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") && len(args[i]) > 1 {
			key := args[1] + "." + args[i][1:]
			rest := append([]string{}, args[i+1:]...)
			return injectConfigSet(append(args[:i], rest...), key, i)
		}
	}

	return injectConfigSet(args, args[1]+".defaults", 2)
}

// injectConfigSet inserts the entries of the config string list at key into
// args at insertIdx. Each entry is split on whitespace.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil || len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags removes all but the last occurrence of every repeated flag
// after the command. A flag not known to be boolean takes the following
// argument as its value unless that argument looks like a flag. Positional
// arguments keep their order.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		name  string
		parts []string
	}

	var units []unit
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			units = append(units, unit{parts: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			units = append(units, unit{parts: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		u := unit{name: name, parts: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			u.parts = append(u.parts, args[i+1])
			i++
		}
		units = append(units, u)
	}

	last := map[string]int{}
	for i, u := range units {
		if u.name != "" {
			last[u.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.name != "" && last[u.name] != i {
			continue
		}
		out = append(out, u.parts...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, command.ErrDifferences) {
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
