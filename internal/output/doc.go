// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders a changeset as a text table, an HTML table, JSON, YAML
// or delimited text.
package output
