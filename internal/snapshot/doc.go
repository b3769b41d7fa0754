// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot reads delimiter-separated snapshot files into the header and
// rows consumed by the differ, and resolves key columns given by index or name.
package snapshot
