// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package row provides the immutable snapshot row along with the key accessors
// used to group and order rows, and the column-level comparison of two rows.
package row
