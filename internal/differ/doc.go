// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the changeset between two snapshots of a tabular
// dataset. Rows present in only one snapshot are grouped by their composite key
// and each group is resolved into added, removed and changed records.
package differ
