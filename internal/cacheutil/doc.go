// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil stores immutable downloads, such as versioned S3 snapshot
// objects, under the user cache directory keyed by a hash of their identity.
package cacheutil
