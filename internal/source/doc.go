// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source resolves snapshot locations given on the command line (a local
// path, "-" for stdin, or an s3:// URL) and opens them for reading.
package source
